// Package netstat parses netstat -an style TCP connection tables.
package netstat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dump-analysis/internal/parser"
	"github.com/dump-analysis/pkg/model"
)

// ParseAddress parses one local/foreign address token into an Address.
//
// Two textual encodings are accepted: colon-delimited (192.168.1.1:443,
// :::8080, *:*) and a dot-delimited variant where the last segment is
// the port (127.0.0.1.8080, *.*). A port of "*" maps to the wildcard
// port. Anything else fails with parser.ErrMalformedAddress.
func ParseAddress(token string) (model.Address, error) {
	if token == "" {
		return model.Address{}, fmt.Errorf("%w: empty token", parser.ErrMalformedAddress)
	}

	// The dot-delimited encoding uses the last dot as the ip/port
	// separator; everything before it is left untouched.
	if !strings.Contains(token, ":") {
		idx := strings.LastIndex(token, ".")
		if idx < 0 {
			return model.Address{}, fmt.Errorf("%w: %q has no port separator", parser.ErrMalformedAddress, token)
		}
		token = token[:idx] + ":" + token[idx+1:]
	}

	switch strings.Count(token, ":") {
	case 1:
		// ip:port
	case 3:
		// IPv6 any-address wildcard, e.g. :::8080; the "::" run stands
		// for the any address.
		token = strings.Replace(token, "::", "0.0.0.0", 1)
	default:
		return model.Address{}, fmt.Errorf("%w: %q has unexpected colon count", parser.ErrMalformedAddress, token)
	}

	idx := strings.LastIndex(token, ":")
	ip := token[:idx]
	portToken := token[idx+1:]

	if portToken == "*" {
		return model.Address{IP: ip, Port: model.WildcardPort}, nil
	}

	port, err := strconv.Atoi(portToken)
	if err != nil || port < 0 {
		return model.Address{}, fmt.Errorf("%w: port %q is not a non-negative integer", parser.ErrMalformedAddress, portToken)
	}

	return model.Address{IP: ip, Port: port}, nil
}
