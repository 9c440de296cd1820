package main

import "github.com/dump-analysis/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
