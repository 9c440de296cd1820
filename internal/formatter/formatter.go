// Package formatter renders analysis results for different task types.
package formatter

import (
	"sort"

	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

// ResultFormatter is the interface for formatting analysis results.
type ResultFormatter interface {
	// Format outputs the analysis result to the logger.
	Format(resp *model.AnalysisResponse, log utils.Logger)

	// FormatSummary returns a summary map for serialization.
	FormatSummary(resp *model.AnalysisResponse) map[string]interface{}

	// SupportedTypes returns the task types this formatter supports.
	SupportedTypes() []model.TaskType
}

// Registry manages formatter instances.
type Registry struct {
	formatters map[model.TaskType]ResultFormatter
	fallback   ResultFormatter
}

// NewRegistry creates a new formatter registry with default formatters.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[model.TaskType]ResultFormatter),
		fallback:   &DefaultFormatter{},
	}

	r.Register(&NetstatFormatter{})
	r.Register(&DiffFormatter{})
	r.Register(&ThreadDumpFormatter{})

	return r
}

// Register registers a formatter.
func (r *Registry) Register(f ResultFormatter) {
	for _, t := range f.SupportedTypes() {
		r.formatters[t] = f
	}
}

// Get returns the formatter for a task type.
func (r *Registry) Get(taskType model.TaskType) ResultFormatter {
	if f, ok := r.formatters[taskType]; ok {
		return f
	}
	return r.fallback
}

// Format formats the analysis response using the appropriate formatter.
func (r *Registry) Format(resp *model.AnalysisResponse, log utils.Logger) {
	if resp == nil {
		return
	}
	r.Get(resp.TaskType).Format(resp, log)
}

// FormatSummary returns a summary map using the appropriate formatter.
func (r *Registry) FormatSummary(resp *model.AnalysisResponse) map[string]interface{} {
	if resp == nil {
		return nil
	}
	return r.Get(resp.TaskType).FormatSummary(resp)
}

// sortedKeys returns a count map's keys in lexicographic order.
func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// truncateString shortens a string to at most max runes.
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// printOutputFiles lists artifact paths on the logger.
func printOutputFiles(resp *model.AnalysisResponse, log utils.Logger) {
	if len(resp.OutputFiles) == 0 {
		return
	}
	log.Info("=== Output Files ===")
	for _, file := range resp.OutputFiles {
		log.Info("  %s", file)
	}
	log.Info("")
}
