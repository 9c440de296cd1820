package analyzer

import (
	"github.com/dump-analysis/pkg/model"
)

// Factory creates analyzers based on task type.
type Factory struct {
	config *BaseAnalyzerConfig
}

// NewFactory creates a new analyzer factory.
func NewFactory(config *BaseAnalyzerConfig) *Factory {
	if config == nil {
		config = DefaultBaseAnalyzerConfig()
	}
	return &Factory{config: config}
}

// CreateAnalyzer creates an analyzer for the given task type.
func (f *Factory) CreateAnalyzer(taskType model.TaskType) (Analyzer, error) {
	switch taskType {
	case model.TaskTypeNetstat:
		return NewNetstatAnalyzer(f.config), nil
	case model.TaskTypeNetstatDiff:
		return NewNetstatDiffAnalyzer(f.config), nil
	case model.TaskTypeThreadDump:
		return NewThreadDumpAnalyzer(f.config), nil
	default:
		return nil, ErrUnsupportedTaskType
	}
}

// CreateManager creates a new analyzer manager with all analyzers
// registered.
func (f *Factory) CreateManager() *Manager {
	manager := NewManager()
	manager.Register(NewNetstatAnalyzer(f.config))
	manager.Register(NewNetstatDiffAnalyzer(f.config))
	manager.Register(NewThreadDumpAnalyzer(f.config))
	return manager
}
