package utils

import (
	"sync"
	"time"
)

// Phase represents a single completed timing phase.
type Phase struct {
	Name     string
	Duration time.Duration
}

// Timer records named phase durations during one analysis run and logs
// them at Debug level when finished.
type Timer struct {
	mu         sync.Mutex
	name       string
	startTime  time.Time
	phases     map[string]*Phase
	phaseOrder []string
	open       map[string]time.Time
	logger     Logger
	clock      Clock
}

// TimerOption configures a Timer instance.
type TimerOption func(*Timer)

// WithLogger sets the logger the timer reports to.
func WithLogger(logger Logger) TimerOption {
	return func(t *Timer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock sets a custom clock for testability.
func WithClock(clock Clock) TimerOption {
	return func(t *Timer) {
		t.clock = clock
	}
}

// NewTimer creates a new Timer with the given name and options.
func NewTimer(name string, opts ...TimerOption) *Timer {
	t := &Timer{
		name:   name,
		phases: make(map[string]*Phase),
		open:   make(map[string]time.Time),
		logger: &NullLogger{},
		clock:  NewRealClock(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.startTime = t.clock.Now()
	return t
}

// StartPhase starts timing the named phase.
func (t *Timer) StartPhase(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open[name] = t.clock.Now()
}

// StopPhase stops the named phase and records its duration. Stopping an
// unstarted phase records a zero duration.
func (t *Timer) StopPhase(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	var d time.Duration
	if start, ok := t.open[name]; ok {
		d = t.clock.Since(start)
		delete(t.open, name)
	}

	if _, ok := t.phases[name]; !ok {
		t.phaseOrder = append(t.phaseOrder, name)
	}
	t.phases[name] = &Phase{Name: name, Duration: d}
	return d
}

// Phases returns the completed phases in start order.
func (t *Timer) Phases() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]Phase, 0, len(t.phaseOrder))
	for _, name := range t.phaseOrder {
		result = append(result, *t.phases[name])
	}
	return result
}

// Elapsed returns the total time since the timer was created.
func (t *Timer) Elapsed() time.Duration {
	return t.clock.Since(t.startTime)
}

// Report logs the phase breakdown and total elapsed time.
func (t *Timer) Report() {
	total := t.Elapsed()
	for _, phase := range t.Phases() {
		t.logger.Debug("%s: phase %s took %v", t.name, phase.Name, phase.Duration)
	}
	t.logger.Debug("%s: total %v", t.name, total)
}
