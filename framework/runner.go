package framework

import (
	"fmt"
	"io"
	"runtime/debug"
)

// RunnerConfig controls how the Runner executes test cases.
type RunnerConfig struct {
	// FailFast makes the first failed assertion terminate the process.
	FailFast bool

	// CatchPanics makes a panic in a test case mark that case as crashed, after which the run
	// continues. If false, the panic propagates out of Runner.Run, which is useful when running
	// under a debugger.
	CatchPanics bool

	// Fatal, if set, identifies panics that must never be handled as a crashed case because they
	// represent a fault that should end the process. Such panics always propagate.
	Fatal func(recovered interface{}) bool

	// Logger receives the events of the run. If nil, nothing is reported.
	Logger TestLogger

	// ErrorOutput is where the fail-fast notice is written. Defaults to os.Stderr.
	ErrorOutput io.Writer

	// Exit terminates the process in fail-fast mode. Defaults to os.Exit.
	Exit func(int)
}

// Runner executes test cases one at a time, in order.
type Runner struct {
	config   RunnerConfig
	logger   TestLogger
	failFast FailFastPolicy
}

func NewRunner(config RunnerConfig) *Runner {
	logger := config.Logger
	if logger == nil {
		logger = nullTestLogger{}
	}
	return &Runner{
		config:   config,
		logger:   logger,
		failFast: NewFailFastPolicy(config.FailFast, config.ErrorOutput, config.Exit),
	}
}

// RunRegistry runs every case in the registry, in registration order.
func (r *Runner) RunRegistry(registry *Registry) Results {
	return r.Run(registry.All())
}

// Run executes each entry exactly once, in order, and returns the aggregate results.
func (r *Runner) Run(entries []Entry) Results {
	var results Results
	pending := append([]Entry(nil), entries...)
	for i := range pending {
		results.add(r.runCase(pending[i]))
		pending[i].Case = nil // cases are single-use
	}
	return results
}

func (r *Runner) runCase(entry Entry) CaseResult {
	r.logger.CaseStarted(entry.Name)

	t := newT(entry.Name, r.failFast, r.logger)
	crashed, panicValue := r.execute(t, entry.Case)

	total, successful := t.Assertions()
	result := CaseResult{
		Name:       entry.Name,
		Total:      total,
		Successful: successful,
		Crashed:    crashed,
	}
	if crashed {
		result.Panic = fmt.Sprint(panicValue)
	}
	r.logger.CaseFinished(result, t.debugLogger.Output())
	return result
}

func (r *Runner) execute(t *T, tc TestCase) (crashed bool, panicValue interface{}) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if p, ok := recovered.(*T); ok && p == t {
			return // FailNow; the failure has already been recorded
		}
		if r.config.Fatal != nil && r.config.Fatal(recovered) {
			panic(recovered)
		}
		if !r.config.CatchPanics {
			panic(recovered)
		}
		crashed, panicValue = true, recovered
		r.logger.CasePanicked(t.name, recovered, debug.Stack())
	}()

	tc.Run(t)
	return false, nil
}
