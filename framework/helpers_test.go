package framework

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/launchdarkly/unit-harness/logging"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	events   []string
	failures []AssertionFailure
	results  []CaseResult
	debug    []logging.CapturedOutput
	stacks   [][]byte
}

func (l *recordingLogger) CaseStarted(name string) {
	l.events = append(l.events, "started:"+name)
}

func (l *recordingLogger) AssertionFailed(name string, failure AssertionFailure) {
	l.events = append(l.events, "failed:"+name)
	l.failures = append(l.failures, failure)
}

func (l *recordingLogger) CasePanicked(name string, value interface{}, stack []byte) {
	l.events = append(l.events, fmt.Sprintf("panicked:%s:%v", name, value))
	l.stacks = append(l.stacks, stack)
}

func (l *recordingLogger) CaseFinished(result CaseResult, debugOutput logging.CapturedOutput) {
	l.events = append(l.events, "finished:"+result.Name)
	l.results = append(l.results, result)
	l.debug = append(l.debug, debugOutput)
}

// runOne runs a single case with panics caught and returns its result.
func runOne(t *testing.T, body func(h *T)) (CaseResult, *recordingLogger) {
	logger := &recordingLogger{}
	runner := NewRunner(RunnerConfig{CatchPanics: true, Logger: logger})
	results := runner.Run([]Entry{{Name: "case", Case: TestFunc(body)}})
	require.Len(t, results.Cases, 1)
	return results.Cases[0], logger
}

// exitRecorder stands in for os.Exit: it records the status and ends the calling goroutine, so
// that nothing after the exit point runs.
type exitRecorder struct {
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.codes = append(e.codes, code)
	runtime.Goexit()
}

// inGoroutine runs fn on its own goroutine and waits for it to finish or exit.
func inGoroutine(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}
