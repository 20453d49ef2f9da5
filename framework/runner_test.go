package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *Registry {
	r := NewRegistry()
	r.RegisterFunc("passes", func(h *T) {
		h.True(true)
		h.Equal(4, 2*2)
	})
	r.RegisterFunc("fails", func(h *T) {
		h.True(true)
		h.True(false)
	})
	r.RegisterFunc("crashes", func(h *T) {
		h.True(true)
		panic(errors.New("boom"))
	})
	r.RegisterFunc("passes again", func(h *T) {
		h.StringsEqual("x", "x")
	})
	return r
}

func TestRunnerExecutesCasesInRegistrationOrder(t *testing.T) {
	logger := &recordingLogger{}
	results := NewRunner(RunnerConfig{CatchPanics: true, Logger: logger}).RunRegistry(sampleRegistry())

	require.Len(t, results.Cases, 4)
	assert.Equal(t, []string{"passes", "fails", "crashes", "passes again"},
		[]string{results.Cases[0].Name, results.Cases[1].Name, results.Cases[2].Name, results.Cases[3].Name})
	assert.Equal(t, []string{
		"started:passes", "finished:passes",
		"started:fails", "failed:fails", "finished:fails",
		"started:crashes", "panicked:crashes:boom", "finished:crashes",
		"started:passes again", "finished:passes again",
	}, logger.events)
}

func TestRunnerCaseOutcomes(t *testing.T) {
	results := NewRunner(RunnerConfig{CatchPanics: true}).RunRegistry(sampleRegistry())

	assert.Equal(t, CaseResult{Name: "passes", Total: 2, Successful: 2}, results.Cases[0])
	assert.Equal(t, CaseResult{Name: "fails", Total: 2, Successful: 1}, results.Cases[1])
	assert.Equal(t, CaseResult{Name: "crashes", Total: 1, Successful: 1, Crashed: true, Panic: "boom"}, results.Cases[2])
	assert.Equal(t, CaseResult{Name: "passes again", Total: 1, Successful: 1}, results.Cases[3])

	require.Len(t, results.Failures, 2)
	assert.Equal(t, "fails", results.Failures[0].Name)
	assert.Equal(t, "crashes", results.Failures[1].Name)
	assert.False(t, results.OK())
	assert.Equal(t, 1, results.ExitCode())
}

func TestRunnerAllPassingExitsZero(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc("one", func(h *T) { h.True(true) })
	r.RegisterFunc("empty", func(h *T) {})

	results := NewRunner(RunnerConfig{CatchPanics: true}).RunRegistry(r)

	assert.True(t, results.OK())
	assert.Equal(t, 0, results.ExitCode())
}

func TestRunnerWithNoCasesExitsZero(t *testing.T) {
	results := NewRunner(RunnerConfig{}).Run(nil)
	assert.Empty(t, results.Cases)
	assert.Equal(t, 0, results.ExitCode())
}

func TestRunnerCrashCaptureIncludesStack(t *testing.T) {
	logger := &recordingLogger{}
	NewRunner(RunnerConfig{CatchPanics: true, Logger: logger}).RunRegistry(sampleRegistry())

	require.Len(t, logger.stacks, 1)
	assert.Contains(t, string(logger.stacks[0]), "runner_test.go")
}

func TestRunnerWithoutCatchingLetsPanicEscape(t *testing.T) {
	logger := &recordingLogger{}
	runner := NewRunner(RunnerConfig{CatchPanics: false, Logger: logger})

	var panicValue interface{}
	func() {
		defer func() { panicValue = recover() }()
		runner.RunRegistry(sampleRegistry())
	}()

	require.Error(t, panicValue.(error))
	assert.Equal(t, "boom", panicValue.(error).Error())
	assert.Equal(t, []string{
		"started:passes", "finished:passes",
		"started:fails", "failed:fails", "finished:fails",
		"started:crashes",
	}, logger.events)
}

func TestRunnerWithoutCatchingStillAbsorbsFailNow(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc("stops early", func(h *T) { h.FailNow() })
	r.RegisterFunc("next", func(h *T) { h.True(true) })

	results := NewRunner(RunnerConfig{CatchPanics: false}).RunRegistry(r)

	require.Len(t, results.Cases, 2)
	assert.Equal(t, CaseResult{Name: "stops early", Total: 1, Successful: 0}, results.Cases[0])
}

func TestRunnerNeverTreatsFatalPanicsAsCrashes(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc("faults", func(h *T) { panic("fatal fault") })
	r.RegisterFunc("never runs", func(h *T) { t.Error("second case should not run") })
	runner := NewRunner(RunnerConfig{
		CatchPanics: true,
		Fatal:       func(v interface{}) bool { return v == "fatal fault" },
	})

	assert.PanicsWithValue(t, "fatal fault", func() { runner.RunRegistry(r) })
}

func TestRunnerFailFastStopsEverything(t *testing.T) {
	var notices bytes.Buffer
	var exits exitRecorder
	logger := &recordingLogger{}
	secondAssertionRan, secondCaseRan := false, false

	r := NewRegistry()
	r.RegisterFunc("first", func(h *T) {
		h.True(true)
		h.Equal(1, 2)
		secondAssertionRan = true
		h.True(true)
	})
	r.RegisterFunc("second", func(h *T) {
		secondCaseRan = true
	})
	runner := NewRunner(RunnerConfig{
		FailFast:    true,
		CatchPanics: true,
		Logger:      logger,
		ErrorOutput: &notices,
		Exit:        exits.exit,
	})

	inGoroutine(func() { runner.RunRegistry(r) })

	assert.Equal(t, []int{1}, exits.codes)
	assert.False(t, secondAssertionRan)
	assert.False(t, secondCaseRan)
	assert.Equal(t, []string{"started:first", "failed:first"}, logger.events)
	assert.Equal(t, failFastNotice+"\n", notices.String())
}

func TestRunnerFailFastDoesNothingWhenAssertionsPass(t *testing.T) {
	var exits exitRecorder
	r := NewRegistry()
	r.RegisterFunc("first", func(h *T) { h.True(true) })
	r.RegisterFunc("second", func(h *T) { h.True(true) })

	var results Results
	inGoroutine(func() {
		results = NewRunner(RunnerConfig{FailFast: true, Exit: exits.exit}).RunRegistry(r)
	})

	assert.Empty(t, exits.codes)
	assert.True(t, results.OK())
}

func TestRunnerIsDeterministicAcrossRuns(t *testing.T) {
	runOnce := func() ([]string, Results) {
		logger := &recordingLogger{}
		results := NewRunner(RunnerConfig{CatchPanics: true, Logger: logger}).RunRegistry(sampleRegistry())
		return logger.events, results
	}

	events1, results1 := runOnce()
	events2, results2 := runOnce()

	assert.Equal(t, events1, events2)
	assert.Equal(t, results1, results2)
	assert.Equal(t, results1.ExitCode(), results2.ExitCode())
}

type countingCase struct{ runs int }

func (c *countingCase) Run(h *T) {
	c.runs++
	h.True(true)
}

func TestRunnerRunsEachCaseExactlyOnce(t *testing.T) {
	c := &countingCase{}
	entries := []Entry{{Name: "counted", Case: c}}

	NewRunner(RunnerConfig{}).Run(entries)

	assert.Equal(t, 1, c.runs)
	assert.Same(t, c, entries[0].Case.(*countingCase), "the caller's slice is left alone")
}
