package framework

import "github.com/launchdarkly/unit-harness/logging"

// TestLogger receives the structured events of a run, in order. Implementations decide how (or
// whether) to present them.
type TestLogger interface {
	CaseStarted(name string)
	AssertionFailed(name string, failure AssertionFailure)
	CasePanicked(name string, value interface{}, stack []byte)
	CaseFinished(result CaseResult, debugOutput logging.CapturedOutput)
}

type nullTestLogger struct{}

func (n nullTestLogger) CaseStarted(string)                              {}
func (n nullTestLogger) AssertionFailed(string, AssertionFailure)        {}
func (n nullTestLogger) CasePanicked(string, interface{}, []byte)        {}
func (n nullTestLogger) CaseFinished(CaseResult, logging.CapturedOutput) {}
