package framework

import (
	"fmt"
	"strings"

	"github.com/launchdarkly/unit-harness/framework/callsite"
)

// CaseResult is the outcome of running one test case.
type CaseResult struct {
	Name       string
	Total      uint
	Successful uint
	// Crashed means the case did not complete because it panicked.
	Crashed bool
	// Panic is a description of the panic value, if Crashed is true.
	Panic string
}

func (r CaseResult) Passed() bool {
	return !r.Crashed && r.Successful == r.Total
}

// Results is the aggregate outcome of a run.
type Results struct {
	Cases    []CaseResult
	Failures []CaseResult
}

func (r *Results) add(result CaseResult) {
	r.Cases = append(r.Cases, result)
	if !result.Passed() {
		r.Failures = append(r.Failures, result)
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// ExitCode is the process exit status that summarizes the run: 0 if every case passed, else 1.
func (r Results) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// AssertionFailure describes one failed assertion: where it was made, and the diagnostic lines
// explaining what was expected.
type AssertionFailure struct {
	Location callsite.Location
	Lines    []string
}

func (f AssertionFailure) Error() string {
	return fmt.Sprintf("%s:%d: %s", f.Location.File, f.Location.Line, strings.Join(f.Lines, "; "))
}
