package framework

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/launchdarkly/unit-harness/framework/callsite"
	"github.com/launchdarkly/unit-harness/logging"
)

// Frames from these packages are skipped when attributing an Errorf call to a source location.
var assertionLibraryPrefixes = []string{
	"github.com/stretchr/testify/",
}

// T is the handle a test case uses while it runs. It is similar to Go's *testing.T, but exists
// outside of the Go test runner.
//
// Every assertion method records one check against the case's Recorder. A failed assertion reports
// a diagnostic and execution continues with the next statement, unless fail-fast mode is enabled.
//
// T also implements the TestingT interfaces of testify's assert and require packages. A failed
// testify assertion reports through Errorf, which counts it as one failed assertion. Passing
// assertions are only counted if wrapped in Check:
//
//	t.Check(assert.Contains(t, output, "ready"))
type T struct {
	name        string
	recorder    Recorder
	failFast    FailFastPolicy
	logger      TestLogger
	debugLogger *logging.CapturingLogger
	// pendingFailure is set by Errorf, so that the Check(false) or FailNow that usually follows
	// for the same testify assertion does not count it again.
	pendingFailure bool
}

func newT(name string, failFast FailFastPolicy, logger TestLogger) *T {
	if logger == nil {
		logger = nullTestLogger{}
	}
	return &T{
		name:        name,
		failFast:    failFast,
		logger:      logger,
		debugLogger: logging.NewCapturingLogger(nil),
	}
}

// Name returns the display name the case was registered with.
func (t *T) Name() string {
	return t.name
}

// Assertions returns the number of assertions made so far and how many of them succeeded.
func (t *T) Assertions() (total, successful uint) {
	return t.recorder.Total(), t.recorder.Successful()
}

// Check records the outcome of an assertion whose diagnostic, if any, has already been reported,
// such as the bool returned by one of testify's assert functions.
func (t *T) Check(ok bool) bool {
	if !ok && t.pendingFailure {
		t.pendingFailure = false
		return false
	}
	if !t.record(ok) {
		t.failFast.OnFailure()
	}
	return ok
}

// Errorf reports a failure diagnostic and records it as a failed assertion.
func (t *T) Errorf(format string, args ...interface{}) {
	loc := callsite.CallerOutside(1, assertionLibraryPrefixes...)
	lines := strings.Split(strings.TrimSpace(fmt.Sprintf(format, args...)), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	t.record(false)
	t.pendingFailure = true
	t.fail(loc, trimHarnessFrames(lines)...)
}

// FailNow records a failed assertion and stops the case. The case is reported as failed, not as
// crashed.
func (t *T) FailNow() {
	t.Check(false)
	panic(t)
}

// Helper exists for compatibility with testify, which calls it if present.
func (t *T) Helper() {}

// Debug adds a message to the case's debug output, which is only shown if requested.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns the logger that Debug writes to, for passing to code under test.
func (t *T) DebugLogger() logging.Logger {
	return t.debugLogger
}

// record counts an assertion. Any assertion other than the one Errorf just reported ends the
// pending failure.
func (t *T) record(ok bool) bool {
	t.pendingFailure = false
	return t.recorder.Record(ok)
}

// fail reports a failed assertion that has already been recorded.
func (t *T) fail(loc callsite.Location, lines ...string) {
	t.logger.AssertionFailed(t.name, AssertionFailure{Location: loc, Lines: lines})
	t.failFast.OnFailure()
}

// expressions returns the source text of count arguments of the assertion call at loc, starting at
// argument index first. If the source can't be read, the values are formatted instead.
func expressions(loc callsite.Location, funcName string, first int, values ...interface{}) []string {
	if args, ok := callsite.Args(loc, funcName); ok && len(args) >= first+len(values) {
		return args[first : first+len(values)]
	}
	ret := make([]string, len(values))
	for i, v := range values {
		ret[i] = fmt.Sprintf("%#v", v)
	}
	return ret
}

const errorTraceLabel = "Error Trace:"

var traceFramePattern = regexp.MustCompile(`^\S+\.go:\d+$`)

// harnessDirs are the source directories of the harness itself. Stack frames in their non-test
// files say nothing about the failing test.
var harnessDirs = func() map[string]bool {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return nil
	}
	root := filepath.Dir(filepath.Dir(file))
	dirs := map[string]bool{}
	for _, pkg := range []string{"framework", "framework/callsite", "crash", "cli", "reporting", "logging"} {
		dirs[filepath.Join(root, filepath.FromSlash(pkg))] = true
	}
	return dirs
}()

func isHarnessFrame(frame string) bool {
	file := frame
	if i := strings.LastIndex(frame, ":"); i >= 0 {
		file = frame[:i]
	}
	return !strings.HasSuffix(file, "_test.go") && harnessDirs[filepath.Dir(file)]
}

// trimHarnessFrames removes the harness's own frames from the "Error Trace" section of a testify
// diagnostic.
func trimHarnessFrames(lines []string) []string {
	ret := make([]string, 0, len(lines))
	inTrace, labelDropped := false, false
	for _, line := range lines {
		frame := line
		isLabel := strings.HasPrefix(line, errorTraceLabel)
		if isLabel {
			frame = strings.TrimSpace(strings.TrimPrefix(line, errorTraceLabel))
			inTrace, labelDropped = true, false
		}
		if !inTrace || !traceFramePattern.MatchString(frame) {
			inTrace = false
			ret = append(ret, line)
			continue
		}
		if isHarnessFrame(frame) {
			labelDropped = labelDropped || isLabel
			continue
		}
		if labelDropped {
			line = errorTraceLabel + "\t" + frame
			labelDropped = false
		}
		ret = append(ret, line)
	}
	return ret
}
