package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/unit-harness/framework"
	"github.com/launchdarkly/unit-harness/logging"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// JSONTestLogger writes one JSON object per line for each event of a run.
type JSONTestLogger struct {
	Out io.Writer
	// IncludeDebugOutput adds each case's captured debug messages to its "finished" event.
	IncludeDebugOutput bool
}

func (j *JSONTestLogger) write(event string, name string, fields func(ldvalue.ObjectBuilder)) {
	b := ldvalue.ObjectBuild().
		Set("event", ldvalue.String(event)).
		Set("name", ldvalue.String(name))
	if fields != nil {
		fields(b)
	}
	fmt.Fprintln(j.Out, b.Build().JSONString())
}

func (j *JSONTestLogger) CaseStarted(name string) {
	j.write("started", name, nil)
}

func (j *JSONTestLogger) AssertionFailed(name string, failure framework.AssertionFailure) {
	j.write("assertion", name, func(b ldvalue.ObjectBuilder) {
		b.Set("function", ldvalue.String(failure.Location.Function)).
			Set("file", ldvalue.String(failure.Location.File)).
			Set("line", ldvalue.Int(failure.Location.Line)).
			Set("message", ldvalue.String(strings.Join(failure.Lines, "\n")))
	})
}

func (j *JSONTestLogger) CasePanicked(name string, value interface{}, stack []byte) {
	j.write("panic", name, func(b ldvalue.ObjectBuilder) {
		b.Set("message", ldvalue.String(fmt.Sprint(value)))
	})
}

func (j *JSONTestLogger) CaseFinished(result framework.CaseResult, debugOutput logging.CapturedOutput) {
	j.write("finished", result.Name, func(b ldvalue.ObjectBuilder) {
		b.Set("total", ldvalue.Int(int(result.Total))).
			Set("successful", ldvalue.Int(int(result.Successful))).
			Set("passed", ldvalue.Bool(result.Passed())).
			Set("crashed", ldvalue.Bool(result.Crashed))
		if j.IncludeDebugOutput && len(debugOutput) > 0 {
			messages := ldvalue.ArrayBuildWithCapacity(len(debugOutput))
			for _, m := range debugOutput {
				messages.Add(ldvalue.String(m.Message))
			}
			b.Set("debug", messages.Build())
		}
	})
}
