package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. *log.Logger satisfies it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages in memory so that a test case's debug output can be shown
// only if the case fails.
type CapturingLogger struct {
	output []CapturedMessage
	now    func() time.Time
	lock   sync.Mutex
}

// NewCapturingLogger creates a CapturingLogger. If now is nil, time.Now is used.
func NewCapturingLogger(now func() time.Time) *CapturingLogger {
	return &CapturingLogger{now: now}
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	t := time.Now()
	if l.now != nil {
		t = l.now()
	}
	l.output = append(l.output, CapturedMessage{Time: t, Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
