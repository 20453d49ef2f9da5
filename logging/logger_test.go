package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCapturingLoggerKeepsMessagesInOrder(t *testing.T) {
	l := NewCapturingLogger(fixedClock(time.Date(2020, 1, 2, 3, 4, 5, 6000000, time.UTC)))
	l.Printf("first %d", 1)
	l.Printf("second")

	out := l.Output()
	if assert.Len(t, out, 2) {
		assert.Equal(t, "first 1", out[0].Message)
		assert.Equal(t, "second", out[1].Message)
	}
}

func TestCapturingLoggerOutputIsACopy(t *testing.T) {
	l := NewCapturingLogger(nil)
	l.Printf("a")
	out := l.Output()
	l.Printf("b")

	assert.Len(t, out, 1)
	assert.Len(t, l.Output(), 2)
}

func TestCapturedOutputDump(t *testing.T) {
	l := NewCapturingLogger(fixedClock(time.Date(2020, 1, 2, 3, 4, 5, 6000000, time.UTC)))
	l.Printf("hello")

	var buf bytes.Buffer
	l.Output().Dump(&buf, "    DEBUG ")
	assert.Equal(t, "    DEBUG [2020-01-02 03:04:05.006] hello\n", buf.String())
}

func TestNullLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Printf("%s", "x") })
}
