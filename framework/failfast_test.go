package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailFastPolicyDisabledDoesNothing(t *testing.T) {
	var buf bytes.Buffer
	var exits exitRecorder
	p := NewFailFastPolicy(false, &buf, exits.exit)

	p.OnFailure()

	assert.False(t, p.Enabled())
	assert.Empty(t, exits.codes)
	assert.Empty(t, buf.String())
}

func TestFailFastPolicyEnabledExitsWithStatus1(t *testing.T) {
	var buf bytes.Buffer
	var exits exitRecorder
	p := NewFailFastPolicy(true, &buf, exits.exit)
	continued := false

	inGoroutine(func() {
		p.OnFailure()
		continued = true
	})

	assert.True(t, p.Enabled())
	assert.Equal(t, []int{1}, exits.codes)
	assert.False(t, continued)
	assert.Equal(t, failFastNotice+"\n", buf.String())
}
