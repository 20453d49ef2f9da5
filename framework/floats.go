package framework

import (
	"fmt"
	"math"

	"github.com/launchdarkly/unit-harness/framework/callsite"
)

// Relative tolerances: the difference scaled by these factors must not exceed the smaller
// magnitude of the two operands.
const (
	float32Scale = 1e5
	float64Scale = 1e12
)

func floatsClose(v1, v2 float64) bool {
	return math.Abs(v1-v2)*float64Scale <= math.Min(math.Abs(v1), math.Abs(v2))
}

func float32sClose(v1, v2 float32) bool {
	diff := abs32(v1 - v2)
	smaller := abs32(v1)
	if a2 := abs32(v2); a2 < smaller {
		smaller = a2
	}
	return diff*float32Scale <= smaller
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// FloatsEqual asserts that two float64 values are equal within a relative tolerance of 1e-12.
func (t *T) FloatsEqual(v1, v2 float64) bool {
	if t.record(floatsClose(v1, v2)) {
		return true
	}
	t.floatsNotEqual(callsite.Caller(1), "FloatsEqual", v1, v2)
	return false
}

// Float32sEqual asserts that two float32 values are equal within a relative tolerance of 1e-5.
func (t *T) Float32sEqual(v1, v2 float32) bool {
	if t.record(float32sClose(v1, v2)) {
		return true
	}
	t.floatsNotEqual(callsite.Caller(1), "Float32sEqual", v1, v2)
	return false
}

func (t *T) floatsNotEqual(loc callsite.Location, funcName string, v1, v2 interface{}) {
	expr := expressions(loc, funcName, 0, v1, v2)
	t.fail(loc,
		fmt.Sprintf("Floating point numbers `%s' and `%s' are not equal.", expr[0], expr[1]),
		fmt.Sprintf("%s = %v, %s = %v", expr[0], v1, expr[1], v2))
}
