package framework

import (
	"cmp"
	"fmt"
	"math"

	"github.com/launchdarkly/unit-harness/framework/callsite"

	"github.com/stretchr/testify/assert"
)

// True asserts that value is true.
func (t *T) True(value bool) bool {
	if t.record(value) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "True", 0, value)
	t.fail(loc,
		fmt.Sprintf("Expression `%s' is not true.", expr[0]),
		fmt.Sprintf("Value is %v", value))
	return false
}

// False asserts that value is false.
func (t *T) False(value bool) bool {
	if t.record(!value) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "False", 0, value)
	t.fail(loc,
		fmt.Sprintf("Expression `%s' is not false.", expr[0]),
		fmt.Sprintf("Value is %v", value))
	return false
}

// Equal asserts that two values are equal, as determined by testify's ObjectsAreEqual.
func (t *T) Equal(v1, v2 interface{}) bool {
	if t.record(assert.ObjectsAreEqual(v1, v2)) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "Equal", 0, v1, v2)
	t.fail(loc,
		fmt.Sprintf("Expressions `%s' and `%s' are not equal.", expr[0], expr[1]),
		fmt.Sprintf("%s = %v, %s = %v", expr[0], v1, expr[1], v2))
	return false
}

// AlmostEqual asserts that two numbers differ by strictly less than precision.
func (t *T) AlmostEqual(v1, v2, precision float64) bool {
	if t.record(math.Abs(v1-v2) < precision) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "AlmostEqual", 0, v1, v2)
	t.fail(loc,
		fmt.Sprintf("Expressions `%s' and `%s' are not almost equal.", expr[0], expr[1]),
		fmt.Sprintf("%s = %v, %s = %v", expr[0], v1, expr[1], v2))
	return false
}

// StringsEqual asserts that two strings have the same content.
func (t *T) StringsEqual(v1, v2 string) bool {
	if t.record(v1 == v2) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "StringsEqual", 0, v1, v2)
	t.fail(loc,
		fmt.Sprintf("Strings `%s' (1) and `%s' (2) are not equal.", expr[0], expr[1]),
		fmt.Sprintf("(1): '%s',", v1),
		fmt.Sprintf("(2): '%s'", v2))
	return false
}

// Relation is a comparison operator for Compare.
type Relation string

const (
	Less           Relation = "<"
	LessOrEqual    Relation = "<="
	Greater        Relation = ">"
	GreaterOrEqual Relation = ">="
	EqualTo        Relation = "=="
	NotEqualTo     Relation = "!="
)

func holds[V cmp.Ordered](v1 V, rel Relation, v2 V) bool {
	switch rel {
	case Less:
		return v1 < v2
	case LessOrEqual:
		return v1 <= v2
	case Greater:
		return v1 > v2
	case GreaterOrEqual:
		return v1 >= v2
	case EqualTo:
		return v1 == v2
	case NotEqualTo:
		return v1 != v2
	}
	panic(fmt.Sprintf("unknown relation %q", string(rel)))
}

// Compare asserts that "v1 rel v2" holds, for example Compare(t, len(items), Less, 10).
func Compare[V cmp.Ordered](t *T, v1 V, rel Relation, v2 V) bool {
	if t.record(holds(v1, rel, v2)) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "Compare", 1, v1, rel, v2)
	t.fail(loc,
		fmt.Sprintf("Expression `%s %s %s' is not true.", expr[0], rel, expr[2]),
		fmt.Sprintf("%s = %v, %s = %v", expr[0], v1, expr[2], v2))
	return false
}
