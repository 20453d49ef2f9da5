package framework

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/launchdarkly/unit-harness/framework/callsite"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func typeName[E any]() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}

// matchesKind reports whether a recovered panic value is of kind E: either the value itself has
// type E, or it is an error whose chain contains an E.
func matchesKind[E any](value interface{}) bool {
	if _, ok := value.(E); ok {
		return true
	}
	err, ok := value.(error)
	if !ok {
		return false
	}
	target := reflect.TypeOf((*E)(nil)).Elem()
	if target.Kind() != reflect.Interface && !target.Implements(errorType) {
		return false // errors.As would panic
	}
	var e E
	return errors.As(err, &e)
}

// Panics asserts that calling fn panics with a value of kind E. A panic of any other kind is not
// consumed: it propagates out of Panics exactly as if fn had been called directly.
//
//	framework.Panics[runtime.Error](t, func() { _ = items[10] })
func Panics[E any](t *T, fn func()) bool {
	if t.record(panicsWith[E](fn)) {
		return true
	}
	loc := callsite.Caller(1)
	t.fail(loc, fmt.Sprintf("Panic of type %s not raised.", typeName[E]()))
	return false
}

func panicsWith[E any](fn func()) (caught bool) {
	defer func() {
		if r := recover(); r != nil {
			if !matchesKind[E](r) {
				panic(r)
			}
			caught = true
		}
	}()
	fn()
	return false
}

// ErrorAs asserts that err has an error of type E in its chain, as determined by errors.As.
func ErrorAs[E error](t *T, err error) bool {
	var target E
	if t.record(err != nil && errors.As(err, &target)) {
		return true
	}
	loc := callsite.Caller(1)
	expr := expressions(loc, "ErrorAs", 1, err)
	t.fail(loc,
		fmt.Sprintf("Error `%s' is not of type %s.", expr[0], typeName[E]()),
		fmt.Sprintf("Value is %v", err))
	return false
}
