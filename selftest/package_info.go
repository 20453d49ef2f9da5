// Package selftest registers sample test cases that exercise every assertion of the framework
// package. Importing it adds them to the default registry; the unit-harness binary does that so
// the harness can be tried out, and demonstrates both passing and failing output.
package selftest
