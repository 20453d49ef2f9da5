// Package framework contains the core of the unit harness: the registry that test cases are added
// to, the execution handle T that assertions are made against, and the Runner that executes every
// registered case in order and aggregates the results.
//
// The general model is:
//
// 1. Test cases register themselves with a display name, normally from an init function, so that
// the registry is fully populated before main runs. Registration order is execution order.
//
// 2. The Runner creates a T for each case and calls the case's Run method exactly once. Every
// assertion made through T is counted; a failed assertion prints a diagnostic but does not stop
// the case, unless fail-fast mode is enabled, in which case the whole process exits.
//
// 3. A panic escaping from a case marks that case as crashed and the run continues with the next
// case, unless panic catching is disabled. Panics that represent fatal faults can be handed off to
// an external crash handler instead (see the crash package).
//
// The Runner does not format anything itself. It reports structured events to a TestLogger, and
// the caller decides how to present them.
package framework
