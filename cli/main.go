// Package cli is the command-line entry point of a test binary: it reads the options, runs every
// registered test case and turns the outcome into the process exit status.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/launchdarkly/unit-harness/crash"
	"github.com/launchdarkly/unit-harness/framework"
	"github.com/launchdarkly/unit-harness/logging"
	"github.com/launchdarkly/unit-harness/reporting"
)

// Environment is everything Run needs from the process. DefaultEnvironment describes the real one.
type Environment struct {
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Getwd     func() (string, error)
	// Exit ends the process. It is used by fail-fast mode and for fatal faults; in all other cases
	// Run returns the status instead.
	Exit func(int)
	// Registry holds the cases to run.
	Registry *framework.Registry
}

func DefaultEnvironment() Environment {
	return Environment{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Getwd:     os.Getwd,
		Exit:      os.Exit,
		Registry:  framework.DefaultRegistry(),
	}
}

// Main runs all test cases in the default registry and exits.
func Main() {
	os.Exit(Run(os.Args, DefaultEnvironment()))
}

// Run executes a test run as described by the command line args (args[0] being the command name)
// and returns the process exit status.
func Run(args []string, env Environment) int {
	env = env.withDefaults()

	params, ok := readCommandLine(args, env.Stdout)
	if !ok {
		return 0
	}
	config, err := loadConfig(params, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return 1
	}

	allowColor := !config.NoColor
	mainDebugLogger := logging.NullLogger()
	if config.Debug || config.DebugAll {
		mainDebugLogger = log.New(env.Stderr, "", log.LstdFlags)
	}
	mainDebugLogger.Printf("Configuration: %+v", config)

	testLogger := newTestLogger(config, params, env, allowColor)

	guard := crash.NewGuard(env.Stderr, env.Exit, allowColor && reporting.IsTerminal(env.Stderr))
	restore := guard.Install()
	defer restore()

	runner := framework.NewRunner(framework.RunnerConfig{
		FailFast:    config.FailFast,
		CatchPanics: !config.NoCatch,
		Fatal:       crash.IsFault,
		Logger:      testLogger,
		ErrorOutput: env.Stderr,
		Exit:        env.Exit,
	})

	mainDebugLogger.Printf("Running %d test case(s)", env.Registry.Len())
	var results framework.Results
	guard.Run(func() {
		results = runner.RunRegistry(env.Registry)
	})
	mainDebugLogger.Printf("%d of %d test case(s) failed", len(results.Failures), len(results.Cases))

	return results.ExitCode()
}

func newTestLogger(config Config, params commandParams, env Environment, allowColor bool) framework.TestLogger {
	if config.JSON {
		return &reporting.JSONTestLogger{
			Out:                env.Stdout,
			IncludeDebugOutput: config.Debug || config.DebugAll,
		}
	}
	console := reporting.NewConsoleTestLogger(env.Stdout, env.Stderr, allowColor)
	console.DebugOutputOnFailure = config.Debug || config.DebugAll
	console.DebugOutputOnSuccess = config.DebugAll
	console.PanicStacks = config.Debug || config.DebugAll
	if !config.NoCatch {
		console.RerunHint = params.noCatchCommand()
	}
	return console
}

func (e Environment) withDefaults() Environment {
	d := DefaultEnvironment()
	if e.Stdout == nil {
		e.Stdout = d.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = d.Stderr
	}
	if e.LookupEnv == nil {
		e.LookupEnv = d.LookupEnv
	}
	if e.Getwd == nil {
		e.Getwd = d.Getwd
	}
	if e.Exit == nil {
		e.Exit = d.Exit
	}
	if e.Registry == nil {
		e.Registry = d.Registry
	}
	return e
}
