package cli

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	failFastFlag = "fail-fast"
	noCatchFlag  = "no-catch"
	debugFlag    = "debug"
	debugAllFlag = "debug-all"
	jsonFlag     = "json"
	noColorFlag  = "no-color"
	configFlag   = "config"
)

// commandParams holds what was given on the command line. set records which flags were passed
// explicitly, since only those override the project config file.
type commandParams struct {
	commandName string
	args        []string
	configPath  string

	flags Config
	set   map[string]bool
}

// readCommandLine parses args, where args[0] is the command name. It returns false if the
// arguments were not valid, or help was requested; in that case usage has been written to out.
func readCommandLine(args []string, out io.Writer) (commandParams, bool) {
	p := commandParams{set: map[string]bool{}}
	if len(args) > 0 {
		p.commandName = args[0]
		p.args = args[1:]
	}

	ran := false
	cmd := &cobra.Command{
		Use:           filepath.Base(p.commandName),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Flags().Visit(func(f *pflag.Flag) { p.set[f.Name] = true })
			ran = true
			return nil
		},
	}
	fs := cmd.Flags()
	fs.BoolVarP(&p.flags.FailFast, failFastFlag, "f", false, "Exit after first failure")
	fs.BoolVarP(&p.flags.NoCatch, noCatchFlag, "n", false, "Do not catch panics (useful for debugging)")
	fs.BoolVarP(&p.flags.Debug, debugFlag, "d", false, "Show debug output of failed tests, and log what the harness does")
	fs.BoolVar(&p.flags.DebugAll, debugAllFlag, false, "Show debug output of all tests")
	fs.BoolVar(&p.flags.JSON, jsonFlag, false, "Report events as JSON lines on stdout")
	fs.BoolVar(&p.flags.NoColor, noColorFlag, false, "Never use colored output")
	fs.StringVar(&p.configPath, configFlag, "", fmt.Sprintf("Project config file (default %s, if present)", DefaultConfigFile))
	fs.SortFlags = false

	printUsage := func() {
		fmt.Fprint(out, usage(p.commandName, fs))
	}
	cmd.SetHelpFunc(func(*cobra.Command, []string) { printUsage() })
	cmd.SetUsageFunc(func(*cobra.Command) error {
		printUsage()
		return nil
	})
	cmd.SetArgs(append([]string{}, p.args...)) // never nil, or cobra falls back to os.Args
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)

	if err := cmd.Execute(); err != nil || !ran {
		if err != nil {
			printUsage()
		}
		return p, false
	}
	return p, true
}

func usage(commandName string, fs *pflag.FlagSet) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Usage: %s [-f] [-n]\n\n", commandName)
	b.WriteString(fs.FlagUsages())
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// noCatchCommand is the command line that repeats this run with panics left uncaught.
func (p commandParams) noCatchCommand() string {
	var b commandBuilder
	b.add(p.commandName)
	for _, a := range p.args {
		if a == "-n" || a == "--"+noCatchFlag {
			continue
		}
		b.add(a)
	}
	b.add("--" + noCatchFlag)
	return b.String()
}
