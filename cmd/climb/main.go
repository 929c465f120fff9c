package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"climb/internal/observ"
	"climb/internal/version"
)

// app carries state shared by every command of one invocation.
type app struct {
	timer       *observ.Timer
	cleanup     func(failed bool)
	stopProfile func()
}

func newRootCmd() *cobra.Command {
	a := &app{cleanup: func(bool) {}, stopProfile: func() {}}

	rootCmd := &cobra.Command{
		Use:   "climb FILE",
		Short: "Evaluate integer arithmetic expressions",
		Long: `climb parses an arithmetic expression with + - * / ^ ! and parentheses
using precedence climbing, prints its prefix form and evaluates it.`,
		Version:       version.Version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(cmd, args[0], "")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("overflow", "wrap", "integer overflow behaviour (wrap|trap)")
	pf.Bool("strict", false, "reject input left over after the expression")
	pf.Int("max-depth", 10000, "maximum expression nesting depth")
	pf.String("normalize", "none", "unicode normalisation of sources (none|nfc|nfkc)")
	pf.String("config", "", "path to climb.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(
		newEvalCmd(a),
		newTokenizeCmd(a),
		newParseCmd(a),
		newReplCmd(a),
		newBatchCmd(a),
		newCleanCmd(),
		newVersionCmd(),
	)
	rootCmd.SetVersionTemplate("climb {{.Version}}\n")
	return wrapFinish(rootCmd, a)
}

// wrapFinish makes every RunE flush tracing and print timings on the way out.
func wrapFinish(root *cobra.Command, a *app) *cobra.Command {
	var wrap func(c *cobra.Command)
	wrap = func(c *cobra.Command) {
		if run := c.RunE; run != nil {
			c.RunE = func(cmd *cobra.Command, args []string) error {
				err := run(cmd, args)
				a.finish(cmd, err != nil)
				return err
			}
		}
		for _, sub := range c.Commands() {
			wrap(sub)
		}
	}
	wrap(root)
	return root
}

func (a *app) prepare(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	if timings, _ := cmd.Flags().GetBool("timings"); timings {
		a.timer = observ.NewTimer()
	}
	stopProfile, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.stopProfile = stopProfile
	cleanup, err := setupTracing(cmd)
	if err != nil {
		a.stopProfile()
		return err
	}
	a.cleanup = cleanup
	return nil
}

func (a *app) finish(cmd *cobra.Command, failed bool) {
	a.cleanup(failed)
	a.cleanup = func(bool) {}
	a.stopProfile()
	a.stopProfile = func() {}
	if a.timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), a.timer.Summary())
	}
}

func main() {
	os.Exit(run(newRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and maps the outcome to a process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	if !isReported(err) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return exitCode(err)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
