package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"climb/internal/diag"
	"climb/internal/diagfmt"
	"climb/internal/driver"
	"climb/internal/eval"
	"climb/internal/source"
)

// driverOptions resolves the persistent flags into pipeline options.
func (a *app) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Flags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	overflowStr, err := flags.GetString("overflow")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get overflow flag: %w", err)
	}
	overflow, err := eval.ParseOverflow(overflowStr)
	if err != nil {
		return driver.Options{}, err
	}
	strict, err := flags.GetBool("strict")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get strict flag: %w", err)
	}
	maxDepth, err := flags.GetInt("max-depth")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	normStr, err := flags.GetString("normalize")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get normalize flag: %w", err)
	}
	norm, ok := source.ParseNormalization(normStr)
	if !ok {
		return driver.Options{}, fmt.Errorf("invalid normalize mode: %q (expected: none|nfc|nfkc)", normStr)
	}
	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Overflow:       overflow,
		Strict:         strict,
		MaxDepth:       maxDepth,
		Normalize:      norm,
		Timer:          a.timer,
	}, nil
}

// useColor resolves --color for w. auto enables colour on terminals only.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	colorFlag, _ := cmd.Flags().GetString("color")
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return quiet
}

// printDiagnostics renders bag to the command's stderr.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 || fs == nil {
		return
	}
	bag.Sort()
	bag.Dedup()
	out := cmd.ErrOrStderr()
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, out),
		Context:   2,
		ShowNotes: true,
	}
	if err := diagfmt.Pretty(out, bag, fs, opts); err != nil {
		fmt.Fprintf(out, "failed to render diagnostics: %v\n", err)
	}
}

// failure prints res's diagnostics and returns its error marked as reported.
func failure(cmd *cobra.Command, res *driver.Result) error {
	printDiagnostics(cmd, res.Bag, res.FileSet)
	if res.Bag.Len() == 0 {
		// nothing was rendered, let main print the error
		return res.Err
	}
	return reported(res.Err)
}
