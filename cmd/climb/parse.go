package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"climb/internal/diagfmt"
	"climb/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] FILE",
		Short: "Parse FILE and print its expression tree",
		Long: `parse prints the tree of FILE without evaluating it:
  sexpr  prefix form, e.g. (+ 1 (* 2 3))
  tree   indented tree with source positions
  json   nested JSON with spans, depth and node count
  dump   Go-syntax dump of the nested tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "sexpr", "output format (sexpr|tree|json|dump)")
	cmd.Flags().Bool("eval", false, "also evaluate the tree and include the result")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "sexpr", "tree", "json", "dump":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withEval, err := cmd.Flags().GetBool("eval")
	if err != nil {
		return fmt.Errorf("failed to get eval flag: %w", err)
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	var res *driver.Result
	if withEval {
		res, err = driver.Eval(cmd.Context(), path, opts)
	} else {
		res, err = driver.Parse(cmd.Context(), path, opts)
	}
	if err != nil {
		return err
	}
	if res.Tree == nil {
		return failure(cmd, res)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "sexpr":
		_, err = fmt.Fprintln(out, res.Tree)
	case "tree":
		err = diagfmt.FormatTreePretty(out, res.Tree, res.FileSet)
	case "json":
		var result *int32
		if res.Evaluated {
			result = &res.Value
		}
		err = diagfmt.FormatTreeJSON(out, res.File.Path, res.Tree, result)
	case "dump":
		diagfmt.FormatTreeDump(out, res.Tree)
	}
	if err != nil {
		return err
	}
	if res.Failed() {
		return failure(cmd, res)
	}
	if withEval && format != "json" {
		_, err = fmt.Fprintf(out, "= %d\n", res.Value)
	}
	return err
}
