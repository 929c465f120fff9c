package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"climb/internal/driver"
)

func newEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] FILE",
		Short: "Parse and evaluate the expression in FILE",
		Long: `eval reads FILE, parses its expression and prints
"Evaluating <prefix form>: <result>". With --expr the expression is taken
from the command line instead.`,
		Args: func(cmd *cobra.Command, args []string) error {
			expr, _ := cmd.Flags().GetString("expr")
			if expr != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := cmd.Flags().GetString("expr")
			if err != nil {
				return fmt.Errorf("failed to get expr flag: %w", err)
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.runEval(cmd, path, expr)
		},
	}
	cmd.Flags().String("expr", "", "evaluate this expression instead of a file")
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, path, expr string) error {
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	var res *driver.Result
	if expr != "" {
		res = driver.EvalSource(cmd.Context(), "<expr>", []byte(expr), opts)
	} else {
		res, err = driver.Eval(cmd.Context(), path, opts)
		if err != nil {
			return err
		}
	}
	if res.Failed() {
		return failure(cmd, res)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Evaluating %s: %d\n", res.Tree, res.Value)
	return err
}
