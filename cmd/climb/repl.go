package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"climb/internal/driver"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate one expression per input line",
		Long: `repl reads expressions line by line from standard input. Each line is
parsed and evaluated on its own; an error is reported and the session
continues. A prompt is shown when standard input is a terminal.`,
		Args: cobra.NoArgs,
		RunE: a.runRepl,
	}
}

func (a *app) runRepl(cmd *cobra.Command, _ []string) error {
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	prompt := ""
	if f, ok := in.(*os.File); ok && isTerminal(f) && !isQuiet(cmd) {
		prompt = "> "
	}

	scanner := bufio.NewScanner(in)
	line := 0
	for {
		if prompt != "" {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == ":q" || text == ":quit" {
			break
		}
		res := driver.EvalSource(cmd.Context(), fmt.Sprintf("<repl:%d>", line), []byte(text), opts)
		if res.Failed() {
			if err := failure(cmd, res); !isReported(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
			continue
		}
		fmt.Fprintln(out, res.Value)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("read input: %w", err)
	}
	if prompt != "" {
		fmt.Fprintln(out)
	}
	return nil
}
