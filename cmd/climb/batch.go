package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"climb/internal/diag"
	"climb/internal/driver"
	"climb/internal/ui"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] DIR",
		Short: "Evaluate every expression file under DIR in parallel",
		Long: `batch evaluates each file under DIR with the configured extension and
prints "path: result" per file in path order. Failed files are reported
on stderr and make the command exit non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args[0])
		},
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ext", driver.DefaultExt, "file extension to evaluate")
	cmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	cmd.Flags().Bool("progress", false, "show a progress view on stderr")
	cmd.Flags().Bool("short", false, "print one line per diagnostic instead of source snippets")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, dir string) error {
	flags := cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	ext, err := flags.GetString("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	showProgress, err := flags.GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	short, err := flags.GetBool("short")
	if err != nil {
		return fmt.Errorf("failed to get short flag: %w", err)
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	bopts := driver.BatchOptions{Jobs: jobs, Ext: ext}
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("climb")
		if cacheErr != nil {
			return fmt.Errorf("open cache: %w", cacheErr)
		}
		bopts.Cache = cache
	}

	var wg sync.WaitGroup
	var events chan driver.Event
	if showProgress && !isQuiet(cmd) {
		files, listErr := driver.ListFiles(dir, ext)
		if listErr != nil {
			return listErr
		}
		events = make(chan driver.Event, 3*len(files)+1)
		bopts.Sink = driver.ChannelSink{Ch: events}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if uiErr := ui.RunProgress(cmd.ErrOrStderr(), "batch "+dir, files, events); uiErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "progress: %v\n", uiErr)
				// keep draining so workers never block on the sink
				for range events {
				}
			}
		}()
	}

	fs, results, err := driver.EvalDir(cmd.Context(), dir, opts, bopts)
	if events != nil {
		close(events)
		wg.Wait()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var firstErr error
	failed := 0
	for _, r := range results {
		res := r.Result
		if !res.Failed() {
			fmt.Fprintf(out, "%s: %d\n", r.Path, res.Value)
			continue
		}
		failed++
		if firstErr == nil {
			firstErr = res.Err
		}
		fmt.Fprintf(out, "%s: %s %s\n", r.Path, diag.KindOf(res.Err), diag.CodeOf(res.Err).ID())
		switch {
		case res.File != nil && short:
			res.Bag.Sort()
			res.Bag.Dedup()
			fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShort(res.Bag.Items(), fs, false))
		case res.File != nil:
			printDiagnostics(cmd, res.Bag, fs)
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", res.Err)
		}
	}
	if failed == 0 {
		return nil
	}
	if !isQuiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(results))
	}
	return reported(firstErr)
}
