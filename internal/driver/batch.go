package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"climb/internal/diag"
	"climb/internal/source"
	"climb/internal/trace"
)

// DefaultExt is the file extension batch mode looks for.
const DefaultExt = ".calc"

// BatchOptions configures EvalDir.
type BatchOptions struct {
	Jobs  int    // <= 0 means GOMAXPROCS
	Ext   string // empty means DefaultExt
	Cache *DiskCache
	Sink  ProgressSink
}

// BatchResult is the outcome for one file of a batch.
type BatchResult struct {
	Path   string
	Result *Result
	Cached bool
}

// ListFiles returns every file under dir with extension ext, sorted.
func ListFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExt
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// EvalDir evaluates every matching file under dir in parallel. Files are
// loaded up front into one FileSet so diagnostics can be rendered after
// the batch; each worker owns its lexer, arena and bag. Results are in
// path order. A file that fails to load or evaluate is reported in its
// result; only cancellation aborts the batch.
func EvalDir(ctx context.Context, dir string, opts Options, bopts BatchOptions) (*source.FileSet, []BatchResult, error) {
	files, err := ListFiles(dir, bopts.Ext)
	if err != nil {
		return nil, nil, err
	}
	fileSet := opts.newFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
		emit(bopts.Sink, Event{File: path, Status: StatusQueued})
	}

	jobs := bopts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	batchSpan := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx)).
		WithExtra("files", itoa(len(files)))
	ctx = trace.WithSpan(ctx, batchSpan)
	timerIdx := opts.Timer.Begin("batch")
	// workers share the FileSet read-only and must not record per-file phases
	workerOpts := opts
	workerOpts.Timer = nil

	// indexes are unique per goroutine, no mutex needed
	results := make([]BatchResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				res := &Result{FileSet: fileSet, Bag: diag.NewBag(opts.MaxDiagnostics), Err: loadError(path, loadErr)}
				results[i] = BatchResult{Path: path, Result: res}
				emit(bopts.Sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: res.Err})
				return nil
			}

			started := time.Now()
			file := fileSet.Get(fileIDs[path])
			key := CacheKey(file.Content, workerOpts)
			var cached CachedResult
			if hit, _ := bopts.Cache.Get(key, &cached); hit {
				results[i] = BatchResult{Path: path, Result: fromCached(&cached, fileSet, file, workerOpts), Cached: true}
				emit(bopts.Sink, finalEvent(path, StageCache, results[i].Result, started))
				return nil
			}

			emit(bopts.Sink, Event{File: path, Stage: StageEval, Status: StatusWorking})
			res := evalFile(gctx, fileSet, file, workerOpts)
			results[i] = BatchResult{Path: path, Result: res}
			// a failed cache write only costs a recomputation next time
			_ = bopts.Cache.Put(key, toCached(res))
			emit(bopts.Sink, finalEvent(path, StageEval, res, started))
			return nil
		})
	}

	err = g.Wait()
	opts.Timer.End(timerIdx, itoa(len(files))+" files")
	failed := 0
	for _, r := range results {
		if r.Result != nil && r.Result.Failed() {
			failed++
		}
	}
	batchSpan.WithExtra("failed", itoa(failed)).End("")
	return fileSet, results, err
}

func finalEvent(path string, stage Stage, res *Result, started time.Time) Event {
	evt := Event{File: path, Stage: stage, Status: StatusDone, Elapsed: time.Since(started)}
	if res.Failed() {
		evt.Status = StatusError
		evt.Err = res.Err
	}
	return evt
}
