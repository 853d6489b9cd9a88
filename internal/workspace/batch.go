package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"javaxify/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Direction selects which conversion a batch run performs.
type Direction string

const (
	ToClass  Direction = "to-class"
	ToScript Direction = "to-script"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case ToClass, ToScript:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q (want %s or %s)", s, ToClass, ToScript)
}

// Report summarises a batch run.
type Report struct {
	RunID     string
	Direction Direction
	Root      string
	Results   []Result
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Failures returns the results that carry an error.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Collect returns the files under dir that dir's direction would convert,
// sorted. Hidden directories are skipped.
func (w *Workspace) Collect(dir string, d Direction) ([]string, error) {
	ext := w.cfg.ScriptExt
	if d == ToScript {
		ext = w.cfg.ClassExt
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != dir && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// workers is the batch concurrency, at least 1 whatever the config says.
func (w *Workspace) workers() int {
	if w.cfg.Workers < 1 {
		return 1
	}
	return w.cfg.Workers
}

// Batch converts every matching file under dir with up to cfg.Workers
// conversions in flight. A failing file never stops the run; its error is
// recorded in the report. The returned error is non-nil only when dir cannot
// be walked or ctx is cancelled.
func (w *Workspace) Batch(ctx context.Context, dir string, d Direction) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:     uuid.New().String(),
		Direction: d,
		Root:      dir,
	}

	files, err := w.Collect(dir, d)
	if err != nil {
		return report, err
	}
	logging.Workspace("Batch %s: %s %d file(s) under %s", report.RunID, d, len(files), dir)

	audit := logging.AuditWithRun(report.RunID)
	audit.Log(logging.AuditEvent{
		EventType: logging.AuditBatchStart,
		Target:    dir,
		Success:   true,
		Fields:    map[string]interface{}{"direction": string(d), "files": len(files), "workers": w.workers()},
	})

	results := make([]Result, len(files))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers())

	for i, file := range files {
		eg.Go(func() error {
			var res Result
			if err := egCtx.Err(); err != nil {
				res = Result{Source: file, Err: err}
			} else if d == ToScript {
				res = w.writeScript(egCtx, file, audit)
			} else {
				res = w.writeClass(file, audit)
			}

			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	report.Results = results
	for _, res := range results {
		if res.Err != nil {
			report.Failed++
			logging.Get(logging.CategoryWorkspace).Warn("Batch %s: %s failed (%s): %v",
				report.RunID, res.Source, res.Kind(), res.Err)
		} else {
			report.Succeeded++
		}
	}
	report.Duration = time.Since(start)

	logging.Workspace("Batch %s: %d succeeded, %d failed in %v",
		report.RunID, report.Succeeded, report.Failed, report.Duration)
	audit.Log(logging.AuditEvent{
		EventType:  logging.AuditBatchEnd,
		Target:     dir,
		Success:    report.Failed == 0 && ctx.Err() == nil,
		DurationMs: report.Duration.Milliseconds(),
		Fields:     map[string]interface{}{"succeeded": report.Succeeded, "failed": report.Failed},
	})
	return report, ctx.Err()
}
