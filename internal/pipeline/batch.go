package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fnol/internal/claim"
	"fnol/internal/textsource"
)

// Outcome is the result of one document in a batch. Exactly one of Result
// and Err is meaningful.
type Outcome struct {
	Path         string
	Result       claim.Result
	Completeness float64
	Err          error
	Elapsed      time.Duration
}

// BatchReport collects the outcomes of a batch in input order.
type BatchReport struct {
	RunID    string
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Failed counts documents that could not be read.
func (r BatchReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// RouteCounts tallies successful outcomes per route.
func (r BatchReport) RouteCounts() map[claim.Route]int {
	counts := make(map[claim.Route]int)
	for _, o := range r.Outcomes {
		if o.Err == nil {
			counts[o.Result.RecommendedRoute]++
		}
	}
	return counts
}

// Batch processes paths with at most parallel documents in flight. A
// document that fails to read is recorded in its Outcome and does not stop
// the others; only cancellation of ctx aborts the batch.
func (p *Pipeline) Batch(ctx context.Context, paths []string, parallel int) (BatchReport, error) {
	if parallel < 1 {
		parallel = 1
	}
	runID := newRunID()
	logger := p.logger.With("run_id", runID)
	logger.Info("batch started", "documents", len(paths), "workers", parallel)

	start := time.Now()
	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			out := Outcome{Path: path}
			pages, err := p.source.Pages(gctx, path)
			if err != nil {
				out.Err = fmt.Errorf("read %s: %w", path, err)
				logger.Warn("document failed", "path", path, "error", err)
			} else {
				fields := p.extractor.Extract(textsource.Join(pages))
				out.Result = p.Evaluate(fields)
				out.Completeness = p.Completeness(fields).Score
			}
			out.Elapsed = time.Since(t0)
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchReport{}, fmt.Errorf("batch %s: %w", runID, err)
	}

	report := BatchReport{RunID: runID, Outcomes: outcomes, Elapsed: time.Since(start)}
	logger.Info("batch finished",
		"documents", len(paths),
		"failed", report.Failed(),
		"elapsed_ms", report.Elapsed.Milliseconds(),
	)
	return report, nil
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// CollectInputs expands directories (non-recursively) into the supported
// documents they contain. Explicit file arguments are kept as given, even
// with an unsupported extension, so the batch reports them. Directory
// entries are sorted by name.
func CollectInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				out = append(out, arg)
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !textsource.Supported(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
