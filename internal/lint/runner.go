package lint

import (
	"context"
	"sync"

	"github.com/ariel-frischer/sdk-lints/internal/logging"
	"github.com/ariel-frischer/sdk-lints/internal/workspace"
	"golang.org/x/sync/errgroup"
)

// Runner executes a selection of lints and aggregates their violations.
type Runner struct {
	Log *logging.Logger
	// Concurrency caps how many checks run at once. Zero or less means no limit.
	Concurrency int
	// Progress, when set, is called once per finished lint.
	Progress func(name string, done, total int)

	mu   sync.Mutex
	done int
}

// Result is the aggregate of one runner invocation.
type Result struct {
	Violations []Violation
}

// Failures returns violations that were not fixed. For a check run this is
// every violation.
func (r *Result) Failures() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if !v.Fixed {
			out = append(out, v)
		}
	}
	return out
}

// FixedCount returns how many violations a fix corrected.
func (r *Result) FixedCount() int {
	return len(r.Violations) - len(r.Failures())
}

// OK reports whether the run passed.
func (r *Result) OK() bool {
	return len(r.Failures()) == 0
}

// Check runs every checker. Checks are read-only so they run concurrently,
// but violations are concatenated in checker order. The first fatal error
// cancels the remaining checks.
func (r *Runner) Check(ctx context.Context, ws *workspace.Workspace, checkers []Checker) (*Result, error) {
	r.resetProgress()
	perLint := make([][]Violation, len(checkers))

	g, gctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, c := range checkers {
		g.Go(func() error {
			log := r.Log.With("lint", c.Name())
			log.Debugf("check start")
			vs, err := c.CheckAll(gctx, ws)
			if err != nil {
				return err
			}
			log.Debugf("%d violation(s)", len(vs))
			perLint[i] = vs
			r.report(c.Name(), len(checkers))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, vs := range perLint {
		res.Violations = append(res.Violations, vs...)
	}
	return res, nil
}

// Fix runs every fixer in order. Fixers write files, so they never run
// concurrently.
func (r *Runner) Fix(ctx context.Context, ws *workspace.Workspace, fixers []Fixer, mode Mode) (*Result, error) {
	r.resetProgress()
	res := &Result{}
	for _, f := range fixers {
		r.Log.Debugf("fix %s (%s): start", f.Name(), mode)
		vs, err := f.FixAll(ctx, ws, mode)
		if err != nil {
			return nil, err
		}
		res.Violations = append(res.Violations, vs...)
		r.report(f.Name(), len(fixers))
	}
	return res, nil
}

func (r *Runner) resetProgress() {
	r.mu.Lock()
	r.done = 0
	r.mu.Unlock()
}

func (r *Runner) report(name string, total int) {
	if r.Progress == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	r.Progress(name, r.done, total)
}
