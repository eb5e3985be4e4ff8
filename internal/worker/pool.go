// Package worker analyses independent games concurrently. Moves within one
// game are strictly sequential, but separate games share nothing as long
// as each analysis owns a private evaluator session, so the pool gives
// every worker its own session from a factory.
package worker

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/chesskit/analyzer-go/internal/analysis"
	apperrors "github.com/chesskit/analyzer-go/internal/errors"
)

// EvaluatorFactory builds one evaluator session. It is called once per
// worker; sessions implementing io.Closer are closed when the worker
// finishes.
type EvaluatorFactory func() (analysis.Evaluator, error)

// Result is the analysis of one game in a batch. Err carries per-game
// failures; the batch itself only fails on structural problems such as a
// factory that cannot produce sessions.
type Result struct {
	Index    int
	Analysis *analysis.GameAnalysis
	Err      error
}

// Pool runs game analyses across a fixed number of workers.
type Pool struct {
	workers int
	factory EvaluatorFactory
	opts    []analysis.Option
}

// NewPool creates a pool. The analysis options are passed to every
// worker's Analyzer.
func NewPool(workers int, factory EvaluatorFactory, opts ...analysis.Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, factory: factory, opts: opts}
}

// AnalyzeAll analyses every game and returns results indexed like the
// input, so output order is deterministic regardless of scheduling.
func (p *Pool) AnalyzeAll(ctx context.Context, games []string) ([]Result, error) {
	results := make([]Result, len(games))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range games {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			eval, err := p.factory()
			if err != nil {
				return apperrors.Wrap(err, "worker: creating evaluator session")
			}
			if closer, ok := eval.(io.Closer); ok {
				defer closer.Close()
			}

			analyzer := analysis.New(eval, p.opts...)
			for i := range jobs {
				ga, err := analyzer.AnalyzeGame(ctx, games[i])
				if err != nil {
					err = &apperrors.AnalysisError{GameNum: i + 1, Err: err}
				}
				results[i] = Result{Index: i, Analysis: ga, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
