package patch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job pairs a catalog entry with the value tree to apply it to.
type Job struct {
	Entry  *Entry
	Values Values
}

// ApplyAll runs [Engine.Apply] for each job concurrently, at most GOMAXPROCS
// at a time. Results are returned in job order.
//
// The batch fails as a whole: the first error cancels the remaining jobs and
// is returned with a nil result slice.
func (e *Engine) ApplyAll(ctx context.Context, jobs ...Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, job := range jobs {
		g.Go(func() error {
			r, err := e.Apply(gctx, job.Entry, job.Values)
			if err != nil {
				return err
			}

			results[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
