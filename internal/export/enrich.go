package export

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Enrich replaces each record with its detail record, running at most
// limit fetches at a time. A record whose fetch fails is kept as-is and
// counted in fallbacks. Only cancellation of ctx aborts the whole run.
func Enrich[T any](ctx context.Context, items []T, limit int, fetch func(context.Context, T) (T, error)) ([]T, int, error) {
	if limit < 1 {
		limit = 1
	}
	out := make([]T, len(items))
	var fallbacks atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			detail, err := fetch(gctx, item)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logrus.WithError(err).WithField("index", i).Warn("Export enrichment failed, using list record")
				fallbacks.Add(1)
				out[i] = item
				return nil
			}
			out[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, int(fallbacks.Load()), err
	}
	return out, int(fallbacks.Load()), nil
}
