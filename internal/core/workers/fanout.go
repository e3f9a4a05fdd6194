package workers

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DefaultFanOutLimit caps concurrent upstream calls when no limit is configured.
const DefaultFanOutLimit = 8

type Failure[K comparable] struct {
	Key K
	Err error
}

// FanOutResult holds the successful keys and values in input order plus the
// per-key failures.
type FanOutResult[K comparable, T any] struct {
	Keys     []K
	Values   []T
	Failures []Failure[K]
}

// FailedKeys lists the keys whose fetch failed, in input order.
func (r FanOutResult[K, T]) FailedKeys() []K {
	keys := make([]K, 0, len(r.Failures))
	for _, f := range r.Failures {
		keys = append(keys, f.Key)
	}
	return keys
}

// Err combines every failure into one error, nil when all fetches succeeded.
func (r FanOutResult[K, T]) Err() error {
	var errs error
	for _, f := range r.Failures {
		errs = multierr.Append(errs, fmt.Errorf("%v: %w", f.Key, f.Err))
	}
	return errs
}

// FanOut runs fetch for every key with at most limit calls in flight.
// A failing key never cancels its siblings.
func FanOut[K comparable, T any](ctx context.Context, keys []K, limit int, fetch func(context.Context, K) (T, error)) FanOutResult[K, T] {
	if limit <= 0 {
		limit = DefaultFanOutLimit
	}

	values := make([]T, len(keys))
	errs := make([]error, len(keys))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			values[i], errs[i] = fetch(ctx, key)
			return nil
		})
	}
	_ = g.Wait()

	res := FanOutResult[K, T]{
		Keys:   make([]K, 0, len(keys)),
		Values: make([]T, 0, len(keys)),
	}
	for i, key := range keys {
		if errs[i] != nil {
			res.Failures = append(res.Failures, Failure[K]{Key: key, Err: errs[i]})
			continue
		}
		res.Keys = append(res.Keys, key)
		res.Values = append(res.Values, values[i])
	}
	return res
}
