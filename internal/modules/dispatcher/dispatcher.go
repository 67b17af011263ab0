package dispatcher

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchFunc downloads and processes a single URL using the batch's shared
// client. Implementations must treat a non-2xx status as a normal empty
// result and reserve the error return for transport-level failures.
type FetchFunc[T any] func(ctx context.Context, client *http.Client, url string) (T, error)

// Dispatch fans out one fetch task per URL and collects their results in
// input order, regardless of completion order. The returned slice always
// has exactly one entry per URL.
//
// The batch is fail-fast: the first task to return an error cancels the
// remaining tasks and Dispatch returns that error with no partial results.
func Dispatch[T any](ctx context.Context, urls []string, logger *zap.Logger, fn FetchFunc[T]) ([]T, error) {
	// One client per batch, shared read-only across all tasks.
	client := &http.Client{}
	defer client.CloseIdleConnections()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]T, len(urls))

	logger.Debug("dispatching batch", zap.Int("urls", len(urls)))

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			result, err := fn(ctx, client, url)
			if err != nil {
				logger.Error("fetch task failed",
					zap.Int("index", i),
					zap.String("url", url),
					zap.Error(err))
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("batch complete", zap.Int("results", len(results)))
	return results, nil
}
