package runner

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/afairless/asynchronous-downloads/internal/modules/dispatcher"
	"github.com/afairless/asynchronous-downloads/internal/modules/fetcher"
	"go.uber.org/zap"
)

// Sequential downloads every URL one at a time with a fresh client per
// request, fully blocking. Requests answered with a non-2xx status are
// dropped from the output, so the returned list may be shorter than urls.
// Transport failures abort the run.
func Sequential(ctx context.Context, urls []string, logger *zap.Logger) ([][]byte, error) {
	downloads := make([][]byte, 0, len(urls))

	for i, url := range urls {
		data, ok, err := fetchOnce(ctx, url)
		if err != nil {
			return nil, err
		}
		// Failed requests are omitted entirely, not kept as empty
		// entries. The concurrent path behaves differently; see
		// Concurrent.
		if !ok {
			logger.Debug("dropping failed download",
				zap.Int("index", i),
				zap.String("url", url))
			continue
		}
		downloads = append(downloads, data)
	}

	return downloads, nil
}

// Concurrent downloads every URL in parallel under one shared client.
// The output is index-aligned with urls: one entry per URL, empty when
// the server answered with a non-2xx status.
func Concurrent(ctx context.Context, urls []string, logger *zap.Logger) ([][]byte, error) {
	return dispatcher.Dispatch(ctx, urls, logger, fetcher.Bytes)
}

// fetchOnce performs one blocking GET on its own short-lived client.
// ok reports whether the status was 2xx; data is only meaningful when ok.
func fetchOnce(ctx context.Context, url string) (data []byte, ok bool, err error) {
	client := &http.Client{}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, nil
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, true, nil
}
