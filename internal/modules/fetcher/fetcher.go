package fetcher

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// chunkSize is the read size used when draining response bodies.
const chunkSize = 1024

// Bytes issues a GET for url on the shared client and returns the full
// response body, read in fixed-size chunks until end of stream. A non-2xx
// status yields an empty (non-nil) slice and no error; only transport
// failures are returned as errors.
func Bytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		return []byte{}, nil
	}

	return drain(resp.Body)
}

// JSON issues a GET for url and decodes the body as a JSON object. A
// non-2xx status yields an empty (non-nil) map and no error. A body that
// is not valid JSON is a decode error and propagates.
func JSON(ctx context.Context, client *http.Client, url string) (map[string]any, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		return map[string]any{}, nil
	}

	var record map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding json from %s: %w", url, err)
	}
	return record, nil
}

// CSV returns a fetch function that issues a GET and parses the body as
// delimiter-separated rows. A non-2xx status yields the sentinel table:
// a single row holding one empty field.
func CSV(delimiter rune) func(context.Context, *http.Client, string) ([][]string, error) {
	return func(ctx context.Context, client *http.Client, url string) ([][]string, error) {
		resp, err := get(ctx, client, url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if !statusOK(resp.StatusCode) {
			return SentinelTable(), nil
		}

		body, err := drain(resp.Body)
		if err != nil {
			return nil, err
		}
		return parseRows(string(body), delimiter)
	}
}

// SentinelTable is the row table returned for a failed CSV fetch.
func SentinelTable() [][]string {
	return [][]string{{""}}
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", url, err)
	}
	return resp, nil
}

func statusOK(code int) bool {
	return code >= 200 && code < 300
}

// drain reads r to end of stream in chunkSize pieces, accumulating into
// one buffer. Any chunk size is behavior-preserving; 1024 matches the
// reference scenario.
func drain(r io.Reader) ([]byte, error) {
	buf := make([]byte, 0, chunkSize)
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
	}
}

func parseRows(text string, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing rows: %w", err)
	}
	return rows, nil
}
