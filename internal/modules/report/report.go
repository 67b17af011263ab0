package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/afairless/asynchronous-downloads/internal/models"
	"github.com/olekukonko/tablewriter"
)

// previewLimit caps how many bytes of the first download are echoed.
const previewLimit = 256

// Measure runs one strategy and records its wall-clock elapsed time.
func Measure(name string, run func() ([][]byte, error)) (models.StrategyResult, error) {
	start := time.Now()
	downloads, err := run()
	elapsed := time.Since(start)
	if err != nil {
		return models.StrategyResult{}, fmt.Errorf("%s downloads: %w", name, err)
	}
	return models.StrategyResult{
		Name:      name,
		Elapsed:   elapsed,
		Downloads: downloads,
	}, nil
}

// Equal reports whether two download lists match element-wise.
func Equal(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Write renders the comparison between two strategy runs: elapsed times,
// a preview of each list's first item, a summary table, and the equality
// verdict.
func Write(w io.Writer, first, second models.StrategyResult) error {
	for _, r := range []models.StrategyResult{first, second} {
		if _, err := fmt.Fprintf(w, "Elapsed time for %s downloads: %s\n", r.Name, r.Elapsed); err != nil {
			return err
		}
	}

	for _, r := range []models.StrategyResult{first, second} {
		if _, err := fmt.Fprintf(w, "\n%s downloads, first item:\n%s\n", r.Name, firstItem(r.Downloads)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Strategy", "Downloads", "Bytes", "Elapsed")
	for _, r := range []models.StrategyResult{first, second} {
		if err := table.Append([]string{
			r.Name,
			strconv.Itoa(len(r.Downloads)),
			strconv.Itoa(r.TotalBytes()),
			r.Elapsed.String(),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	verdict := "The two sets of downloads are not identical"
	if Equal(first.Downloads, second.Downloads) {
		verdict = "Both sets of downloads are identical"
	}
	_, err := fmt.Fprintf(w, "\n%s\n", verdict)
	return err
}

func firstItem(downloads [][]byte) string {
	if len(downloads) == 0 {
		return "(no downloads)"
	}
	item := downloads[0]
	if len(item) > previewLimit {
		return string(item[:previewLimit]) + "..."
	}
	return string(item)
}
