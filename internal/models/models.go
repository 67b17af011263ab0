package models

import "time"

// Download is one fetched URL body. Data is empty (but non-nil) when the
// server answered with a non-2xx status.
type Download struct {
	URL  string
	Data []byte
}

// StrategyResult holds the outcome of one full strategy run over a batch.
type StrategyResult struct {
	Name      string
	Elapsed   time.Duration
	Downloads [][]byte
}

// TotalBytes sums the sizes of all downloaded bodies.
func (r StrategyResult) TotalBytes() int {
	total := 0
	for _, d := range r.Downloads {
		total += len(d)
	}
	return total
}
