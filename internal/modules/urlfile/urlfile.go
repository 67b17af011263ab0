package urlfile

import (
	"bufio"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Read loads a URL list from a text file with one URL per line. The first
// line is treated as a header and skipped; blank lines are skipped and
// surrounding whitespace is trimmed.
func Read(path string, logger *zap.Logger) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	isHeader := true

	for scanner.Scan() {
		if isHeader {
			isHeader = false
			continue
		}
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}
		logger.Debug("read URL", zap.String("url", url))
		urls = append(urls, url)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Info("finished reading URLs",
		zap.String("path", path),
		zap.Int("total_urls", len(urls)))
	return urls, nil
}

// Repeat builds the reference batch: one URL repeated count times.
func Repeat(url string, count int) []string {
	urls := make([]string, count)
	for i := range urls {
		urls[i] = url
	}
	return urls
}
