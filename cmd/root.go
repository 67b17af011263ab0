package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/afairless/asynchronous-downloads/internal/models"
	"github.com/afairless/asynchronous-downloads/internal/modules/persistence"
	"github.com/afairless/asynchronous-downloads/internal/modules/report"
	"github.com/afairless/asynchronous-downloads/internal/modules/runner"
	"github.com/afairless/asynchronous-downloads/internal/modules/urlfile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultURL = "https://jsonplaceholder.typicode.com/todos/1"

var (
	targetURL string
	urlCount  int
	urlsFile  string
	saveDir   string
)

var rootCmd = &cobra.Command{
	Use:   "urlracer",
	Short: "Compare sequential and concurrent download speeds of a batch of URLs",
	Long: `Downloads a batch of URLs twice, once sequentially and once with all
requests in flight, then reports elapsed times and whether the two result
sets are identical`,
}

// Execute wires the context and logger into the commands and runs the CLI.
func Execute(ctx context.Context, logger *zap.Logger) {
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if err := runCompare(ctx, logger); err != nil {
			logger.Error("comparison failed", zap.Error(err))
			os.Exit(1)
		}
	}
	fetchCmd.Run = func(cmd *cobra.Command, args []string) {
		if err := runFetch(ctx, logger); err != nil {
			logger.Error("fetch failed", zap.Error(err))
			os.Exit(1)
		}
	}
	if err := rootCmd.Execute(); err != nil {
		logger.Error("execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&targetURL, "url", "u", defaultURL, "URL to download")
	rootCmd.PersistentFlags().IntVarP(&urlCount, "count", "n", 50, "Number of times to request the URL")
	rootCmd.PersistentFlags().StringVarP(&urlsFile, "urls-file", "f", "", "Path to a file listing URLs (header line skipped, overrides --url/--count)")
	rootCmd.Flags().StringVarP(&saveDir, "save-dir", "s", "", "Directory to save the concurrent downloads to (optional)")
	pflag.CommandLine.AddFlagSet(rootCmd.Flags())
}

func runCompare(ctx context.Context, logger *zap.Logger) error {
	urls, err := resolveURLs(logger)
	if err != nil {
		return err
	}

	logger.Info("starting strategy comparison", zap.Int("urls", len(urls)))

	sequential, err := report.Measure("sequential", func() ([][]byte, error) {
		return runner.Sequential(ctx, urls, logger)
	})
	if err != nil {
		return err
	}

	concurrent, err := report.Measure("concurrent", func() ([][]byte, error) {
		return runner.Concurrent(ctx, urls, logger)
	})
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, sequential, concurrent); err != nil {
		return err
	}

	if saveDir != "" {
		downloads := make([]models.Download, len(urls))
		for i, data := range concurrent.Downloads {
			downloads[i] = models.Download{URL: urls[i], Data: data}
		}
		return persistence.New(saveDir).Save(downloads, logger)
	}
	return nil
}

// resolveURLs builds the batch from the flags: an explicit URL list file
// when given, otherwise one URL repeated count times.
func resolveURLs(logger *zap.Logger) ([]string, error) {
	if urlsFile != "" {
		urls, err := urlfile.Read(urlsFile, logger)
		if err != nil {
			return nil, err
		}
		if len(urls) == 0 {
			return nil, fmt.Errorf("no URLs found in %s", urlsFile)
		}
		return urls, nil
	}
	if urlCount <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", urlCount)
	}
	return urlfile.Repeat(targetURL, urlCount), nil
}
