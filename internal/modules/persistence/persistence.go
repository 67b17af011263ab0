package persistence

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/afairless/asynchronous-downloads/internal/models"
	"go.uber.org/zap"
)

// FilePersister writes downloaded bodies to files, one file per download.
type FilePersister struct {
	saveDir string
}

const defaultSaveDir = "./downloads"

// New creates a FilePersister with an optional custom directory.
func New(saveDir ...string) *FilePersister {
	dir := defaultSaveDir
	if len(saveDir) > 0 {
		dir = saveDir[0]
	}
	return &FilePersister{saveDir: dir}
}

// Save writes every non-empty download to the save directory. Filenames
// are derived from the source URL (base64url) plus the batch index, so
// repeated URLs do not overwrite each other. A failure to write one file
// is logged and counted but does not stop the rest.
func (fp *FilePersister) Save(downloads []models.Download, logger *zap.Logger) error {
	if err := os.MkdirAll(fp.saveDir, 0o755); err != nil {
		return err
	}

	successCount := 0
	skipCount := 0
	failCount := 0

	for i, d := range downloads {
		if len(d.Data) == 0 {
			skipCount++
			continue
		}

		filename := fmt.Sprintf("%s-%d.txt",
			base64.URLEncoding.EncodeToString([]byte(d.URL)), i)
		path := filepath.Join(fp.saveDir, filename)

		logger.Debug("persisting file", zap.String("path", path))
		if err := os.WriteFile(path, d.Data, 0o644); err != nil {
			logger.Warn("persist failed",
				zap.String("url", d.URL),
				zap.String("path", path),
				zap.Error(err))
			failCount++
			continue
		}
		successCount++
	}

	logger.Info("persistence statistics",
		zap.Int("successful", successCount),
		zap.Int("skipped_empty", skipCount),
		zap.Int("failed", failCount))
	return nil
}
