package bundle

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ProcessSingleFile reads a candidate and applies the transformer. skipped is
// true when the content turned out to be binary.
func ProcessSingleFile(file CandidateFile, t *Transformer, logger *zap.Logger) (result ProcessedFile, skipped bool, err error) {
	logger.Debug("Reading file content", zap.String("filePath", file.Path))

	fileBytes, readErr := os.ReadFile(file.Path)
	if readErr != nil {
		logger.Error("Failed to read file",
			zap.String("filePath", file.Path),
			zap.Error(readErr))
		return ProcessedFile{}, false, fmt.Errorf("%w: read %s: %w", ErrFilesystemAccess, file.RelPath, readErr)
	}

	if isBinaryContent(fileBytes) {
		logger.Warn("Skipping binary file", zap.String("file", file.RelPath))
		return ProcessedFile{}, true, nil
	}

	content := t.Transform(string(fileBytes), file.Extension)
	logger.Debug("Processed file",
		zap.String("file", file.RelPath),
		zap.Int("rawBytes", len(fileBytes)),
		zap.Int("outputBytes", len(content)))

	return ProcessedFile{File: file, Content: content}, false, nil
}
