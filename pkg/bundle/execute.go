// File: pkg/bundle/execute.go
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// RunBundle walks args.Root, filters and transforms the files found, and
// writes the document and instructions beneath <root>/src.
func RunBundle(args *Arguments, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	root, err := filepath.Abs(args.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrFilesystemAccess, args.Root, err)
	}
	projectName := filepath.Base(root)
	logger.Info("Starting bundle process",
		zap.String("root", root),
		zap.Bool("excludeStyles", args.Filter.ExcludeStyles),
		zap.Bool("excludeTypes", args.Filter.ExcludeTypes),
		zap.Strings("excludeGlobs", args.Filter.ExcludeGlobs),
		zap.Bool("includeIgnored", args.Filter.IncludeIgnored))

	classifier := DefaultClassifier()

	// Configuration problems surface before any traversal.
	filter, err := NewFilter(root, args.Filter, logger)
	if err != nil {
		logger.Error("Failed to build filter", zap.Error(err))
		return nil, err
	}

	candidates, err := Walk(root, classifier, logger)
	if err != nil {
		logger.Error("Failed to collect files", zap.Error(err))
		return nil, err
	}

	included := filter.Apply(candidates)
	SortCandidates(included)
	logger.Debug("Filtered candidates", zap.Int("candidates", len(candidates)), zap.Int("included", len(included)))

	bar := newProgressBar(len(included), args.Progress)
	processed, err := ProcessFilesConcurrently(included, NewTransformer(args.Filter), args.MaxWorkers, bar, logger)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		logger.Error("Failed to process files", zap.Error(err))
		return nil, err
	}

	synopsis, err := ReadSynopsis(root)
	if err != nil {
		logger.Error("Failed to read project description", zap.Error(err))
		return nil, err
	}

	documentName := projectName + ".md"
	assembler := &Assembler{
		ProjectName:  projectName,
		DocumentName: documentName,
		Synopsis:     synopsis,
		Filter:       args.Filter,
		Tree:         args.Tree,
	}
	assembly := assembler.Assemble(processed)

	outputDir := filepath.Join(root, OutputDirName)
	if err := ensureDirectory(outputDir, logger); err != nil {
		return nil, fmt.Errorf("%w: create output directory: %w", ErrFilesystemAccess, err)
	}

	result := &Result{
		DocumentPath:     filepath.Join(outputDir, documentName),
		InstructionsPath: filepath.Join(outputDir, InstructionsFileName),
		Candidates:       len(candidates),
		Included:         len(included),
		Summary:          assembly.Summary,
	}
	if err := writeToFile(result.DocumentPath, []byte(assembly.Document), 0644, logger); err != nil {
		return nil, fmt.Errorf("%w: write document: %w", ErrFilesystemAccess, err)
	}
	if err := writeToFile(result.InstructionsPath, []byte(assembly.Instructions), 0644, logger); err != nil {
		return nil, fmt.Errorf("%w: write instructions: %w", ErrFilesystemAccess, err)
	}

	logger.Info("Bundle process completed",
		zap.String("document", result.DocumentPath),
		zap.Int("emittedFiles", len(assembly.Blocks)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// newProgressBar returns a bar over total files, or nil when it would not be shown.
func newProgressBar(total int, visible bool) *progressbar.ProgressBar {
	if !visible || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Reading files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// ensureDirectory creates path when it does not exist yet.
func ensureDirectory(path string, logger *zap.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		logger.Error("Failed to stat directory", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Created directory", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
