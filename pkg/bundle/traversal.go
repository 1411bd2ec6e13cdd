// File: pkg/bundle/traversal.go
package bundle

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// SkipDirs lists directory names that are never descended into.
var SkipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".next":        true,
	".nuxt":        true,
	".svelte-kit":  true,
}

// CandidateFile is a file discovered by Walk whose extension is recognized.
type CandidateFile struct {
	Path      string        // Absolute path on disk.
	RelPath   string        // Path relative to the root, slash separated.
	Extension string        // Last extension segment as found on disk.
	Rule      ExtensionRule // Most specific rule for the filename.
}

// Name returns the base name of the file.
func (f CandidateFile) Name() string {
	return filepath.Base(f.Path)
}

// Walk collects every regular file under root that the classifier recognizes,
// pruning SkipDirs. Any traversal error aborts the walk.
func Walk(root string, classifier *Classifier, logger *zap.Logger) ([]CandidateFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Starting file traversal",
		zap.String("root", root),
		zap.Strings("extensions", classifier.Extensions()))

	var files []CandidateFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Error("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return err
		}

		if d.IsDir() {
			if path != root && SkipDirs[d.Name()] {
				logger.Debug("Skipping directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rule, ok := classifier.ForFile(d.Name())
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, CandidateFile{
			Path:      path,
			RelPath:   filepath.ToSlash(relPath),
			Extension: filepath.Ext(path),
			Rule:      rule,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", ErrFilesystemAccess, root, err)
	}

	logger.Debug("Completed file traversal", zap.Int("candidates", len(files)))
	return files, nil
}
