package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestTree creates files (slash-separated relative path -> content) under a
// new directory named name inside a temp dir, and returns its path.
func writeTestTree(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(root, 0755))
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

func relPaths(files []CandidateFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func candidate(c *Classifier, relPath string) CandidateFile {
	rule, _ := c.ForFile(filepath.Base(relPath))
	return CandidateFile{
		Path:      "/project/" + relPath,
		RelPath:   relPath,
		Extension: filepath.Ext(relPath),
		Rule:      rule,
	}
}
