package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWalk_CollectsRecognizedFiles(t *testing.T) {
	t.Parallel()

	root := writeTestTree(t, "app", map[string]string{
		"src/App.tsx":             "export {}",
		"src/styles/main.css":     ".a{}",
		"src/types/global.d.ts":   "declare const x: number;",
		"README.md":               "# app",
		"package.json":            "{}",
		"node_modules/react/a.js": "x",
		"lib/node_modules/b.js":   "x",
		"dist/bundle.js":          "x",
		"build/out.js":            "x",
		"out/x.js":                "x",
		".git/hooks/pre.js":       "x",
		".svelte-kit/gen.js":      "x",
		"src/build.ts":            "export const build = 1",
	})

	files, err := Walk(root, DefaultClassifier(), zap.NewNop())
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"src/App.tsx", "src/styles/main.css", "src/types/global.d.ts", "src/build.ts"},
		relPaths(files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		if f.RelPath == "src/types/global.d.ts" {
			assert.Equal(t, ".ts", f.Extension)
			assert.Equal(t, CategoryTypeDefinition, f.Rule.Category)
		}
	}
}

func TestWalk_RootNamedLikeSkippedDirectory(t *testing.T) {
	t.Parallel()

	root := writeTestTree(t, "build", map[string]string{"index.js": "x"})

	files, err := Walk(root, DefaultClassifier(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.js"}, relPaths(files))
}

func TestWalk_SkipsSymlinks(t *testing.T) {
	t.Parallel()

	root := writeTestTree(t, "app", map[string]string{"a.js": "x"})
	if err := os.Symlink(filepath.Join(root, "a.js"), filepath.Join(root, "b.js")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := Walk(root, DefaultClassifier(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js"}, relPaths(files))
}

func TestWalk_UnreadableDirectoryIsFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := writeTestTree(t, "app", map[string]string{"a.js": "x", "locked/b.js": "x"})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	files, err := Walk(root, DefaultClassifier(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilesystemAccess)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Nil(t, files)
}

func TestWalk_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Walk(filepath.Join(t.TempDir(), "missing"), DefaultClassifier(), nil)
	assert.ErrorIs(t, err, ErrFilesystemAccess)
}
