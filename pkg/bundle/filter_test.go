package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleCandidates(c *Classifier) []CandidateFile {
	paths := []string{
		"src/App.tsx",
		"src/main.ts",
		"src/Comp.vue",
		"src/app.css",
		"src/theme.scss",
		"src/app.d.ts",
		"src/types/api.d.ts",
		"test/App.test.tsx",
		"src/util.spec.ts",
		"a.spec.js",
		"generated/client.js",
	}
	out := make([]CandidateFile, len(paths))
	for i, p := range paths {
		out[i] = candidate(c, p)
	}
	return out
}

func TestParseGlobList(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseGlobList(""))
	assert.Nil(t, ParseGlobList(" , ,"))
	assert.Equal(t, []string{"test/**", "*.spec.*"}, ParseGlobList("test/**, *.spec.*"))
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	root := t.TempDir()

	tests := []struct {
		name string
		cfg  FilterConfig
		want []string
	}{
		{
			name: "nothing excluded",
			cfg:  FilterConfig{},
			want: relPaths(sampleCandidates(c)),
		},
		{
			name: "styles",
			cfg:  FilterConfig{ExcludeStyles: true},
			want: []string{"src/App.tsx", "src/main.ts", "src/Comp.vue", "src/app.d.ts", "src/types/api.d.ts",
				"test/App.test.tsx", "src/util.spec.ts", "a.spec.js", "generated/client.js"},
		},
		{
			name: "types",
			cfg:  FilterConfig{ExcludeTypes: true},
			want: []string{"src/App.tsx", "src/main.ts", "src/Comp.vue", "src/app.css", "src/theme.scss",
				"test/App.test.tsx", "src/util.spec.ts", "a.spec.js", "generated/client.js"},
		},
		{
			name: "globs",
			cfg:  FilterConfig{ExcludeGlobs: []string{"test/**", "*.spec.*", "generated"}},
			want: []string{"src/App.tsx", "src/main.ts", "src/Comp.vue", "src/app.css", "src/theme.scss",
				"src/app.d.ts", "src/types/api.d.ts"},
		},
		{
			name: "everything",
			cfg: FilterConfig{ExcludeStyles: true, ExcludeTypes: true,
				ExcludeGlobs: []string{"**/*.spec.*", "test/**"}},
			want: []string{"src/App.tsx", "src/main.ts", "src/Comp.vue", "generated/client.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(root, tt.cfg, zap.NewNop())
			require.NoError(t, err)

			input := sampleCandidates(c)
			got := f.Apply(input)

			assert.Equal(t, tt.want, relPaths(got))
			assert.Subset(t, relPaths(input), relPaths(got))
		})
	}
}

func TestFilter_WellKnownTypeBasenames(t *testing.T) {
	t.Parallel()

	// A rule table without the compound .d.ts rule still drops declaration files.
	c, err := NewClassifier([]ExtensionRule{{Extension: ".ts", Language: "typescript"}})
	require.NoError(t, err)

	f, err := NewFilter(t.TempDir(), FilterConfig{ExcludeTypes: true}, nil)
	require.NoError(t, err)

	got := f.Apply([]CandidateFile{
		candidate(c, "src/vite-env.d.ts"),
		candidate(c, "src/models.d.ts"),
		candidate(c, "src/models.ts"),
	})
	assert.Equal(t, []string{"src/models.ts"}, relPaths(got))
}

func TestFilter_GitIgnore(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"),
		[]byte("# generated\ngenerated/\n*.spec.*\n!src/util.spec.ts\n"), 0644))

	f, err := NewFilter(root, FilterConfig{}, nil)
	require.NoError(t, err)
	got := relPaths(f.Apply(sampleCandidates(c)))
	assert.NotContains(t, got, "generated/client.js")
	assert.NotContains(t, got, "a.spec.js")
	assert.Contains(t, got, "src/util.spec.ts")
	assert.Equal(t, "gitignore", f.Reason(candidate(c, "generated/client.js")))

	f, err = NewFilter(root, FilterConfig{IncludeIgnored: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, relPaths(sampleCandidates(c)), relPaths(f.Apply(sampleCandidates(c))))
}

func TestFilter_Reason(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	f, err := NewFilter(t.TempDir(), FilterConfig{ExcludeStyles: true, ExcludeTypes: true, ExcludeGlobs: []string{"test/**"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "style", f.Reason(candidate(c, "a.css")))
	assert.Equal(t, "type-definition", f.Reason(candidate(c, "a.d.ts")))
	assert.Equal(t, "exclude pattern test/**", f.Reason(candidate(c, "test/a.ts")))
	assert.Equal(t, "", f.Reason(candidate(c, "src/a.ts")))
}

func TestNewFilter_MalformedGlob(t *testing.T) {
	t.Parallel()

	_, err := NewFilter(t.TempDir(), FilterConfig{ExcludeGlobs: []string{"src/[abc"}}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewFilter_UnreadableGitIgnore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// A directory where the ignore file should be cannot be read as a file.
	require.NoError(t, os.Mkdir(filepath.Join(root, ".gitignore"), 0755))

	_, err := NewFilter(root, FilterConfig{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilesystemAccess)

	_, err = NewFilter(root, FilterConfig{IncludeIgnored: true}, nil)
	assert.NoError(t, err)
}
