package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortCandidates(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	files := []CandidateFile{
		candidate(c, "src/b.ts"),
		candidate(c, "src/a.tsx"),
		candidate(c, "z.css"),
		candidate(c, "src/a.ts"),
		candidate(c, "src/types.d.ts"),
		candidate(c, "a.vue"),
	}

	SortCandidates(files)

	assert.Equal(t, []string{"z.css", "src/a.ts", "src/b.ts", "src/types.d.ts", "src/a.tsx", "a.vue"}, relPaths(files))
}

func TestAssembler_Assemble_MatchesSortCandidates(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	paths := []string{"src/b.ts", "src/a.tsx", "z.css", "src/a.ts", "src/types.d.ts", "a.vue"}

	var (
		files     []CandidateFile
		processed []ProcessedFile
	)
	for _, p := range paths {
		f := candidate(c, p)
		files = append(files, f)
		processed = append(processed, ProcessedFile{File: f, Content: "x"})
	}
	SortCandidates(files)

	out := (&Assembler{ProjectName: "p", DocumentName: "p.md"}).Assemble(processed)

	var emitted []string
	for _, b := range out.Blocks {
		emitted = append(emitted, b.RelPath)
	}
	assert.Equal(t, relPaths(files), emitted)
}

func TestEmittedBlock_Render(t *testing.T) {
	t.Parallel()

	b := EmittedBlock{RelPath: "src/App.tsx", Language: "typescript", Content: "const x = 1;"}
	assert.Equal(t, "# src/App.tsx (typescript)\n\n```typescript\nconst x = 1;\n```\n", b.Render())
}

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	a := &Assembler{ProjectName: "myapp", DocumentName: "myapp.md"}

	out := a.Assemble([]ProcessedFile{
		{File: candidate(c, "src/main.ts"), Content: "main();"},
		{File: candidate(c, "src/empty.ts"), Content: "  \n\t\n"},
		{File: candidate(c, "src/app.css"), Content: ".a{}"},
		{File: candidate(c, "src/App.tsx"), Content: "render();"},
	})

	require.Len(t, out.Blocks, 3)
	assert.Equal(t,
		"# src/app.css (css)\n\n```css\n.a{}\n```\n"+
			"\n"+
			"# src/main.ts (typescript)\n\n```typescript\nmain();\n```\n"+
			"\n"+
			"# src/App.tsx (typescript)\n\n```typescript\nrender();\n```\n",
		out.Document)
	assert.Equal(t, map[string]int{".css": 1, ".ts": 1, ".tsx": 1}, out.Summary.Counts)
	assert.Contains(t, out.Instructions, "[Please provide a synopsis of the myapp project.]")
	assert.NotContains(t, out.Document, "empty.ts")
}

func TestAssembler_Tree(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()
	a := &Assembler{ProjectName: "myapp", DocumentName: "myapp.md", Tree: true}

	out := a.Assemble([]ProcessedFile{
		{File: candidate(c, "src/lib/util.js"), Content: "u"},
		{File: candidate(c, "index.js"), Content: "i"},
	})

	assert.Equal(t,
		"# Project structure (text)\n\n```text\nmyapp/\n├── src/\n│   └── lib/\n│       └── util.js\n└── index.js\n```\n"+
			"\n# index.js (javascript)\n\n```javascript\ni\n```\n"+
			"\n# src/lib/util.js (javascript)\n\n```javascript\nu\n```\n",
		out.Document)

	assert.Empty(t, a.Assemble(nil).Document)
}

func TestSynopsis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first prose line", "# Title\n\nA tiny app.\nMore.", "A tiny app."},
		{"skips fences", "```bash\nnpm i\n```\n", "npm i"},
		{"crlf and indentation", "## H\r\n\r\n   Hello world  \r\n", "Hello world"},
		{"nothing usable", "# Only\n\n## Headings\n```\n", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synopsis(tt.in))
		})
	}
}

func TestReadSynopsis(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s, err := ReadSynopsis(root)
	require.NoError(t, err)
	assert.Empty(t, s)

	require.NoError(t, os.WriteFile(filepath.Join(root, ReadmeFileName), []byte("# x\nDoes things.\n"), 0644))
	s, err = ReadSynopsis(root)
	require.NoError(t, err)
	assert.Equal(t, "Does things.", s)
}

func TestExclusionClause(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ExclusionClause(FilterConfig{}))
	assert.Equal(t, "", ExclusionClause(FilterConfig{ExcludeGlobs: []string{"x"}, IncludeIgnored: true}))
	assert.Equal(t, " (excluding styles)", ExclusionClause(FilterConfig{ExcludeStyles: true}))
	assert.Equal(t, " (excluding type definitions)", ExclusionClause(FilterConfig{ExcludeTypes: true}))
	assert.Equal(t, " (excluding styles and type definitions)", ExclusionClause(FilterConfig{ExcludeStyles: true, ExcludeTypes: true}))
}

func TestRenderInstructions(t *testing.T) {
	t.Parallel()

	got := RenderInstructions("A tiny app.", "myapp", "myapp.md", FilterConfig{ExcludeStyles: true})
	want := "A tiny app.\n" +
		"\n" +
		"Please act as an expert TypeScript/JavaScript/React/Vue/Svelte/Solid/Astro developer and software engineer. " +
		"The attached myapp.md file contains the complete and up-to-date codebase for our application (excluding styles). " +
		"Your task is to thoroughly analyze the codebase, understand its programming flow and logic, and provide detailed " +
		"insights, suggestions, and solutions to enhance the application's performance, efficiency, readability, and maintainability.\n" +
		"\n" +
		"We highly value responses that demonstrate a deep understanding of the code. Please ensure your recommendations are " +
		"thoughtful, well-analyzed, and contribute positively to the project's success. Your expertise is crucial in helping " +
		"us improve and upgrade our application."
	assert.Equal(t, want, got)

	placeholder := RenderInstructions("", "myapp", "myapp.md", FilterConfig{})
	assert.Contains(t, placeholder, "[Please provide a synopsis of the myapp project.]\n\n")
	assert.Contains(t, placeholder, "codebase for our application. Your task")
}
