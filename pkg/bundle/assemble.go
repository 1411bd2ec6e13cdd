// File: pkg/bundle/assemble.go
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Frameworks named in the instructions.
var frameworks = []string{"TypeScript", "JavaScript", "React", "Vue", "Svelte", "Solid", "Astro"}

// EmittedBlock is one file's section of the output document.
type EmittedBlock struct {
	RelPath  string
	Language string
	Content  string
}

// Render formats the block as a heading followed by a fenced code block.
func (b EmittedBlock) Render() string {
	return fmt.Sprintf("# %s (%s)\n\n```%s\n%s\n```\n", b.RelPath, b.Language, b.Language, b.Content)
}

// SortCandidates orders files by extension, then by full path.
func SortCandidates(files []CandidateFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return candidateLess(files[i], files[j])
	})
}

func candidateLess(a, b CandidateFile) bool {
	if a.Extension != b.Extension {
		return a.Extension < b.Extension
	}
	return a.Path < b.Path
}

// Assembler renders the output document and instructions for a project.
type Assembler struct {
	ProjectName  string       // Root directory name.
	DocumentName string       // File name of the document, referenced by the instructions.
	Synopsis     string       // One-line project summary; empty selects the placeholder.
	Filter       FilterConfig // Exclusions, echoed in the instructions.
	Tree         bool         // Prepend a project structure section.
}

// Assembly is the output of Assemble.
type Assembly struct {
	Document     string
	Instructions string
	Blocks       []EmittedBlock
	Summary      RunSummary
}

// Assemble sorts files, drops those whose content is blank, and renders the
// document and instructions.
func (a *Assembler) Assemble(files []ProcessedFile) Assembly {
	sorted := make([]ProcessedFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return candidateLess(sorted[i].File, sorted[j].File)
	})

	out := Assembly{Summary: RunSummary{Counts: map[string]int{}}}
	for _, f := range sorted {
		if strings.TrimSpace(f.Content) == "" {
			continue
		}
		out.Blocks = append(out.Blocks, EmittedBlock{
			RelPath:  f.File.RelPath,
			Language: f.File.Rule.Language,
			Content:  f.Content,
		})
		out.Summary.Counts[f.File.Extension]++
	}

	out.Document = a.renderDocument(out.Blocks)
	out.Instructions = RenderInstructions(a.Synopsis, a.ProjectName, a.DocumentName, a.Filter)
	return out
}

func (a *Assembler) renderDocument(blocks []EmittedBlock) string {
	parts := make([]string, 0, len(blocks)+1)
	if a.Tree && len(blocks) > 0 {
		paths := make([]string, len(blocks))
		for i, b := range blocks {
			paths[i] = b.RelPath
		}
		parts = append(parts, EmittedBlock{
			RelPath:  "Project structure",
			Language: "text",
			Content:  strings.TrimSuffix(RenderTree(a.ProjectName, paths), "\n"),
		}.Render())
	}
	for _, b := range blocks {
		parts = append(parts, b.Render())
	}
	return strings.Join(parts, "\n")
}

// Synopsis returns the first line of a project description that is neither
// blank, a heading, nor a code fence.
func Synopsis(description string) string {
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "```") {
			continue
		}
		return trimmed
	}
	return ""
}

// ReadSynopsis extracts the synopsis from the README at root. A missing
// README yields an empty synopsis.
func ReadSynopsis(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, ReadmeFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: read %s: %w", ErrFilesystemAccess, ReadmeFileName, err)
	}
	return Synopsis(string(data)), nil
}

// ExclusionClause renders the parenthetical naming excluded categories, with
// a leading space, or "" when nothing is excluded.
func ExclusionClause(cfg FilterConfig) string {
	switch {
	case cfg.ExcludeStyles && cfg.ExcludeTypes:
		return " (excluding styles and type definitions)"
	case cfg.ExcludeStyles:
		return " (excluding styles)"
	case cfg.ExcludeTypes:
		return " (excluding type definitions)"
	default:
		return ""
	}
}

// RenderInstructions fills the fixed instructions template.
func RenderInstructions(synopsis, projectName, documentName string, cfg FilterConfig) string {
	if synopsis == "" {
		synopsis = fmt.Sprintf("[Please provide a synopsis of the %s project.]", projectName)
	}
	return strings.Join([]string{
		synopsis,
		"",
		fmt.Sprintf("Please act as an expert %s developer and software engineer. "+
			"The attached %s file contains the complete and up-to-date codebase for our application%s. "+
			"Your task is to thoroughly analyze the codebase, understand its programming flow and logic, "+
			"and provide detailed insights, suggestions, and solutions to enhance the application's "+
			"performance, efficiency, readability, and maintainability.",
			strings.Join(frameworks, "/"), documentName, ExclusionClause(cfg)),
		"",
		"We highly value responses that demonstrate a deep understanding of the code. " +
			"Please ensure your recommendations are thoughtful, well-analyzed, and contribute positively " +
			"to the project's success. Your expertise is crucial in helping us improve and upgrade our application.",
	}, "\n")
}
