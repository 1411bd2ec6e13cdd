package bundle

import (
	"fmt"
	"io"
	"sort"
)

// RunSummary counts emitted files per extension.
type RunSummary struct {
	Counts map[string]int
}

// ExtensionCount is one row of a RunSummary.
type ExtensionCount struct {
	Extension string
	Count     int
}

// Total returns the number of emitted files.
func (s RunSummary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// Sorted returns the counts, largest first, ties broken by extension.
func (s RunSummary) Sorted() []ExtensionCount {
	rows := make([]ExtensionCount, 0, len(s.Counts))
	for ext, n := range s.Counts {
		rows = append(rows, ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Extension < rows[j].Extension
	})
	return rows
}

// WriteSummary prints a human-readable report of a run.
func WriteSummary(w io.Writer, result *Result, cfg FilterConfig) error {
	ew := &errWriter{w: w}
	ew.printf("All files have been compiled into %s\n", result.DocumentPath)
	ew.printf("Custom instructions have been created at %s\n", result.InstructionsPath)
	ew.printf("Styles %s in the output\n", includedWord(!cfg.ExcludeStyles))
	ew.printf("Type definitions %s in the output\n", includedWord(!cfg.ExcludeTypes))
	ew.printf("Git-ignored files %s in the output\n", includedWord(cfg.IncludeIgnored))
	if len(cfg.ExcludeGlobs) > 0 {
		ew.printf("Exclude patterns: %v\n", cfg.ExcludeGlobs)
	}
	ew.printf("\nFile statistics (%d of %d candidates):\n", result.Summary.Total(), result.Candidates)
	for _, row := range result.Summary.Sorted() {
		ew.printf("%s: %d files\n", row.Extension, row.Count)
	}
	return ew.err
}

func includedWord(included bool) string {
	if included {
		return "included"
	}
	return "excluded"
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
