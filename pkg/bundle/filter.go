// File: pkg/bundle/filter.go
package bundle

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"nodetomd/pkg/ignore"
)

// TypeDefinitionBasenames are declaration files dropped when types are excluded,
// whatever their extension rule says.
var TypeDefinitionBasenames = map[string]bool{
	"app.d.ts":       true,
	"global.d.ts":    true,
	"globals.d.ts":   true,
	"env.d.ts":       true,
	"vite-env.d.ts":  true,
	"next-env.d.ts":  true,
	"shims-vue.d.ts": true,
}

// FilterConfig holds the exclusion switches for one run.
type FilterConfig struct {
	ExcludeStyles  bool     // Drop style files and strip <style> blocks.
	ExcludeTypes   bool     // Drop type-definition files and strip TypeScript types.
	ExcludeGlobs   []string // Relative-path globs to drop; '*' stays in a segment, '**' crosses segments.
	IncludeIgnored bool     // Keep files matched by the root .gitignore.
}

// IgnoreParser defines the interface for matching paths against ignore patterns.
type IgnoreParser interface {
	MatchesPath(path string) bool
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	base    bool      // pattern has no slash and is also tried against the basename
	rootAlt glob.Glob // "**/x" with the prefix removed, so root-level paths match too
}

func (cp compiledPattern) match(p string) bool {
	if cp.glob.Match(p) {
		return true
	}
	if cp.base && cp.glob.Match(path.Base(p)) {
		return true
	}
	return cp.rootAlt != nil && !strings.Contains(p, "/") && cp.rootAlt.Match(p)
}

// Filter decides which candidates make it into the output.
type Filter struct {
	cfg    FilterConfig
	globs  []compiledPattern
	ignore IgnoreParser
	logger *zap.Logger
}

// ParseGlobList splits a comma-separated pattern list, dropping empty entries.
func ParseGlobList(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// NewFilter compiles the exclude globs and, unless ignored files are included,
// loads the .gitignore at root.
func NewFilter(root string, cfg FilterConfig, logger *zap.Logger) (*Filter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Filter{cfg: cfg, logger: logger}

	for _, pattern := range cfg.ExcludeGlobs {
		p := strings.TrimSuffix(strings.TrimPrefix(pattern, "./"), "/")
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: invalid exclude pattern %q: %w", ErrConfiguration, pattern, err)
		}
		cp := compiledPattern{pattern: p, glob: g, base: !strings.Contains(p, "/")}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			if alt, err := glob.Compile(rest, '/'); err == nil {
				cp.rootAlt = alt
			}
		}
		f.globs = append(f.globs, cp)
	}

	if !cfg.IncludeIgnored {
		gi, err := ignore.Load(root, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s: %w", ErrFilesystemAccess, ignore.FileName, err)
		}
		f.ignore = gi
		logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", len(gi.Patterns)))
	}

	return f, nil
}

// Apply returns the candidates that survive every exclusion rule, in input order.
func (f *Filter) Apply(candidates []CandidateFile) []CandidateFile {
	kept := make([]CandidateFile, 0, len(candidates))
	for _, c := range candidates {
		if reason := f.Reason(c); reason != "" {
			f.logger.Debug("Excluding file", zap.String("file", c.RelPath), zap.String("reason", reason))
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// Reason names the first rule that drops c, or returns "" when c is kept.
func (f *Filter) Reason(c CandidateFile) string {
	if f.cfg.ExcludeStyles && c.Rule.Category == CategoryStyle {
		return "style"
	}
	if f.cfg.ExcludeTypes && isTypeDefinition(c) {
		return "type-definition"
	}
	if p, ok := f.matchGlob(c.RelPath); ok {
		return "exclude pattern " + p
	}
	if f.ignore != nil && f.ignore.MatchesPath(c.RelPath) {
		return "gitignore"
	}
	return ""
}

func isTypeDefinition(c CandidateFile) bool {
	name := c.Name()
	return c.Rule.Category == CategoryTypeDefinition ||
		TypeDefinitionBasenames[name] ||
		strings.HasSuffix(name, ".d.ts")
}

// matchGlob reports the first pattern matching relPath or one of its parent
// directories. Slash-less patterns are also matched against the basename.
func (f *Filter) matchGlob(relPath string) (string, bool) {
	if len(f.globs) == 0 {
		return "", false
	}
	for _, cp := range f.globs {
		if cp.match(relPath) {
			return cp.pattern, true
		}
		for dir := path.Dir(relPath); dir != "." && dir != "/"; dir = path.Dir(dir) {
			if cp.match(dir) {
				return cp.pattern, true
			}
		}
	}
	return "", false
}
