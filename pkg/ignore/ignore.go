// Package ignore matches slash-separated relative paths against .gitignore patterns.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the ignore file read from a project root.
const FileName = ".gitignore"

// Precompiled regular expressions used in pattern translation.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
)

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
}

// GitIgnore represents a collection of ignore patterns. Later patterns win.
type GitIgnore struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewGitIgnore initializes an empty GitIgnore.
func NewGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIgnore{logger: logger}
}

// Load compiles the .gitignore found directly in root. A missing file yields
// an empty matcher; any other read failure is returned.
func Load(root string, logger *zap.Logger) (*GitIgnore, error) {
	gi := NewGitIgnore(logger)
	if err := gi.CompileIgnoreFile(filepath.Join(root, FileName)); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return gi, nil
}

// CompileIgnoreLines compiles a set of ignore pattern lines and adds them to the GitIgnore instance.
func (gi *GitIgnore) CompileIgnoreLines(lines ...string) {
	for i, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern == nil {
			continue
		}
		gi.Patterns = append(gi.Patterns, &IgnorePattern{
			Pattern: pattern,
			Negate:  negate,
			Line:    line,
			LineNo:  i + 1,
		})
	}
}

// CompileIgnoreFile reads an ignore file and compiles its lines.
func (gi *GitIgnore) CompileIgnoreFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		if os.IsNotExist(err) {
			gi.logger.Debug("Ignore file not present", zap.String("filePath", fpath))
		} else {
			gi.logger.Error("Failed to read ignore file", zap.String("filePath", fpath), zap.Error(err))
		}
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	before := len(gi.Patterns)
	gi.CompileIgnoreLines(lines...)
	gi.logger.Debug("Compiled ignore patterns",
		zap.String("filePath", fpath),
		zap.Int("lineCount", len(lines)),
		zap.Int("patternCount", len(gi.Patterns)-before))
	return nil
}

// MatchesPath checks if a path matches any of the ignore patterns.
func (gi *GitIgnore) MatchesPath(path string) bool {
	matches, _ := gi.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern checks if a path matches any ignore pattern and returns
// the last pattern that decided the outcome.
func (gi *GitIgnore) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "./")

	var matchedPattern *IgnorePattern
	matches := false
	for _, pattern := range gi.Patterns {
		if pattern.Pattern.MatchString(normalizedPath) {
			matchedPattern = pattern
			matches = !pattern.Negate
		}
	}
	return matches, matchedPattern
}

// parsePatternLine processes a line from an ignore file into a compiled regex and a negation flag.
// Blank lines, comments and invalid patterns yield nil.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Handle escaped characters for `#` and `!`.
	if strings.HasPrefix(trimmedLine, "\\#") || strings.HasPrefix(trimmedLine, "\\!") {
		trimmedLine = trimmedLine[1:]
	}

	// A slash anywhere but the end anchors the pattern to the root.
	rooted := strings.Contains(strings.TrimSuffix(trimmedLine, "/"), "/")
	body := strings.TrimPrefix(trimmedLine, "/")
	if body == "" {
		return nil, false
	}

	expr := escapeSpecialChars(body)
	expr = handleDoubleStarPatterns(expr)
	expr = wildcardToRegex(expr)
	expr = anchorPattern(expr, body, rooted)

	compiledRegex, err := regexp.Compile(expr)
	if err != nil {
		return nil, false
	}
	return compiledRegex, negate
}

// escapeSpecialChars escapes regex special characters except for `*`, `?`, and `/`.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns processes '**' patterns into placeholders that
// survive single-star translation.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, "/\x00")
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, "/\x01")
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, "\x02")
	return pattern
}

// wildcardToRegex converts `*`, `?` and the '**' placeholders to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "*", `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	pattern = strings.ReplaceAll(pattern, "/\x00", `/(.*/)?`)
	pattern = strings.ReplaceAll(pattern, "/\x01", `/.*`)
	pattern = strings.ReplaceAll(pattern, "\x02", `(.*/)?`)
	return pattern
}

// anchorPattern anchors the regex pattern to match the full path. A match on a
// directory also covers everything beneath it.
func anchorPattern(pattern, originalPattern string, rooted bool) string {
	if strings.HasSuffix(originalPattern, "/") {
		pattern += ".*$"
	} else {
		pattern += "(/.*)?$"
	}

	if rooted || strings.HasPrefix(pattern, "(.*/)?") {
		return "^" + pattern
	}
	return "^(.*/)?" + pattern
}
