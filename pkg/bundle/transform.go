// File: pkg/bundle/transform.go
package bundle

import (
	"regexp"
	"strings"
)

// Extensions whose files can embed <style> blocks.
var componentExtensions = map[string]bool{
	".vue":    true,
	".svelte": true,
	".astro":  true,
}

// Extensions that get type stripping.
var typeStripExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
}

// Precompiled regular expressions for the textual rewrites. None of them
// understand strings or comments.
var (
	styleBlockPattern = regexp.MustCompile(`(?is)<style(?:\s[^>]*)?>.*?</style\s*>`)

	interfaceHeadPattern  = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?interface\s+\w+[^{;]*\{`)
	typeObjectHeadPattern = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?type\s+\w+[^=\n]*=\s*\{`)
	typeAliasLinePattern  = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?type\s+\w+[^=\n]*=[^\n]*(?:\n|$)`)
	declareLinePattern    = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?declare\s+[^;\n]*;[ \t]*(?:\n|$)`)
	enumHeadPattern       = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?(?:const\s+)?enum\s+\w+\s*\{`)
	namespaceHeadPattern  = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?namespace\s+[\w.]+\s*\{`)

	// `: Type` followed by one of , ) { } = or a line end. Object literal
	// entries of the same shape are stripped too.
	annotationPattern = regexp.MustCompile(
		`\??:[ \t]*` + typeExpr + `(?:[ \t]*[|&][ \t]*` + typeExpr + `)*([ \t]*[,){}=]|[ \t]*\n)`)

	// A whole-line `name: Type;` declaration such as `let x: T;` or a class
	// field. Ternaries, case labels and strings never start a line this way.
	fieldAnnotationPattern = regexp.MustCompile(
		`(?m)^([ \t]*(?:(?:export|let|var|const|declare|public|private|protected|static|readonly|abstract|override)[ \t]+)*[A-Za-z_$][\w$]*)[?!]?[ \t]*:[ \t]*` +
			typeExpr + `(?:[ \t]*[|&][ \t]*` + typeExpr + `)*([ \t]*;)`)

	blankRunPattern = regexp.MustCompile(`\n(?:[ \t]*\n){3,}`)
)

// typeExpr is one type term: a dotted name with an optional single-level
// generic argument list and array suffixes.
const typeExpr = `[A-Za-z_$][\w$.]*(?:<[^<>\n]*>)?(?:\[\])*`

// Transformer applies the content rewrites selected by a FilterConfig.
type Transformer struct {
	cfg FilterConfig
}

// NewTransformer returns a Transformer for cfg.
func NewTransformer(cfg FilterConfig) *Transformer {
	return &Transformer{cfg: cfg}
}

// Transform rewrites content for a file with extension ext. Extensions without
// a matching rewrite come back unchanged.
func (t *Transformer) Transform(content, ext string) string {
	if t.cfg.ExcludeStyles && componentExtensions[ext] {
		content = StripStyleBlocks(content)
	}
	if t.cfg.ExcludeTypes && typeStripExtensions[ext] {
		content = StripTypes(content)
	}
	return content
}

// StripStyleBlocks removes every <style ...>...</style> element.
func StripStyleBlocks(content string) string {
	return styleBlockPattern.ReplaceAllString(content, "")
}

// StripTypes removes TypeScript-only syntax on a best-effort textual basis:
// interfaces, type aliases, declare statements, enums, namespaces and inline
// annotations, then squeezes the blank lines left behind.
func StripTypes(content string) string {
	content = removeBlocks(content, interfaceHeadPattern, consumeTail)
	content = removeBlocks(content, typeObjectHeadPattern, lineEnd)
	content = typeAliasLinePattern.ReplaceAllString(content, "")
	content = declareLinePattern.ReplaceAllString(content, "")
	content = removeBlocks(content, enumHeadPattern, consumeTail)
	content = removeBlocks(content, namespaceHeadPattern, consumeTail)
	content = fieldAnnotationPattern.ReplaceAllString(content, "${1}${2}")
	content = annotationPattern.ReplaceAllString(content, "${1}")
	return blankRunPattern.ReplaceAllString(content, "\n\n")
}

// removeBlocks deletes every construct whose head matches head (the head ends
// at the opening brace) through its balanced closing brace, then whatever
// tail reports after it. A head with no balanced close loses only its own line.
func removeBlocks(content string, head *regexp.Regexp, tail func(s string, i int) int) string {
	var b strings.Builder
	for {
		loc := head.FindStringIndex(content)
		if loc == nil {
			b.WriteString(content)
			return b.String()
		}
		b.WriteString(content[:loc[0]])

		end := matchBrace(content, loc[1]-1)
		if end < 0 {
			end = lineEnd(content, loc[1])
		} else {
			end = tail(content, end+1)
		}
		content = content[end:]
	}
}

// matchBrace returns the index of the brace closing the one at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// consumeTail skips an optional semicolon and trailing blanks after a closed
// block, including the newline when the rest of the line is empty.
func consumeTail(s string, i int) int {
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	if j < len(s) && s[j] == ';' {
		j++
	}
	for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\r') {
		j++
	}
	if j == len(s) {
		return j
	}
	if s[j] == '\n' {
		return j + 1
	}
	return i
}

// lineEnd returns the index just past the newline ending the line containing i.
func lineEnd(s string, i int) int {
	if n := strings.IndexByte(s[i:], '\n'); n >= 0 {
		return i + n + 1
	}
	return len(s)
}
