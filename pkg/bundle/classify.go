// File: pkg/bundle/classify.go
package bundle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLanguage is the fence tag used for extensions with no rule.
const DefaultLanguage = "plaintext"

// Category groups extensions the filter can exclude as a whole.
type Category int

const (
	CategoryNone Category = iota
	CategoryStyle
	CategoryTypeDefinition
)

func (c Category) String() string {
	switch c {
	case CategoryStyle:
		return "style"
	case CategoryTypeDefinition:
		return "type-definition"
	default:
		return "none"
	}
}

// ExtensionRule maps one extension to its language tag and category.
type ExtensionRule struct {
	Extension string   // Extension including the leading dot; may be compound (".d.ts").
	Language  string   // Fence tag used in the output document.
	Category  Category // Exclusion category.
}

// DefaultRules returns the built-in extension table.
func DefaultRules() []ExtensionRule {
	return []ExtensionRule{
		// TypeScript
		{Extension: ".ts", Language: "typescript"},
		{Extension: ".tsx", Language: "typescript"},
		{Extension: ".mts", Language: "typescript"},
		{Extension: ".cts", Language: "typescript"},
		{Extension: ".d.ts", Language: "typescript", Category: CategoryTypeDefinition},

		// JavaScript
		{Extension: ".js", Language: "javascript"},
		{Extension: ".jsx", Language: "javascript"},
		{Extension: ".mjs", Language: "javascript"},
		{Extension: ".cjs", Language: "javascript"},
		{Extension: ".styled", Language: "javascript"},

		// Component frameworks
		{Extension: ".svelte", Language: "svelte"},
		{Extension: ".vue", Language: "vue"},
		{Extension: ".astro", Language: "astro"},

		// Styles
		{Extension: ".css", Language: "css", Category: CategoryStyle},
		{Extension: ".scss", Language: "scss", Category: CategoryStyle},
		{Extension: ".sass", Language: "sass", Category: CategoryStyle},
		{Extension: ".less", Language: "less", Category: CategoryStyle},
		{Extension: ".styl", Language: "stylus", Category: CategoryStyle},
		{Extension: ".postcss", Language: "css", Category: CategoryStyle},
	}
}

// Classifier resolves file extensions against an immutable rule table.
type Classifier struct {
	rules    map[string]ExtensionRule
	compound []string // multi-dot extensions, longest first
}

// NewClassifier builds a classifier from rules. Each extension may appear once.
func NewClassifier(rules []ExtensionRule) (*Classifier, error) {
	c := &Classifier{rules: make(map[string]ExtensionRule, len(rules))}
	for _, r := range rules {
		if !strings.HasPrefix(r.Extension, ".") || len(r.Extension) < 2 {
			return nil, fmt.Errorf("%w: invalid extension %q", ErrConfiguration, r.Extension)
		}
		if _, dup := c.rules[r.Extension]; dup {
			return nil, fmt.Errorf("%w: duplicate rule for extension %q", ErrConfiguration, r.Extension)
		}
		c.rules[r.Extension] = r
		if strings.Count(r.Extension, ".") > 1 {
			c.compound = append(c.compound, r.Extension)
		}
	}
	sort.Slice(c.compound, func(i, j int) bool {
		if len(c.compound[i]) != len(c.compound[j]) {
			return len(c.compound[i]) > len(c.compound[j])
		}
		return c.compound[i] < c.compound[j]
	})
	return c, nil
}

// DefaultClassifier returns a classifier over DefaultRules.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultRules())
	if err != nil {
		panic(err) // static table
	}
	return c
}

// Classify looks up an extension exactly as it appears on disk.
// Unknown extensions get the plaintext rule with no category.
func (c *Classifier) Classify(ext string) ExtensionRule {
	if r, ok := c.rules[ext]; ok {
		return r
	}
	return ExtensionRule{Extension: ext, Language: DefaultLanguage, Category: CategoryNone}
}

// ForFile returns the most specific rule for a filename. Compound extensions
// are matched by suffix on the whole name before the last segment is tried.
func (c *Classifier) ForFile(name string) (ExtensionRule, bool) {
	for _, ext := range c.compound {
		if len(name) > len(ext) && strings.HasSuffix(name, ext) {
			return c.rules[ext], true
		}
	}
	ext := filepath.Ext(name)
	_, ok := c.rules[ext]
	return c.Classify(ext), ok
}

// Extensions lists every known extension in sorted order.
func (c *Classifier) Extensions() []string {
	exts := make([]string, 0, len(c.rules))
	for ext := range c.rules {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
