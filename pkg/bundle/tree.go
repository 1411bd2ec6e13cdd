// File: pkg/bundle/tree.go
package bundle

import (
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

// RenderTree draws the directory structure implied by a set of slash-separated
// relative paths. Directories come first, then files, each alphabetically.
func RenderTree(rootName string, paths []string) string {
	root := &treeNode{name: rootName, children: map[string]*treeNode{}}
	for _, p := range paths {
		node := root
		for _, part := range strings.Split(p, "/") {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			node = child
		}
	}

	var b strings.Builder
	b.WriteString(rootName + "/\n")
	writeTree(&b, root, "")
	return b.String()
}

func writeTree(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		iDir, jDir := len(entries[i].children) > 0, len(entries[j].children) > 0
		if iDir != jDir {
			return iDir
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if len(entry.children) > 0 {
			b.WriteString(prefix + connector + entry.name + "/\n")
			writeTree(b, entry, prefix+extension)
		} else {
			b.WriteString(prefix + connector + entry.name + "\n")
		}
	}
}
