// Package hierarchy builds the nested folder structure of a directory tree.
//
// Only directories are recorded. Hidden entries (names starting with a dot)
// and names in the ignore set are skipped at every level. A directory that
// cannot be listed becomes a sentinel node carrying the failure message.
package hierarchy

import (
	"fmt"
	"path/filepath"
)

const (
	// ErrorKey is the key under which a sentinel node reports its failure.
	ErrorKey = "error"
	// PermissionDeniedMessage is the sentinel message for directories that cannot be listed due to permissions.
	PermissionDeniedMessage = "Permission denied"

	errorAbsoluteRootFormat = "getting absolute path for %s: %w"
)

// Child pairs a directory name with its subtree.
type Child struct {
	Name string
	Node *Node
}

// Node is one directory of the hierarchy. Children keep directory listing order.
// A node whose Error is set is a sentinel: its listing failed and it has no children.
type Node struct {
	Children []Child
	Error    string
}

// IsSentinel reports whether the node stands in for a directory that could not be listed.
func (node *Node) IsSentinel() bool {
	return node != nil && node.Error != ""
}

// Lookup returns the child subtree stored under name.
func (node *Node) Lookup(name string) (*Node, bool) {
	if node == nil {
		return nil, false
	}
	for _, child := range node.Children {
		if child.Name == name {
			return child.Node, true
		}
	}
	return nil, false
}

// Names lists the child directory names in order.
func (node *Node) Names() []string {
	if node == nil {
		return nil
	}
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

// Document is the serialized form of a traversal: one key, the root's base name, mapped to the root node.
type Document struct {
	RootName string
	Root     *Node
}

// NewDocument wraps root under the base name of the absolute form of rootPath.
// A file system root has no base name and is wrapped under the empty string.
func NewDocument(rootPath string, root *Node) (Document, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return Document{}, fmt.Errorf(errorAbsoluteRootFormat, rootPath, absolutePathError)
	}
	rootName := filepath.Base(absoluteRootPath)
	if rootName == string(filepath.Separator) {
		rootName = ""
	}
	return Document{RootName: rootName, Root: root}, nil
}
