package hierarchy

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const unknownListingFailureMessage = "unknown error"

// Builder walks directory trees using configured options.
type Builder struct {
	Ignore IgnoreSet

	// Warn, when set, is called for every directory that turned into a sentinel node.
	Warn func(directoryPath string, message string)

	// ReadDirectory lists a directory in name order. Defaults to os.ReadDir.
	ReadDirectory func(directoryPath string) ([]fs.DirEntry, error)
}

// pendingDirectory is a directory whose node was attached to its parent but not listed yet.
type pendingDirectory struct {
	path string
	node *Node
}

// Build returns the hierarchy rooted at path, skipping hidden entries and names in ignore.
func Build(path string, ignore IgnoreSet) *Node {
	return Builder{Ignore: ignore}.Build(path)
}

// Build returns the hierarchy rooted at rootDirectoryPath. Listing failures are
// recorded as sentinel nodes and never abort the walk.
func (builder Builder) Build(rootDirectoryPath string) *Node {
	rootNode := &Node{}
	stack := []pendingDirectory{{path: rootDirectoryPath, node: rootNode}}

	for len(stack) > 0 {
		lastIndex := len(stack) - 1
		current := stack[lastIndex]
		stack = stack[:lastIndex]

		childNames, listError := builder.listDirectoryNames(current.path)
		if listError != nil {
			current.node.Error = describeListingError(listError)
			if builder.Warn != nil {
				builder.Warn(current.path, current.node.Error)
			}
			continue
		}

		current.node.Children = make([]Child, 0, len(childNames))
		for _, childName := range childNames {
			childNode := &Node{}
			current.node.Children = append(current.node.Children, Child{Name: childName, Node: childNode})
			stack = append(stack, pendingDirectory{
				path: filepath.Join(current.path, childName),
				node: childNode,
			})
		}
	}

	return rootNode
}

// listDirectoryNames returns the visible, non-ignored subdirectory names of directoryPath in listing order.
func (builder Builder) listDirectoryNames(directoryPath string) ([]string, error) {
	readDirectory := builder.ReadDirectory
	if readDirectory == nil {
		readDirectory = os.ReadDir
	}
	directoryEntries, readDirectoryError := readDirectory(directoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}

	var names []string
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if isHiddenName(entryName) || builder.Ignore.Contains(entryName) {
			continue
		}
		if !isDirectoryEntry(directoryPath, directoryEntry) {
			continue
		}
		names = append(names, entryName)
	}
	return names, nil
}

// isDirectoryEntry reports whether the entry is a directory or a symbolic link resolving to one.
func isDirectoryEntry(parentPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(filepath.Join(parentPath, directoryEntry.Name()))
	return statError == nil && targetInfo.IsDir()
}

func describeListingError(listError error) string {
	if errors.Is(listError, fs.ErrPermission) {
		return PermissionDeniedMessage
	}
	if message := listError.Error(); message != "" {
		return message
	}
	return unknownListingFailureMessage
}
