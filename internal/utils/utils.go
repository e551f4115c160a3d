// Package utils contains general helper functions used across foldermap.
package utils

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

// DeduplicateNames drops empty names and removes duplicates while preserving order.
// The first occurrence of each unique name is kept; names are compared exactly.
func DeduplicateNames(names []string) []string {
	encounteredNames := make(map[string]struct{})
	result := make([]string, 0, len(names))
	for _, name := range names {
		if name == EmptyString {
			continue
		}
		if _, exists := encounteredNames[name]; !exists {
			encounteredNames[name] = struct{}{}
			result = append(result, name)
		}
	}
	return result
}
