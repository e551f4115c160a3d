package hierarchy

import "strings"

const hiddenEntryPrefix = "."

// IgnoreSet holds folder names excluded at every nesting level. Matching is by exact name.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from names, dropping empty entries.
func NewIgnoreSet(names ...string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is ignored.
func (set IgnoreSet) Contains(name string) bool {
	if set == nil {
		return false
	}
	_, ignored := set[name]
	return ignored
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, hiddenEntryPrefix)
}
