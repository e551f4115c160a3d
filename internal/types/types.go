// Package types defines data structures shared across foldermap packages.
package types

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"

	// DefaultOutputFileName is where the hierarchy is written unless configured otherwise.
	DefaultOutputFileName = "folder_hierarchy.json"
	// DefaultTokenizerModel is the model used for token estimates.
	DefaultTokenizerModel = "gpt-4o"
)

// ValidatedRoot is a traversal root that passed existence and directory checks.
type ValidatedRoot struct {
	InputPath    string
	AbsolutePath string
}

// RunOptions is the fully resolved configuration of one run.
type RunOptions struct {
	RootPath        string
	OutputPath      string
	Format          string
	IgnoreNames     []string
	CopyToClipboard bool
	CountTokens     bool
	TokenizerModel  string
}
