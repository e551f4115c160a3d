// Package output renders folder hierarchy documents and writes them to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/foldermap/internal/hierarchy"
	"github.com/temirov/foldermap/internal/types"
)

const (
	indentPrefix    = ""
	indentSpacer    = "  "
	yamlIndentWidth = 2

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
	sentinelLineFormat  = "%s%s [%s: %s]\n"

	yamlExtension      = ".yaml"
	yamlShortExtension = ".yml"
	textExtension      = ".txt"

	errorUnsupportedFormat = "unsupported output format '%s'"
	errorRenderFormat      = "rendering %s document: %w"
	errorCreateFileFormat  = "creating output file %s: %w"
	errorWriteFileFormat   = "writing output file %s: %w"
	errorCloseFileFormat   = "closing output file %s: %w"
)

// IsSupportedFormat reports whether format names a known renderer.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatJSON, types.FormatYAML, types.FormatText:
		return true
	default:
		return false
	}
}

// FormatForPath infers a format from the output file extension, defaulting to JSON.
func FormatForPath(outputPath string) string {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case yamlExtension, yamlShortExtension:
		return types.FormatYAML
	case textExtension:
		return types.FormatText
	default:
		return types.FormatJSON
	}
}

// Render returns the document in the requested format.
func Render(document hierarchy.Document, format string) ([]byte, error) {
	switch format {
	case types.FormatJSON:
		return RenderJSON(document)
	case types.FormatYAML:
		return RenderYAML(document)
	case types.FormatText:
		return []byte(RenderText(document)), nil
	default:
		return nil, fmt.Errorf(errorUnsupportedFormat, format)
	}
}

// RenderJSON returns the document as two-space indented JSON with a trailing newline.
// Non-ASCII and HTML characters are left literal. A folder name that is not valid UTF-8 is an error
// wrapping hierarchy.ErrInvalidUTF8.
func RenderJSON(document hierarchy.Document) ([]byte, error) {
	compact, marshalError := document.MarshalJSON()
	if marshalError != nil {
		return nil, fmt.Errorf(errorRenderFormat, types.FormatJSON, marshalError)
	}
	var buffer bytes.Buffer
	if indentError := json.Indent(&buffer, compact, indentPrefix, indentSpacer); indentError != nil {
		return nil, fmt.Errorf(errorRenderFormat, types.FormatJSON, indentError)
	}
	buffer.WriteByte('\n')
	return buffer.Bytes(), nil
}

// RenderYAML returns the document as a block-style YAML mapping.
func RenderYAML(document hierarchy.Document) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndentWidth)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return nil, fmt.Errorf(errorRenderFormat, types.FormatYAML, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return nil, fmt.Errorf(errorRenderFormat, types.FormatYAML, closeError)
	}
	return buffer.Bytes(), nil
}

// RenderText returns the document as an indented tree drawn with box characters.
func RenderText(document hierarchy.Document) string {
	var builder strings.Builder
	if document.Root.IsSentinel() {
		fmt.Fprintf(&builder, sentinelLineFormat, "", document.RootName, hierarchy.ErrorKey, document.Root.Error)
		return builder.String()
	}
	builder.WriteString(document.RootName + "\n")
	writeTextChildren(&builder, document.Root, "")
	return builder.String()
}

func writeTextChildren(writer io.Writer, node *hierarchy.Node, prefix string) {
	if node == nil {
		return
	}
	for childIndex, child := range node.Children {
		isLast := childIndex == len(node.Children)-1
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if isLast {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		if child.Node.IsSentinel() {
			fmt.Fprintf(writer, sentinelLineFormat, prefix+connector, child.Name, hierarchy.ErrorKey, child.Node.Error)
			continue
		}
		fmt.Fprintf(writer, "%s%s\n", prefix+connector, child.Name)
		writeTextChildren(writer, child.Node, childPrefix)
	}
}

// WriteFile creates or truncates outputPath and writes data to it. The file is closed on every path.
func WriteFile(outputPath string, data []byte) (err error) {
	fileHandle, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(errorCreateFileFormat, outputPath, createError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseFileFormat, outputPath, closeError)
		}
	}()
	if _, writeError := fileHandle.Write(data); writeError != nil {
		return fmt.Errorf(errorWriteFileFormat, outputPath, writeError)
	}
	return nil
}
