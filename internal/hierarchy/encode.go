package hierarchy

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	yamlStringTag = "!!str"
	hexDigits     = "0123456789abcdef"

	errorInvalidNameFormat    = "folder name %q: %w"
	errorInvalidMessageFormat = "sentinel message %q: %w"
)

// ErrInvalidUTF8 reports a folder name or message that cannot be written to JSON without altering its bytes.
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// MarshalJSON renders the node as an object whose keys follow the stored child order.
// Names are written byte for byte; a name that is not valid UTF-8 is an error wrapping ErrInvalidUTF8.
func (node Node) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if encodeError := writeNodeJSON(&buffer, &node); encodeError != nil {
		return nil, encodeError
	}
	return buffer.Bytes(), nil
}

// MarshalJSON renders the document as a single-key object.
func (document Document) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if !utf8.ValidString(document.RootName) {
		return nil, fmt.Errorf(errorInvalidNameFormat, document.RootName, ErrInvalidUTF8)
	}
	buffer.WriteByte('{')
	writeJSONString(&buffer, document.RootName)
	buffer.WriteByte(':')
	if encodeError := writeNodeJSON(&buffer, document.Root); encodeError != nil {
		return nil, encodeError
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func writeNodeJSON(buffer *bytes.Buffer, node *Node) error {
	buffer.WriteByte('{')
	defer buffer.WriteByte('}')
	if node == nil {
		return nil
	}
	if node.IsSentinel() {
		writeJSONString(buffer, ErrorKey)
		buffer.WriteByte(':')
		if !utf8.ValidString(node.Error) {
			return fmt.Errorf(errorInvalidMessageFormat, node.Error, ErrInvalidUTF8)
		}
		writeJSONString(buffer, node.Error)
		return nil
	}
	for childIndex, child := range node.Children {
		if childIndex > 0 {
			buffer.WriteByte(',')
		}
		if !utf8.ValidString(child.Name) {
			return fmt.Errorf(errorInvalidNameFormat, child.Name, ErrInvalidUTF8)
		}
		writeJSONString(buffer, child.Name)
		buffer.WriteByte(':')
		if encodeError := writeNodeJSON(buffer, child.Node); encodeError != nil {
			return encodeError
		}
	}
	return nil
}

// writeJSONString quotes value escaping only the quote, the backslash and control characters.
// Every other rune, U+2028 and U+2029 included, is written literally. value must be valid UTF-8.
func writeJSONString(buffer *bytes.Buffer, value string) {
	buffer.WriteByte('"')
	for index := 0; index < len(value); index++ {
		character := value[index]
		switch {
		case character == '"' || character == '\\':
			buffer.WriteByte('\\')
			buffer.WriteByte(character)
		case character == '\n':
			buffer.WriteString(`\n`)
		case character == '\r':
			buffer.WriteString(`\r`)
		case character == '\t':
			buffer.WriteString(`\t`)
		case character < 0x20:
			buffer.WriteString(`\u00`)
			buffer.WriteByte(hexDigits[character>>4])
			buffer.WriteByte(hexDigits[character&0xF])
		default:
			buffer.WriteByte(character)
		}
	}
	buffer.WriteByte('"')
}

// MarshalYAML renders the node as an ordered YAML mapping.
func (node Node) MarshalYAML() (interface{}, error) {
	return nodeToYAML(&node), nil
}

// MarshalYAML renders the document as a single-key YAML mapping.
func (document Document) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			yamlKey(document.RootName),
			nodeToYAML(document.Root),
		},
	}, nil
}

func nodeToYAML(node *Node) *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	if node == nil {
		return mapping
	}
	if node.IsSentinel() {
		mapping.Content = append(mapping.Content, yamlKey(ErrorKey), yamlKey(node.Error))
		return mapping
	}
	for _, child := range node.Children {
		mapping.Content = append(mapping.Content, yamlKey(child.Name), nodeToYAML(child.Node))
	}
	return mapping
}

func yamlKey(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStringTag, Value: value}
}
