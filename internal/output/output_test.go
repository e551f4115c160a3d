package output_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/temirov/foldermap/internal/hierarchy"
	"github.com/temirov/foldermap/internal/output"
	"github.com/temirov/foldermap/internal/types"
)

// projectJSONExpected is the rendering of the canonical project scenario.
const projectJSONExpected = `{
  "project": {
    "src": {
      "utils": {}
    }
  }
}
`

// sentinelTextExpected is the text rendering of a tree with one unreadable directory.
const sentinelTextExpected = "project\n" +
	"├── locked [error: Permission denied]\n" +
	"└── src\n" +
	"    ├── cmd\n" +
	"    └── utils\n"

func projectDocument() hierarchy.Document {
	return hierarchy.Document{
		RootName: "project",
		Root: &hierarchy.Node{Children: []hierarchy.Child{
			{Name: "src", Node: &hierarchy.Node{Children: []hierarchy.Child{
				{Name: "utils", Node: &hierarchy.Node{}},
			}}},
		}},
	}
}

// TestRenderJSONProjectScenario verifies indentation and the single top-level key.
func TestRenderJSONProjectScenario(testingInstance *testing.T) {
	rendered, renderError := output.RenderJSON(projectDocument())
	if renderError != nil {
		testingInstance.Fatalf("RenderJSON error: %v", renderError)
	}
	if string(rendered) != projectJSONExpected {
		testingInstance.Fatalf("unexpected JSON:\n%s", rendered)
	}
}

// TestRenderJSONRoundTripsNonASCIINames verifies names survive serialization byte for byte and are not escaped.
func TestRenderJSONRoundTripsNonASCIINames(testingInstance *testing.T) {
	directoryNames := []string{"données", "日本語", "emoji😀", "a<b>&c", "quote\"name"}
	rootDirectory := testingInstance.TempDir()
	for _, directoryName := range directoryNames {
		if makeDirError := os.Mkdir(filepath.Join(rootDirectory, directoryName), 0o755); makeDirError != nil {
			testingInstance.Fatalf("mkdir %q: %v", directoryName, makeDirError)
		}
	}
	document, documentError := hierarchy.NewDocument(rootDirectory, hierarchy.Build(rootDirectory, nil))
	if documentError != nil {
		testingInstance.Fatalf("NewDocument error: %v", documentError)
	}

	rendered, renderError := output.RenderJSON(document)
	if renderError != nil {
		testingInstance.Fatalf("RenderJSON error: %v", renderError)
	}
	for _, literal := range []string{"données", "日本語", "emoji😀", "a<b>&c"} {
		if !strings.Contains(string(rendered), literal) {
			testingInstance.Fatalf("expected literal %q in output:\n%s", literal, rendered)
		}
	}

	var decoded map[string]map[string]interface{}
	if unmarshalError := json.Unmarshal(rendered, &decoded); unmarshalError != nil {
		testingInstance.Fatalf("Unmarshal error: %v", unmarshalError)
	}
	rootNode, found := decoded[filepath.Base(rootDirectory)]
	if !found {
		testingInstance.Fatalf("missing root key in %v", decoded)
	}
	var decodedNames []string
	for name := range rootNode {
		decodedNames = append(decodedNames, name)
	}
	sort.Strings(decodedNames)
	expectedNames := append([]string{}, directoryNames...)
	sort.Strings(expectedNames)
	if strings.Join(decodedNames, "\x00") != strings.Join(expectedNames, "\x00") {
		testingInstance.Fatalf("names changed in round trip: got %q want %q", decodedNames, expectedNames)
	}
}

// TestRenderJSONKeepsLineSeparatorsLiteral verifies U+2028 and U+2029 in a real folder name are not escaped.
func TestRenderJSONKeepsLineSeparatorsLiteral(testingInstance *testing.T) {
	const folderName = "a\u2028b\u2029c"
	rootDirectory := filepath.Join(testingInstance.TempDir(), "project")
	if makeDirError := os.MkdirAll(filepath.Join(rootDirectory, folderName), 0o755); makeDirError != nil {
		testingInstance.Fatalf("mkdir %q: %v", folderName, makeDirError)
	}
	document, documentError := hierarchy.NewDocument(rootDirectory, hierarchy.Build(rootDirectory, nil))
	if documentError != nil {
		testingInstance.Fatalf("NewDocument error: %v", documentError)
	}

	rendered, renderError := output.RenderJSON(document)
	if renderError != nil {
		testingInstance.Fatalf("RenderJSON error: %v", renderError)
	}
	expected := "{\n  \"project\": {\n    \"" + folderName + "\": {}\n  }\n}\n"
	if string(rendered) != expected {
		testingInstance.Fatalf("unexpected JSON:\n got %q\nwant %q", rendered, expected)
	}
}

// TestRenderJSONRejectsInvalidUTF8Names verifies sibling folders differing only in non-UTF-8 bytes
// fail rendering instead of collapsing into duplicate keys.
func TestRenderJSONRejectsInvalidUTF8Names(testingInstance *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		testingInstance.Skip("file system requires UTF-8 names")
	}
	rootDirectory := testingInstance.TempDir()
	for _, folderName := range []string{"caf\xe9", "caf\xe8"} {
		if makeDirError := os.Mkdir(filepath.Join(rootDirectory, folderName), 0o755); makeDirError != nil {
			testingInstance.Skipf("file system rejected %q: %v", folderName, makeDirError)
		}
	}
	document, documentError := hierarchy.NewDocument(rootDirectory, hierarchy.Build(rootDirectory, nil))
	if documentError != nil {
		testingInstance.Fatalf("NewDocument error: %v", documentError)
	}

	rendered, renderError := output.RenderJSON(document)
	if !errors.Is(renderError, hierarchy.ErrInvalidUTF8) {
		testingInstance.Fatalf("expected ErrInvalidUTF8, got %v with output %q", renderError, rendered)
	}
	if !strings.Contains(renderError.Error(), `caf\xe8`) {
		testingInstance.Fatalf("error %q does not name the folder", renderError.Error())
	}
}

// TestRenderText verifies the box-drawing rendering and sentinel annotation.
func TestRenderText(testingInstance *testing.T) {
	document := hierarchy.Document{
		RootName: "project",
		Root: &hierarchy.Node{Children: []hierarchy.Child{
			{Name: "locked", Node: &hierarchy.Node{Error: hierarchy.PermissionDeniedMessage}},
			{Name: "src", Node: &hierarchy.Node{Children: []hierarchy.Child{
				{Name: "cmd", Node: &hierarchy.Node{}},
				{Name: "utils", Node: &hierarchy.Node{}},
			}}},
		}},
	}
	if rendered := output.RenderText(document); rendered != sentinelTextExpected {
		testingInstance.Fatalf("unexpected text rendering:\n%s", rendered)
	}
}

// TestRenderDispatch verifies every supported format renders and unknown formats fail.
func TestRenderDispatch(testingInstance *testing.T) {
	testCases := []struct {
		format      string
		contains    string
		expectError bool
	}{
		{format: types.FormatJSON, contains: `"utils": {}`},
		{format: types.FormatYAML, contains: "utils: {}"},
		{format: types.FormatText, contains: "└── utils"},
		{format: "xml", expectError: true},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.format, func(subTest *testing.T) {
			rendered, renderError := output.Render(projectDocument(), testCase.format)
			if testCase.expectError {
				if renderError == nil {
					subTest.Fatalf("expected error for format %s", testCase.format)
				}
				if output.IsSupportedFormat(testCase.format) {
					subTest.Fatalf("format %s must not be supported", testCase.format)
				}
				return
			}
			if renderError != nil {
				subTest.Fatalf("Render error: %v", renderError)
			}
			if !strings.Contains(string(rendered), testCase.contains) {
				subTest.Fatalf("expected %q in:\n%s", testCase.contains, rendered)
			}
		})
	}
}

// TestFormatForPath verifies format inference from the output extension.
func TestFormatForPath(testingInstance *testing.T) {
	testCases := map[string]string{
		"folder_hierarchy.json": types.FormatJSON,
		"tree.YAML":             types.FormatYAML,
		"tree.yml":              types.FormatYAML,
		"tree.txt":              types.FormatText,
		"tree":                  types.FormatJSON,
	}
	for outputPath, expectedFormat := range testCases {
		if got := output.FormatForPath(outputPath); got != expectedFormat {
			testingInstance.Fatalf("FormatForPath(%q) = %q, want %q", outputPath, got, expectedFormat)
		}
	}
}

// TestWriteFile verifies the file is created, overwritten and that failures are reported.
func TestWriteFile(testingInstance *testing.T) {
	outputPath := filepath.Join(testingInstance.TempDir(), "out.json")
	if writeError := os.WriteFile(outputPath, []byte("previous content that is longer"), 0o644); writeError != nil {
		testingInstance.Fatalf("seed file: %v", writeError)
	}
	if writeError := output.WriteFile(outputPath, []byte("{}\n")); writeError != nil {
		testingInstance.Fatalf("WriteFile error: %v", writeError)
	}
	written, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingInstance.Fatalf("read back: %v", readError)
	}
	if string(written) != "{}\n" {
		testingInstance.Fatalf("expected overwritten content, got %q", written)
	}

	unwritablePath := filepath.Join(testingInstance.TempDir(), "missing", "out.json")
	if writeError := output.WriteFile(unwritablePath, []byte("{}")); writeError == nil {
		testingInstance.Fatalf("expected error writing into a missing directory")
	}
}
