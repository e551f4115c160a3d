package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/foldermap/internal/hierarchy"
	"github.com/temirov/foldermap/internal/output"
	"github.com/temirov/foldermap/internal/tokenizer"
	"github.com/temirov/foldermap/internal/types"
	"github.com/temirov/foldermap/internal/utils"
)

const (
	buildingMessageFormat = "Building folder hierarchy from '%s'...\n"
	ignoringMessageFormat = "Ignoring folders: %s\n"
	savedMessageFormat    = "Folder hierarchy saved to '%s'\n"
	tokensMessageFormat   = "Estimated tokens: %d (%s)\n"
	copiedMessage         = "Folder hierarchy copied to clipboard\n"
	ignoredNamesSeparator = ", "

	errorAbsolutePathFormat = "abs failed for '%s': %w"

	warningUnreadableDirectory = "Skipping unreadable directory"
	warningTokenCount          = "Warning: failed to count tokens"
	warningTokensNotCounted    = "Warning: document is not valid UTF-8, tokens not counted"
	warningClipboardCopy       = "Warning: failed to copy document to clipboard"
)

// ValidationExitCode is the process exit status for a root path that failed validation.
const ValidationExitCode = 2

// ValidationReason names why a root path was rejected.
type ValidationReason string

const (
	// ReasonDoesNotExist reports a root path that cannot be found.
	ReasonDoesNotExist ValidationReason = "does not exist"
	// ReasonNotDirectory reports a root path that exists but is not a directory.
	ReasonNotDirectory ValidationReason = "is not a directory"
)

// ValidationError reports a root path rejected before any traversal or output.
type ValidationError struct {
	Path   string
	Reason ValidationReason
}

func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("Error: Path '%s' %s.", validationError.Path, validationError.Reason)
}

// runner performs one generation: validate, build, render, write, then the optional extras.
type runner struct {
	dependencies Dependencies
	stdout       io.Writer
}

func (generationRunner runner) run(runOptions types.RunOptions) error {
	logger := generationRunner.dependencies.logger()

	validatedRoot, validationError := validateRoot(runOptions.RootPath)
	if validationError != nil {
		return validationError
	}

	fmt.Fprintf(generationRunner.stdout, buildingMessageFormat, runOptions.RootPath)
	if len(runOptions.IgnoreNames) > 0 {
		fmt.Fprintf(generationRunner.stdout, ignoringMessageFormat, strings.Join(runOptions.IgnoreNames, ignoredNamesSeparator))
	}

	builder := hierarchy.Builder{
		Ignore:        hierarchy.NewIgnoreSet(runOptions.IgnoreNames...),
		ReadDirectory: generationRunner.dependencies.ReadDirectory,
		Warn: func(directoryPath string, message string) {
			logger.Warn(warningUnreadableDirectory, zap.String("path", directoryPath), zap.String("reason", message))
		},
	}
	rootNode := builder.Build(validatedRoot.AbsolutePath)

	document, documentError := hierarchy.NewDocument(validatedRoot.AbsolutePath, rootNode)
	if documentError != nil {
		return documentError
	}
	rendered, renderError := output.Render(document, runOptions.Format)
	if renderError != nil {
		return renderError
	}
	if writeError := output.WriteFile(runOptions.OutputPath, rendered); writeError != nil {
		return writeError
	}
	fmt.Fprintf(generationRunner.stdout, savedMessageFormat, runOptions.OutputPath)
	logger.Debug("document written",
		zap.String("path", runOptions.OutputPath),
		zap.String("size", utils.FormatByteSize(int64(len(rendered)))),
	)

	if runOptions.CountTokens {
		generationRunner.reportTokens(runOptions.TokenizerModel, rendered)
	}
	if runOptions.CopyToClipboard {
		generationRunner.copyDocument(rendered)
	}
	return nil
}

// validateRoot checks existence first and directory type second.
func validateRoot(rootPath string) (types.ValidatedRoot, error) {
	rootInfo, statError := os.Stat(rootPath)
	if statError != nil {
		return types.ValidatedRoot{}, &ValidationError{Path: rootPath, Reason: ReasonDoesNotExist}
	}
	if !rootInfo.IsDir() {
		return types.ValidatedRoot{}, &ValidationError{Path: rootPath, Reason: ReasonNotDirectory}
	}
	absolutePath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return types.ValidatedRoot{}, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	return types.ValidatedRoot{InputPath: rootPath, AbsolutePath: filepath.Clean(absolutePath)}, nil
}

func (generationRunner runner) reportTokens(model string, rendered []byte) {
	logger := generationRunner.dependencies.logger()
	newCounter := generationRunner.dependencies.NewCounter
	if newCounter == nil {
		newCounter = tokenizer.NewCounter
	}
	counter, resolvedModel, counterError := newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		logger.Warn(warningTokenCount, zap.Error(counterError))
		return
	}
	result, countError := tokenizer.CountBytes(counter, rendered)
	if countError != nil {
		logger.Warn(warningTokenCount, zap.Error(countError))
		return
	}
	if !result.Counted {
		logger.Warn(warningTokensNotCounted)
		return
	}
	fmt.Fprintf(generationRunner.stdout, tokensMessageFormat, result.Tokens, resolvedModel)
}

func (generationRunner runner) copyDocument(rendered []byte) {
	copier := generationRunner.dependencies.Copier
	if copier == nil {
		return
	}
	if copyError := copier.Copy(string(rendered)); copyError != nil {
		generationRunner.dependencies.logger().Warn(warningClipboardCopy, zap.Error(copyError))
		return
	}
	fmt.Fprint(generationRunner.stdout, copiedMessage)
}
