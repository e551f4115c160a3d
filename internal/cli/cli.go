// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/foldermap/internal/config"
	"github.com/temirov/foldermap/internal/output"
	"github.com/temirov/foldermap/internal/services/clipboard"
	"github.com/temirov/foldermap/internal/tokenizer"
	"github.com/temirov/foldermap/internal/types"
	"github.com/temirov/foldermap/internal/utils"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	ignoreFlagName      = "ignore"
	ignoreFlagShorthand = "i"
	formatFlagName      = "format"
	configFlagName      = "config"
	copyFlagName        = "copy"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	verboseFlagName     = "verbose"
	versionFlagName     = "version"

	versionTemplate      = "foldermap version: %s\n"
	rootUse              = "foldermap <path>"
	rootShortDescription = "Generate a document with the folder hierarchy of a directory"
	rootLongDescription  = `foldermap walks a directory tree and writes its folder structure as a nested document.
Only directories are recorded; files and hidden entries (names starting with a dot) are skipped.
Folders named with --ignore are excluded at every nesting level.
Use --format to select json, yaml or text output.`
	rootUsageExample = `  # Write folder_hierarchy.json for the current project
  foldermap .

  # Skip dependency and build folders wherever they appear
  foldermap ./project -i node_modules dist build

  # Write YAML and copy it to the clipboard
  foldermap ./project -o tree.yaml --copy`

	outputFlagDescription  = "output file name"
	ignoreFlagDescription  = "folder names to ignore at every level (e.g. -i node_modules .git bin)"
	formatFlagDescription  = "output format: json, yaml or text (default inferred from the output file extension)"
	configFlagDescription  = "configuration file (default ./" + utils.LocalConfigFileName + ")"
	copyFlagDescription    = "copy the generated document to the clipboard"
	tokensFlagDescription  = "print an estimated token count of the generated document"
	modelFlagDescription   = "tokenizer model used with --tokens"
	verboseFlagDescription = "log debug details to stderr"
	versionFlagDescription = "display application version"

	invalidFormatMessage = "invalid format value '%s'"
)

// Dependencies are the collaborators a run uses beyond the filesystem.
type Dependencies struct {
	Logger     *zap.Logger
	LogLevel   zap.AtomicLevel
	Copier     clipboard.Copier
	NewCounter func(tokenizer.Config) (tokenizer.Counter, string, error)

	// ReadDirectory overrides directory listing during traversal; nil uses os.ReadDir.
	ReadDirectory func(directoryPath string) ([]fs.DirEntry, error)
}

// Execute runs the foldermap application with the process arguments.
func Execute(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	rootCommand := newRootCommand(Dependencies{
		Logger:     logger,
		LogLevel:   logLevel,
		Copier:     clipboard.NewService(),
		NewCounter: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

func normalizeArguments(command *cobra.Command, arguments []string) []string {
	return normalizeIgnoreArguments(command, normalizeBooleanFlagArguments(command, arguments))
}

// flagValues stores the raw values bound to command line flags.
type flagValues struct {
	outputPath     string
	ignoreNames    []string
	format         string
	configPath     string
	copyEnabled    bool
	tokensEnabled  bool
	tokenizerModel string
	verbose        bool
	showVersion    bool
}

// newRootCommand builds the single foldermap command.
func newRootCommand(dependencies Dependencies) *cobra.Command {
	var values flagValues

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if values.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(command, arguments)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if values.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if values.verbose {
				dependencies.enableDebugLogging()
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				ExplicitFilePath: values.configPath,
			})
			if configurationError != nil {
				return configurationError
			}
			runOptions, resolveError := resolveRunOptions(command, arguments[0], values, applicationConfiguration)
			if resolveError != nil {
				return resolveError
			}
			dependencies.logger().Debug("resolved run options",
				zap.String("root", runOptions.RootPath),
				zap.String("output", runOptions.OutputPath),
				zap.String("format", runOptions.Format),
				zap.Strings("ignore", runOptions.IgnoreNames),
			)
			generationRunner := runner{
				dependencies: dependencies,
				stdout:       command.OutOrStdout(),
			}
			return generationRunner.run(runOptions)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&values.outputPath, outputFlagName, outputFlagShorthand, types.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringArrayVarP(&values.ignoreNames, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	flagSet.StringVar(&values.format, formatFlagName, "", formatFlagDescription)
	flagSet.StringVar(&values.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &values.copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &values.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&values.tokenizerModel, modelFlagName, types.DefaultTokenizerModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &values.verbose, verboseFlagName, false, verboseFlagDescription)
	flagSet.BoolVar(&values.showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// resolveRunOptions applies flags over configuration over built-in defaults.
func resolveRunOptions(command *cobra.Command, rootPath string, values flagValues, applicationConfiguration config.ApplicationConfiguration) (types.RunOptions, error) {
	flagSet := command.Flags()
	runOptions := types.RunOptions{
		RootPath:       rootPath,
		OutputPath:     types.DefaultOutputFileName,
		TokenizerModel: types.DefaultTokenizerModel,
		IgnoreNames:    applicationConfiguration.Ignore,
	}

	switch {
	case flagSet.Changed(outputFlagName):
		runOptions.OutputPath = values.outputPath
	case applicationConfiguration.Output != "":
		runOptions.OutputPath = applicationConfiguration.Output
	}

	if flagSet.Changed(ignoreFlagName) {
		runOptions.IgnoreNames = utils.DeduplicateNames(values.ignoreNames)
	}

	switch {
	case flagSet.Changed(formatFlagName):
		runOptions.Format = strings.ToLower(strings.TrimSpace(values.format))
	case applicationConfiguration.Format != "":
		runOptions.Format = strings.ToLower(strings.TrimSpace(applicationConfiguration.Format))
	default:
		runOptions.Format = output.FormatForPath(runOptions.OutputPath)
	}
	if !output.IsSupportedFormat(runOptions.Format) {
		return types.RunOptions{}, fmt.Errorf(invalidFormatMessage, runOptions.Format)
	}

	runOptions.CopyToClipboard = resolveBoolean(flagSet.Changed(copyFlagName), values.copyEnabled, applicationConfiguration.Copy)
	runOptions.CountTokens = resolveBoolean(flagSet.Changed(tokensFlagName), values.tokensEnabled, applicationConfiguration.Tokens.Enabled)

	switch {
	case flagSet.Changed(modelFlagName):
		runOptions.TokenizerModel = values.tokenizerModel
	case applicationConfiguration.Tokens.Model != "":
		runOptions.TokenizerModel = applicationConfiguration.Tokens.Model
	}

	return runOptions, nil
}

func resolveBoolean(flagChanged bool, flagValue bool, configured *bool) bool {
	if flagChanged {
		return flagValue
	}
	if configured != nil {
		return *configured
	}
	return false
}

func (dependencies Dependencies) logger() *zap.Logger {
	if dependencies.Logger == nil {
		return zap.NewNop()
	}
	return dependencies.Logger
}

func (dependencies Dependencies) enableDebugLogging() {
	if dependencies.LogLevel == (zap.AtomicLevel{}) {
		return
	}
	dependencies.LogLevel.SetLevel(zap.DebugLevel)
}
