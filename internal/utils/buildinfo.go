package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion      = "unknown"
	develBuildVersion   = "(devel)"
	gitExecutableName   = "git"
	errorNoGitDirectory = ".git directory not found in or above %s"
)

// Version is set at link time with -ldflags "-X github.com/temirov/foldermap/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion reports the linked version, then the module version from build info,
// then the nearest git tag of the working tree.
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}

	repositoryDirectory, lookupError := findRepositoryDirectory(".")
	if lookupError != nil {
		return unknownVersion
	}
	for _, describeArguments := range [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	} {
		// #nosec G204
		describeCommand := exec.Command(gitExecutableName, describeArguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findRepositoryDirectory walks upward from startDirectory to the first directory containing .git.
func findRepositoryDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return EmptyString, fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absoluteError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitInfo, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && gitInfo.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return EmptyString, fmt.Errorf(errorNoGitDirectory, absoluteStartDirectory)
		}
		currentDirectory = parentDirectory
	}
}
