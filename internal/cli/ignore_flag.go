package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	argumentTerminator = "--"
	longFlagPrefix     = "--"
	shortFlagPrefix    = "-"
	ignoreFlagPrefix   = longFlagPrefix + ignoreFlagName + "="
)

// ignoreRun records where the values of one space-separated "-i a b c" group landed in the normalized arguments.
type ignoreRun struct {
	firstIndex int
	lastIndex  int
}

// normalizeIgnoreArguments rewrites "-i a b c" into "--ignore=a --ignore=b --ignore=c" so a single
// ignore flag can take several space-separated names. A run stops at the next token starting with "-".
// When no positional path remains after expansion, the last name of the last multi-name run is
// handed back as the path, so "foldermap -i node_modules dist ./project" still scans ./project.
func normalizeIgnoreArguments(command *cobra.Command, arguments []string) []string {
	if len(arguments) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	var runs []ignoreRun
	positionalCount := 0
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == argumentTerminator {
			normalized = append(normalized, arguments[index:]...)
			positionalCount += len(arguments) - index - 1
			break
		}
		if isIgnoreFlag(currentArgument) {
			valueIndex := index + 1
			run := ignoreRun{firstIndex: len(normalized)}
			for valueIndex < len(arguments) && !strings.HasPrefix(arguments[valueIndex], shortFlagPrefix) {
				normalized = append(normalized, ignoreFlagPrefix+arguments[valueIndex])
				valueIndex++
			}
			if valueIndex == index+1 {
				normalized = append(normalized, currentArgument)
				index++
				continue
			}
			run.lastIndex = len(normalized) - 1
			runs = append(runs, run)
			index = valueIndex
			continue
		}
		if strings.HasPrefix(currentArgument, shortFlagPrefix) && currentArgument != shortFlagPrefix {
			normalized = append(normalized, currentArgument)
			if flagConsumesNextArgument(command, currentArgument) && index+1 < len(arguments) {
				normalized = append(normalized, arguments[index+1])
				index += 2
				continue
			}
			index++
			continue
		}
		positionalCount++
		normalized = append(normalized, currentArgument)
		index++
	}

	if positionalCount == 0 && len(runs) > 0 {
		lastRun := runs[len(runs)-1]
		if lastRun.lastIndex > lastRun.firstIndex {
			normalized[lastRun.lastIndex] = strings.TrimPrefix(normalized[lastRun.lastIndex], ignoreFlagPrefix)
		}
	}
	return normalized
}

func isIgnoreFlag(argument string) bool {
	return argument == shortFlagPrefix+ignoreFlagShorthand || argument == longFlagPrefix+ignoreFlagName
}

// flagConsumesNextArgument reports whether argument is a flag written without "=" whose value is the next token.
func flagConsumesNextArgument(command *cobra.Command, argument string) bool {
	if command == nil || strings.Contains(argument, "=") {
		return false
	}
	var flag *pflag.Flag
	if strings.HasPrefix(argument, longFlagPrefix) {
		flag = command.Flags().Lookup(strings.TrimPrefix(argument, longFlagPrefix))
	} else {
		shorthand := strings.TrimPrefix(argument, shortFlagPrefix)
		if len(shorthand) != 1 {
			return false
		}
		flag = command.Flags().ShorthandLookup(shorthand)
	}
	return flag != nil && flag.NoOptDefVal == ""
}
