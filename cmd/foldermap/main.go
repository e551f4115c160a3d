package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/foldermap/internal/cli"
	"github.com/temirov/foldermap/internal/utils"
)

// main is the entry point for the foldermap command.
func main() {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	applicationExecutionError := cli.Execute(loggerInstance, logLevel)
	if applicationExecutionError == nil {
		return
	}
	var validationError *cli.ValidationError
	if errors.As(applicationExecutionError, &validationError) {
		loggerInstance.Error(validationError.Error())
		_ = loggerInstance.Sync()
		os.Exit(cli.ValidationExitCode)
	}
	loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
}
