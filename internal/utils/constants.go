package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Configuration file locations.
const (
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".foldermap"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = ".foldermap.yaml"
	// ConfigFileType tells viper how to decode configuration files regardless of extension.
	ConfigFileType = "yaml"
)

// Process boundary messages.
const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error logged when a run fails.
	ApplicationExecutionFailedMessage = "foldermap failed"
)
