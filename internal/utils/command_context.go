package utils

import "context"

type commandContextKey int

const configurationFileContextKeyConstant commandContextKey = iota

// WithConfigurationFilePath returns a child context carrying the resolved
// configuration file path so subcommands can report where their settings came
// from.
func WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFileContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePathFromContext returns the configuration file path stored
// by WithConfigurationFilePath and whether one was present.
func ConfigurationFilePathFromContext(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, available := executionContext.Value(configurationFileContextKeyConstant).(string)
	return configurationFilePath, available
}
