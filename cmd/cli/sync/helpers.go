package sync

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repofleet/repofleet/internal/credentials"
	"github.com/repofleet/repofleet/internal/gitrepo"
	"github.com/repofleet/repofleet/internal/packages"
	"github.com/repofleet/repofleet/internal/updater"
	"github.com/repofleet/repofleet/internal/utils"
	pathutils "github.com/repofleet/repofleet/internal/utils/path"
)

const (
	homeFlagNameConstant  = "home"
	homeFlagUsageConstant = "Path to the primary installation repository"
	rootFlagNameConstant  = "root"
	rootFlagUsageConstant = "Package root directory scanned for repositories (repeatable)"

	configurationFileMessageConstant  = "using configuration file"
	logFieldConfigurationFileConstant = "configuration_file"
)

var (
	syncHomeDirectoryExpander = pathutils.NewHomeExpander()
	syncPackageRootSanitizer  = pathutils.NewPackageRootSanitizer()
)

func registerSelectionFlags(command *cobra.Command) {
	command.Flags().String(homeFlagNameConstant, "", homeFlagUsageConstant)
	command.Flags().StringSlice(rootFlagNameConstant, nil, rootFlagUsageConstant)
}

// resolveConfiguration merges the configured section with command-line
// overrides and normalizes the result.
func resolveConfiguration(command *cobra.Command, configurationProvider ConfigurationProvider) CommandConfiguration {
	configuration := DefaultConfiguration()
	if configurationProvider != nil {
		configuration = configurationProvider()
	}

	if command != nil && command.Flags().Changed(homeFlagNameConstant) {
		if homeValue, homeError := command.Flags().GetString(homeFlagNameConstant); homeError == nil {
			configuration.HomeDirectory = homeValue
		}
	}

	if command != nil && command.Flags().Changed(rootFlagNameConstant) {
		if rootValues, rootsError := command.Flags().GetStringSlice(rootFlagNameConstant); rootsError == nil {
			configuration.PackageRoots = rootValues
		}
	}

	return configuration.sanitize(syncHomeDirectoryExpander, syncPackageRootSanitizer)
}

// logConfigurationSource reports the configuration file behind the resolved
// settings when the application recorded one in the command context.
func logConfigurationSource(command *cobra.Command, logger *zap.Logger) {
	if command == nil {
		return
	}

	configurationFilePath, available := utils.ConfigurationFilePathFromContext(command.Context())
	if !available || len(configurationFilePath) == 0 {
		return
	}

	logger.Debug(configurationFileMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)
}

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}
	if logger := loggerProvider(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

// buildService wires the go-git engine, filesystem package locator, and
// source-backed credential provider into an updater service.
func buildService(logger *zap.Logger, configuration CommandConfiguration) (*updater.Service, error) {
	credentialProvider, providerError := credentials.NewSourceProvider(
		configuration.CredentialUsernameSource,
		configuration.CredentialSecretSource,
		nil,
		nil,
	)
	if providerError != nil {
		return nil, providerError
	}

	return updater.NewService(
		updater.Dependencies{
			Backend:            gitrepo.NewEngine(),
			PackageLocator:     packages.NewFilesystemPackageLocator(),
			CredentialProvider: credentialProvider,
			Logger:             logger,
		},
		updater.ServiceConfiguration{
			NetworkTimeout:                configuration.NetworkTimeout,
			MaximumConcurrentRepositories: configuration.MaximumConcurrentRepositories,
		},
	)
}
