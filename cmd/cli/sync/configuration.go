package sync

import (
	"time"

	pathutils "github.com/repofleet/repofleet/internal/utils/path"
)

const (
	configurationHomeDirectoryKeyConstant     = "home_directory"
	configurationPackageRootsKeyConstant      = "package_roots"
	configurationNetworkTimeoutKeyConstant    = "network_timeout"
	configurationMaximumConcurrentKeyConstant = "maximum_concurrent_repositories"
	configurationUsernameSourceKeyConstant    = "credential_username_source"
	configurationSecretSourceKeyConstant      = "credential_secret_source"

	defaultHomeDirectoryConstant         = "."
	defaultNetworkTimeoutConstant        = 60 * time.Second
	defaultMaximumConcurrentRepositories = 4
)

// CommandConfiguration describes the persisted configuration for sync commands.
type CommandConfiguration struct {
	HomeDirectory                 string        `mapstructure:"home_directory"`
	PackageRoots                  []string      `mapstructure:"package_roots"`
	NetworkTimeout                time.Duration `mapstructure:"network_timeout"`
	MaximumConcurrentRepositories int           `mapstructure:"maximum_concurrent_repositories"`
	CredentialUsernameSource      string        `mapstructure:"credential_username_source"`
	CredentialSecretSource        string        `mapstructure:"credential_secret_source"`
}

// DefaultConfiguration returns baseline configuration values for sync commands.
func DefaultConfiguration() CommandConfiguration {
	return CommandConfiguration{
		HomeDirectory:                 defaultHomeDirectoryConstant,
		PackageRoots:                  []string{},
		NetworkTimeout:                defaultNetworkTimeoutConstant,
		MaximumConcurrentRepositories: defaultMaximumConcurrentRepositories,
	}
}

// DefaultConfigurationValues produces Viper defaults for sync commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationHomeDirectoryKeyConstant:     defaults.HomeDirectory,
		rootKey + "." + configurationPackageRootsKeyConstant:      defaults.PackageRoots,
		rootKey + "." + configurationNetworkTimeoutKeyConstant:    defaults.NetworkTimeout,
		rootKey + "." + configurationMaximumConcurrentKeyConstant: defaults.MaximumConcurrentRepositories,
		rootKey + "." + configurationUsernameSourceKeyConstant:    defaults.CredentialUsernameSource,
		rootKey + "." + configurationSecretSourceKeyConstant:      defaults.CredentialSecretSource,
	}
}

// sanitize normalizes configuration values: home shortcuts expand, blank and
// nested package roots drop, and non-positive tuning values fall back to the
// defaults.
func (configuration CommandConfiguration) sanitize(homeExpander *pathutils.HomeExpander, rootSanitizer *pathutils.PackageRootSanitizer) CommandConfiguration {
	sanitized := configuration
	sanitized.HomeDirectory = homeExpander.Expand(configuration.HomeDirectory)
	sanitized.PackageRoots = rootSanitizer.Sanitize(configuration.PackageRoots)
	if sanitized.NetworkTimeout <= 0 {
		sanitized.NetworkTimeout = defaultNetworkTimeoutConstant
	}
	if sanitized.MaximumConcurrentRepositories <= 0 {
		sanitized.MaximumConcurrentRepositories = defaultMaximumConcurrentRepositories
	}
	return sanitized
}
