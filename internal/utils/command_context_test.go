package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repofleet/repofleet/internal/utils"
)

const configurationFilePathFixtureConstant = "/etc/repofleet/config.yaml"

func TestConfigurationFilePathRoundTrip(testInstance *testing.T) {
	carryingContext := utils.WithConfigurationFilePath(context.Background(), configurationFilePathFixtureConstant)

	storedPath, available := utils.ConfigurationFilePathFromContext(carryingContext)
	require.True(testInstance, available)
	require.Equal(testInstance, configurationFilePathFixtureConstant, storedPath)
}

func TestConfigurationFilePathAbsentFromPlainContext(testInstance *testing.T) {
	storedPath, available := utils.ConfigurationFilePathFromContext(context.Background())
	require.False(testInstance, available)
	require.Empty(testInstance, storedPath)
}

func TestConfigurationFilePathNilContext(testInstance *testing.T) {
	_, available := utils.ConfigurationFilePathFromContext(nil)
	require.False(testInstance, available)
}
