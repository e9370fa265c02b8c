package sync

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/repofleet/repofleet/internal/utils"
)

const testConfigurationFilePathConstant = "/etc/repofleet/config.yaml"

func TestLogConfigurationSourceReportsRecordedPath(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zap.DebugLevel)

	command := &cobra.Command{}
	command.SetContext(utils.WithConfigurationFilePath(context.Background(), testConfigurationFilePathConstant))

	logConfigurationSource(command, zap.New(observedCore))

	logEntries := observedLogs.All()
	require.Len(testInstance, logEntries, 1)
	require.Equal(testInstance, testConfigurationFilePathConstant, logEntries[0].ContextMap()[logFieldConfigurationFileConstant])
}

func TestLogConfigurationSourceSilentWithoutRecordedPath(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zap.DebugLevel)

	command := &cobra.Command{}
	command.SetContext(context.Background())

	logConfigurationSource(command, zap.New(observedCore))
	require.Empty(testInstance, observedLogs.All())
}

func TestLogConfigurationSourceSilentForEmptyPath(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zap.DebugLevel)

	command := &cobra.Command{}
	command.SetContext(utils.WithConfigurationFilePath(context.Background(), ""))

	logConfigurationSource(command, zap.New(observedCore))
	require.Empty(testInstance, observedLogs.All())
}
