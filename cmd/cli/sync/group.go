package sync

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	groupUseConstant              = "sync"
	groupShortDescriptionConstant = "Keep managed repositories current with their upstreams"
	groupLongDescriptionConstant  = "sync groups subcommands that discover the managed repositories, report pending upstream updates, and pull repositories forward."
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the resolved sync configuration section.
type ConfigurationProvider func() CommandConfiguration

// CommandGroupBuilder assembles the sync command group.
type CommandGroupBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the sync command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescriptionConstant,
		Long:  groupLongDescriptionConstant,
	}

	listBuilder := ListCommandBuilder{LoggerProvider: builder.LoggerProvider, ConfigurationProvider: builder.ConfigurationProvider}
	listCommand, listError := listBuilder.Build()
	if listError == nil {
		command.AddCommand(listCommand)
	}

	statusBuilder := StatusCommandBuilder{LoggerProvider: builder.LoggerProvider, ConfigurationProvider: builder.ConfigurationProvider}
	statusCommand, statusError := statusBuilder.Build()
	if statusError == nil {
		command.AddCommand(statusCommand)
	}

	updateBuilder := UpdateCommandBuilder{LoggerProvider: builder.LoggerProvider, ConfigurationProvider: builder.ConfigurationProvider}
	updateCommand, updateError := updateBuilder.Build()
	if updateError == nil {
		command.AddCommand(updateCommand)
	}

	return command, nil
}
