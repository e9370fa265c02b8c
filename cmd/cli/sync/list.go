package sync

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "List the managed repositories"
	listCommandLongDescriptionConstant  = "list discovers the primary installation repository and every valid package repository beneath the configured roots."
	listRowTemplateConstant             = "%s\t%s\t%s\n"
)

// ListCommandBuilder assembles the sync list command.
type ListCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Long:  listCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := resolveConfiguration(command, builder.ConfigurationProvider)

	logger := resolveLogger(builder.LoggerProvider)
	logConfigurationSource(command, logger)

	service, serviceError := buildService(logger, configuration)
	if serviceError != nil {
		return serviceError
	}

	handles := service.DiscoverAll(command.Context(), configuration.HomeDirectory, configuration.PackageRoots)
	for _, handle := range handles {
		fmt.Fprintf(command.OutOrStdout(), listRowTemplateConstant, handle.Directory, handle.HeadBranchName, handle.HeadCommitID)
	}

	return nil
}
