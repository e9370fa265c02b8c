package sync

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	statusCommandUseConstant              = "status"
	statusCommandShortDescriptionConstant = "Report repositories with pending upstream updates"
	statusCommandLongDescriptionConstant  = "status fetches every remote of each managed repository and reports which repositories have tracked branches behind their upstream."
	statusPendingTemplateConstant         = "UPDATES PENDING: %s\n"
	statusCurrentTemplateConstant         = "UP TO DATE: %s\n"
	statusSkippedTemplateConstant         = "SKIPPED: %s\n"
)

// StatusCommandBuilder assembles the sync status command.
type StatusCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the status command.
func (builder *StatusCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   statusCommandUseConstant,
		Short: statusCommandShortDescriptionConstant,
		Long:  statusCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)

	return command, nil
}

func (builder *StatusCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := resolveConfiguration(command, builder.ConfigurationProvider)

	logger := resolveLogger(builder.LoggerProvider)
	logConfigurationSource(command, logger)

	service, serviceError := buildService(logger, configuration)
	if serviceError != nil {
		return serviceError
	}

	handles := service.DiscoverAll(command.Context(), configuration.HomeDirectory, configuration.PackageRoots)
	for _, checkResult := range service.CheckAll(command.Context(), handles) {
		switch {
		case !checkResult.Scheduled:
			fmt.Fprintf(command.OutOrStdout(), statusSkippedTemplateConstant, checkResult.Handle.Directory)
		case checkResult.UpdatesPending:
			fmt.Fprintf(command.OutOrStdout(), statusPendingTemplateConstant, checkResult.Handle.Directory)
		default:
			fmt.Fprintf(command.OutOrStdout(), statusCurrentTemplateConstant, checkResult.Handle.Directory)
		}
	}

	return nil
}
