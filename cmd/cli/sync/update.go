package sync

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	updateCommandUseConstant              = "update"
	updateCommandShortDescriptionConstant = "Pull managed repositories forward to their upstreams"
	updateCommandLongDescriptionConstant  = "update performs an authenticated pull in every managed repository; one repository's failure never aborts the rest."
	updateDryRunFlagNameConstant          = "dry-run"
	updateDryRunFlagUsageConstant         = "Report repositories that would be updated without pulling"
	updateSuccessTemplateConstant         = "UPDATED: %s\n"
	updateFailureTemplateConstant         = "FAILED: %s\n"
	updateSkippedTemplateConstant         = "SKIPPED: %s\n"
	updatePlanTemplateConstant            = "WOULD UPDATE: %s\n"
	updatePlanCurrentTemplateConstant     = "UP TO DATE: %s\n"
)

// UpdateCommandBuilder assembles the sync update command.
type UpdateCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the update command.
func (builder *UpdateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   updateCommandUseConstant,
		Short: updateCommandShortDescriptionConstant,
		Long:  updateCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)
	command.Flags().Bool(updateDryRunFlagNameConstant, false, updateDryRunFlagUsageConstant)

	return command, nil
}

func (builder *UpdateCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := resolveConfiguration(command, builder.ConfigurationProvider)

	logger := resolveLogger(builder.LoggerProvider)
	logConfigurationSource(command, logger)

	dryRunRequested, dryRunFlagError := command.Flags().GetBool(updateDryRunFlagNameConstant)
	if dryRunFlagError != nil {
		return dryRunFlagError
	}

	service, serviceError := buildService(logger, configuration)
	if serviceError != nil {
		return serviceError
	}

	handles := service.DiscoverAll(command.Context(), configuration.HomeDirectory, configuration.PackageRoots)

	if dryRunRequested {
		for _, checkResult := range service.CheckAll(command.Context(), handles) {
			switch {
			case !checkResult.Scheduled:
				fmt.Fprintf(command.OutOrStdout(), updateSkippedTemplateConstant, checkResult.Handle.Directory)
			case checkResult.UpdatesPending:
				fmt.Fprintf(command.OutOrStdout(), updatePlanTemplateConstant, checkResult.Handle.Directory)
			default:
				fmt.Fprintf(command.OutOrStdout(), updatePlanCurrentTemplateConstant, checkResult.Handle.Directory)
			}
		}
		return nil
	}

	for _, updateResult := range service.UpdateAll(command.Context(), handles) {
		switch {
		case !updateResult.Scheduled:
			fmt.Fprintf(command.OutOrStdout(), updateSkippedTemplateConstant, updateResult.Handle.Directory)
		case updateResult.Updated:
			fmt.Fprintf(command.OutOrStdout(), updateSuccessTemplateConstant, updateResult.Handle.Directory)
		default:
			fmt.Fprintf(command.OutOrStdout(), updateFailureTemplateConstant, updateResult.Handle.Directory)
		}
	}

	return nil
}
