package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// ChangedController handles the "changed" subcommand.
type ChangedController struct {
	command commands.Changed
}

// NewChangedController creates a new ChangedController.
func NewChangedController(command commands.Changed) *ChangedController {
	return &ChangedController{command: command}
}

// GetBind returns the Cobra command metadata for the changed controller.
func (it *ChangedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "changed",
		Short: "List packages changed since their last release",
		Long: `List every workspace package with its last release tag and whether files
under its directory changed since then, followed by the packages a bump
without explicit package names would select.`,
		Args: cobra.NoArgs,
	}
}

// Execute prints the change report.
func (it *ChangedController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := resolveRunContext(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(context.Background(), commands.ChangedOptions{
		Root:     run.Root,
		Settings: run.Settings,
	})
	if err != nil {
		return fmt.Errorf("change detection failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), RenderChangedReport(report))
	return nil
}

// AddFlags has nothing to add; the global flags cover this command.
func (it *ChangedController) AddFlags(_ *cobra.Command) {}
