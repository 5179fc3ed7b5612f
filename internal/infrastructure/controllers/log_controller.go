package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// LogController handles the "log" subcommand.
type LogController struct {
	command commands.Log
}

// NewLogController creates a new LogController.
func NewLogController(command commands.Log) *LogController {
	return &LogController{command: command}
}

// GetBind returns the Cobra command metadata for the log controller.
func (it *LogController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "log",
		Short: "List commits since the last release commit",
		Long: `List the commits made since the last commit whose message contains the
release phrase (release_message, "chore(release): publish" by default).`,
		Args: cobra.NoArgs,
	}
}

// Execute prints the commit list.
func (it *LogController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := resolveRunContext(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(context.Background(), commands.LogOptions{
		Root:     run.Root,
		Settings: run.Settings,
	})
	if err != nil {
		return fmt.Errorf("log failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), RenderLogReport(report))
	return nil
}

// AddFlags has nothing to add; the global flags cover this command.
func (it *LogController) AddFlags(_ *cobra.Command) {}
