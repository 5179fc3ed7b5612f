package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// BumpController handles the "bump" subcommand.
type BumpController struct {
	command commands.Bump
}

// NewBumpController creates a new BumpController.
func NewBumpController(command commands.Bump) *BumpController {
	return &BumpController{command: command}
}

// GetBind returns the Cobra command metadata for the bump controller.
func (it *BumpController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "bump <major|minor|patch|alpha|beta|rc> [package...]",
		Short: "Bump the versions of changed packages",
		Long: `Detect the packages changed since their last release tag and bump their versions.

Without package names, every changed package is bumped together with all the
packages that depend on it (directly or transitively).

With package names, those packages are bumped together with their dependencies
that changed since their own last release. Unchanged dependencies are left alone.

Private packages are never bumped.`,
		Args: cobra.MinimumNArgs(1),
	}
}

// Execute runs the bump.
func (it *BumpController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	directive, err := entities.ParseDirective(args[0])
	if err != nil {
		return err
	}

	run, err := resolveRunContext(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	results, err := it.command.Execute(ctx, commands.BumpOptions{
		Root:      run.Root,
		Directive: directive,
		Packages:  args[1:],
		DryRun:    dryRun,
		Settings:  run.Settings,
	})
	if err != nil {
		return fmt.Errorf("bump failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), RenderBumpResults(results, dryRun))
	logger.Debugf("Bump complete: %d packages", len(results))
	return nil
}

// AddFlags adds the bump-specific flags to the given Cobra command.
func (it *BumpController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Show what would be bumped without writing anything")
	cmd.Flags().Bool("changelog", false, "Add a release section to each package CHANGELOG.md")
	cmd.Flags().Bool("commit", false, "Commit the updated manifests")
	cmd.Flags().Bool("tag", false, "Create a <package>@<version> tag per bumped package")
}
