package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/monobump/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "monobump",
		Short: "Release planner for multi-package JavaScript workspaces",
		Long: `Decide which packages of a pnpm or npm workspace need a new version,
cascade the bump along "workspace:" dependencies, and write the new versions.

Usage modes:
  monobump changed                  List packages changed since their last release tag
  monobump bump patch               Bump changed packages and everything depending on them
  monobump bump minor pkg-a pkg-b   Bump pkg-a, pkg-b and their changed dependencies
  monobump bump alpha --dry-run     Plan a prerelease without writing anything
  monobump log                      List commits since the last release commit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("root", "C", ".",
		"Workspace root directory")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect under the root)")
	cmd.PersistentFlags().String("workspace", "",
		"Force the workspace tool (pnpm, npm) instead of auto-detection")
	cmd.PersistentFlags().Int("concurrency", 0,
		"Maximum number of packages checked for changes in parallel")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	cobraRoot := buildRootCommand()
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'monobump': %s", err)
	}
}
