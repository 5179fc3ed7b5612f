package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// runContext is what every controller resolves from the global flags.
type runContext struct {
	Root     string
	Settings *entities.Settings
}

// resolveRunContext loads the settings of the workspace selected with --root and
// applies the flag overrides the user explicitly set.
func resolveRunContext(cmd *cobra.Command) (*runContext, error) {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = "."
	}
	configPath, _ := cmd.Flags().GetString("config")

	settings, err := entities.LoadSettings(root, configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workspace") {
		settings.Workspace, _ = flags.GetString("workspace")
	}
	if flags.Changed("concurrency") {
		settings.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("changelog") {
		settings.Changelog, _ = flags.GetBool("changelog")
	}
	if flags.Changed("commit") {
		settings.Commit, _ = flags.GetBool("commit")
	}
	if flags.Changed("tag") {
		settings.Tag, _ = flags.GetBool("tag")
	}

	return &runContext{Root: root, Settings: settings}, nil
}
