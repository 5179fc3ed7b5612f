package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra command metadata a controller is registered under.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entry point backed by a domain command.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
	AddFlags(cmd *cobra.Command)
}
