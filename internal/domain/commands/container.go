package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Shared building blocks
	if err := container.Provide(NewWorkspaceLoader); err != nil {
		return err
	}
	if err := container.Provide(NewChangeDetector); err != nil {
		return err
	}

	// Register command constructors
	if err := container.Provide(NewBumpCommand); err != nil {
		return err
	}
	if err := container.Provide(NewChangedCommand); err != nil {
		return err
	}
	if err := container.Provide(NewLogCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *BumpCommand) Bump {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ChangedCommand) Changed {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *LogCommand) Log {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
