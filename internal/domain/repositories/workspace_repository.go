package repositories

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// WorkspaceRepository abstracts a workspace tool (pnpm, npm, ...) that knows which
// directories are members of a multi-package repository.
type WorkspaceRepository interface {
	// Name returns the workspace tool identifier (e.g. "pnpm", "npm").
	Name() string

	// Detect returns true if the root directory is laid out for this tool.
	Detect(root string) bool

	// List returns every member package in discovery order.
	List(ctx context.Context, root string) ([]entities.Package, error)
}
