//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

// StubWorkspaceRepository implements repositories.WorkspaceRepository with fixed answers.
type StubWorkspaceRepository struct {
	// --- identity ---
	WorkspaceName string

	// --- Detect ---
	DetectResult bool

	// --- List ---
	Packages []entities.Package
	ListErr  error
}

var _ repositories.WorkspaceRepository = (*StubWorkspaceRepository)(nil)

func (s *StubWorkspaceRepository) Name() string { return s.WorkspaceName }

func (s *StubWorkspaceRepository) Detect(_ string) bool { return s.DetectResult }

func (s *StubWorkspaceRepository) List(_ context.Context, _ string) ([]entities.Package, error) {
	return s.Packages, s.ListErr
}
