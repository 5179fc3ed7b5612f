package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/monobump/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/monobump/internal/infrastructure/repositories/git"
	npmRepo "github.com/rios0rios0/monobump/internal/infrastructure/repositories/npm"
	pnpmRepo "github.com/rios0rios0/monobump/internal/infrastructure/repositories/pnpm"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Manifest reader/writer shared by the workspace tools and the release planner
	if err := container.Provide(func() domainRepos.ManifestRepository {
		return npmRepo.NewManifestRepository()
	}); err != nil {
		return err
	}

	// Register workspace registry with all workspace tools, pnpm first
	if err := container.Provide(func(manifests domainRepos.ManifestRepository) *WorkspaceRegistry {
		reg := NewWorkspaceRegistry()
		reg.Register(pnpmRepo.NewWorkspaceRepository(manifests))
		reg.Register(npmRepo.NewWorkspaceRepository(manifests))
		return reg
	}); err != nil {
		return err
	}

	// Version control is opened per run, once the workspace root is known
	if err := container.Provide(gitRepo.NewVCSRepositoryFactory); err != nil {
		return err
	}

	return nil
}
