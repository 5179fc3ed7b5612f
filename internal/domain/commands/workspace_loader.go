package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/monobump/internal/infrastructure/repositories"
)

// WorkspaceSnapshot is everything read from the workspace at the start of a run.
type WorkspaceSnapshot struct {
	Root     string
	Tool     string
	Packages []entities.Package
	Graph    entities.DependencyGraph
}

// WorkspaceLoader discovers the workspace members and builds their dependency graph.
type WorkspaceLoader struct {
	workspaceRegistry *infraRepos.WorkspaceRegistry
	manifests         repositories.ManifestRepository
}

// NewWorkspaceLoader creates a new WorkspaceLoader.
func NewWorkspaceLoader(
	workspaceRegistry *infraRepos.WorkspaceRegistry,
	manifests repositories.ManifestRepository,
) *WorkspaceLoader {
	return &WorkspaceLoader{
		workspaceRegistry: workspaceRegistry,
		manifests:         manifests,
	}
}

// Load lists the packages of the workspace at root and reads every manifest.
// Any manifest that cannot be read aborts the run.
func (it *WorkspaceLoader) Load(
	ctx context.Context,
	root string,
	settings *entities.Settings,
) (*WorkspaceSnapshot, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	workspace, err := it.workspaceRegistry.Resolve(absRoot, settings.Workspace)
	if err != nil {
		return nil, err
	}
	logger.Infof("Detected workspace tool: %s", workspace.Name())

	packages, err := workspace.List(ctx, absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace packages: %w", err)
	}
	logger.Infof("Found %d packages (%d public)", len(packages), len(entities.PublicPackages(packages)))

	manifests := make(map[string]*entities.Manifest, len(packages))
	for _, pkg := range packages {
		manifest, readErr := it.manifests.Read(pkg.Path)
		if readErr != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Name, readErr)
		}
		manifests[pkg.Name] = manifest
	}

	return &WorkspaceSnapshot{
		Root:     absRoot,
		Tool:     workspace.Name(),
		Packages: packages,
		Graph:    entities.BuildDependencyGraph(packages, manifests, settings.LinkPrefix),
	}, nil
}
