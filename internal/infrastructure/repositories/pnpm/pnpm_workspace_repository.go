package pnpm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
	"github.com/rios0rios0/monobump/internal/infrastructure/repositories/npm"
)

const (
	workspaceName     = "pnpm"
	workspaceFileName = "pnpm-workspace.yaml"
)

// workspaceFile mirrors pnpm-workspace.yaml.
type workspaceFile struct {
	Packages []string `yaml:"packages"`
}

// WorkspaceRepository lists members declared in pnpm-workspace.yaml.
type WorkspaceRepository struct {
	manifests repositories.ManifestRepository
}

var _ repositories.WorkspaceRepository = (*WorkspaceRepository)(nil)

// NewWorkspaceRepository creates a new pnpm workspace repository.
func NewWorkspaceRepository(manifests repositories.ManifestRepository) *WorkspaceRepository {
	return &WorkspaceRepository{manifests: manifests}
}

func (it *WorkspaceRepository) Name() string { return workspaceName }

// Detect returns true if the root has a pnpm-workspace.yaml file.
func (it *WorkspaceRepository) Detect(root string) bool {
	_, err := os.Stat(filepath.Join(root, workspaceFileName))
	return err == nil
}

// List expands the "packages" globs of pnpm-workspace.yaml into packages.
func (it *WorkspaceRepository) List(_ context.Context, root string) ([]entities.Package, error) {
	path := filepath.Join(root, workspaceFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", workspaceFileName, err)
	}

	var file workspaceFile
	if unmarshalErr := yaml.Unmarshal(data, &file); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", workspaceFileName, unmarshalErr)
	}
	logger.Debugf("[pnpm] Workspace patterns: %v", file.Packages)

	return npm.ExpandPackageGlobs(root, file.Packages, it.manifests)
}
