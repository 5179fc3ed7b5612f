package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

const workspaceName = "npm"

// rootManifest is the part of the root package.json that declares workspaces.
// "workspaces" is either a list of globs or an object with a "packages" list.
type rootManifest struct {
	Workspaces json.RawMessage `json:"workspaces"`
}

// WorkspaceRepository lists members declared in the root package.json "workspaces" field
// (npm, yarn and bun layouts).
type WorkspaceRepository struct {
	manifests repositories.ManifestRepository
}

var _ repositories.WorkspaceRepository = (*WorkspaceRepository)(nil)

// NewWorkspaceRepository creates a new npm workspace repository.
func NewWorkspaceRepository(manifests repositories.ManifestRepository) *WorkspaceRepository {
	return &WorkspaceRepository{manifests: manifests}
}

func (it *WorkspaceRepository) Name() string { return workspaceName }

// Detect returns true if the root package.json declares at least one workspace glob.
func (it *WorkspaceRepository) Detect(root string) bool {
	patterns, err := readWorkspacePatterns(root)
	return err == nil && len(patterns) > 0
}

// List expands the declared globs into packages.
func (it *WorkspaceRepository) List(_ context.Context, root string) ([]entities.Package, error) {
	patterns, err := readWorkspacePatterns(root)
	if err != nil {
		return nil, err
	}
	logger.Debugf("[npm] Workspace patterns: %v", patterns)
	return ExpandPackageGlobs(root, patterns, it.manifests)
}

func readWorkspacePatterns(root string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, manifestFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrManifestRead, err)
	}

	var manifest rootManifest
	if unmarshalErr := json.Unmarshal(data, &manifest); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrManifestRead, unmarshalErr)
	}
	if len(manifest.Workspaces) == 0 {
		return nil, nil
	}

	var patterns []string
	if listErr := json.Unmarshal(manifest.Workspaces, &patterns); listErr == nil {
		return patterns, nil
	}

	var object struct {
		Packages []string `json:"packages"`
	}
	if objectErr := json.Unmarshal(manifest.Workspaces, &object); objectErr != nil {
		return nil, fmt.Errorf("%w: unsupported \"workspaces\" field: %w", entities.ErrManifestRead, objectErr)
	}
	return object.Packages, nil
}
