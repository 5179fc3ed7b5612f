package repositories

import (
	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// ManifestRepository reads and rewrites package manifests.
type ManifestRepository interface {
	// ManifestPath returns the manifest file of the package directory.
	ManifestPath(packageDir string) string

	// Read parses the manifest found in the package directory.
	Read(packageDir string) (*entities.Manifest, error)

	// WriteVersion replaces the version field and nothing else: key order,
	// indentation and the trailing newline are kept as they are.
	WriteVersion(packageDir, version string) error
}
