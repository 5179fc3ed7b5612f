//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"path/filepath"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository in memory.
type SpyManifestRepository struct {
	// --- Read ---
	Manifests map[string]*entities.Manifest // package path -> manifest
	ReadErr   error

	// --- WriteVersion ---
	WriteErrs map[string]error // package path -> error
	// spy: package path -> written version, in call order
	WrittenVersions map[string]string
	WriteOrder      []string
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) ManifestPath(packageDir string) string {
	return filepath.Join(packageDir, "package.json")
}

func (s *SpyManifestRepository) Read(packageDir string) (*entities.Manifest, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if manifest, ok := s.Manifests[packageDir]; ok {
		return manifest, nil
	}
	return nil, fmt.Errorf("%w: no manifest in %s", entities.ErrManifestRead, packageDir)
}

func (s *SpyManifestRepository) WriteVersion(packageDir, version string) error {
	if err, ok := s.WriteErrs[packageDir]; ok {
		return err
	}
	if s.WrittenVersions == nil {
		s.WrittenVersions = make(map[string]string)
	}
	s.WrittenVersions[packageDir] = version
	s.WriteOrder = append(s.WriteOrder, packageDir)
	return nil
}
