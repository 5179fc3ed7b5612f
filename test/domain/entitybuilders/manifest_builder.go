//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"maps"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ManifestBuilder helps create test package manifests with a fluent interface.
type ManifestBuilder struct {
	*testkit.BaseBuilder
	name         string
	version      string
	private      bool
	dependencies map[string]string
	devDeps      map[string]string
	peerDeps     map[string]string
}

// NewManifestBuilder creates a new manifest builder with sensible defaults.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		name:         "test-package",
		version:      "1.0.0",
		dependencies: map[string]string{},
		devDeps:      map[string]string{},
		peerDeps:     map[string]string{},
	}
}

// WithName sets the manifest name.
func (b *ManifestBuilder) WithName(name string) *ManifestBuilder {
	b.name = name
	return b
}

// WithVersion sets the manifest version.
func (b *ManifestBuilder) WithVersion(version string) *ManifestBuilder {
	b.version = version
	return b
}

// WithPrivate sets the private flag.
func (b *ManifestBuilder) WithPrivate(private bool) *ManifestBuilder {
	b.private = private
	return b
}

// WithDependency adds a runtime dependency with the given specifier.
func (b *ManifestBuilder) WithDependency(name, specifier string) *ManifestBuilder {
	b.dependencies[name] = specifier
	return b
}

// WithWorkspaceDependency adds a runtime dependency linked to the workspace.
func (b *ManifestBuilder) WithWorkspaceDependency(name string) *ManifestBuilder {
	return b.WithDependency(name, entities.DefaultLinkPrefix+"*")
}

// WithDevDependency adds a development dependency with the given specifier.
func (b *ManifestBuilder) WithDevDependency(name, specifier string) *ManifestBuilder {
	b.devDeps[name] = specifier
	return b
}

// WithPeerDependency adds a peer dependency with the given specifier.
func (b *ManifestBuilder) WithPeerDependency(name, specifier string) *ManifestBuilder {
	b.peerDeps[name] = specifier
	return b
}

// Build creates the manifest (satisfies testkit.Builder interface).
func (b *ManifestBuilder) Build() interface{} {
	return b.BuildManifest()
}

// BuildManifest creates the manifest with a concrete return type.
func (b *ManifestBuilder) BuildManifest() *entities.Manifest {
	return &entities.Manifest{
		Name:             b.name,
		Version:          b.version,
		Private:          b.private,
		Dependencies:     maps.Clone(b.dependencies),
		DevDependencies:  maps.Clone(b.devDeps),
		PeerDependencies: maps.Clone(b.peerDeps),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ManifestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.version = "1.0.0"
	b.private = false
	b.dependencies = map[string]string{}
	b.devDeps = map[string]string{}
	b.peerDeps = map[string]string{}
	return b
}

// Clone creates a deep copy of the ManifestBuilder.
func (b *ManifestBuilder) Clone() testkit.Builder {
	return &ManifestBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		version:      b.version,
		private:      b.private,
		dependencies: maps.Clone(b.dependencies),
		devDeps:      maps.Clone(b.devDeps),
		peerDeps:     maps.Clone(b.peerDeps),
	}
}
