//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const defaultPackagesDir = "/workspace/packages"

// PackageBuilder helps create test workspace packages with a fluent interface.
type PackageBuilder struct {
	*testkit.BaseBuilder
	name    string
	version string
	dir     string
	private bool
}

// NewPackageBuilder creates a new package builder with sensible defaults.
func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-package",
		version:     "1.0.0",
	}
}

// WithName sets the package name.
func (b *PackageBuilder) WithName(name string) *PackageBuilder {
	b.name = name
	return b
}

// WithVersion sets the manifest version.
func (b *PackageBuilder) WithVersion(version string) *PackageBuilder {
	b.version = version
	return b
}

// WithPath sets the package directory. Defaults to /workspace/packages/<name>.
func (b *PackageBuilder) WithPath(dir string) *PackageBuilder {
	b.dir = dir
	return b
}

// WithPrivate marks the package as private.
func (b *PackageBuilder) WithPrivate(private bool) *PackageBuilder {
	b.private = private
	return b
}

// Build creates the package (satisfies testkit.Builder interface).
func (b *PackageBuilder) Build() interface{} {
	return b.BuildPackage()
}

// BuildPackage creates the package with a concrete return type.
func (b *PackageBuilder) BuildPackage() entities.Package {
	dir := b.dir
	if dir == "" {
		dir = path.Join(defaultPackagesDir, b.name)
	}
	return entities.Package{
		Name:    b.name,
		Version: b.version,
		Path:    dir,
		Private: b.private,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.version = "1.0.0"
	b.dir = ""
	b.private = false
	return b
}

// Clone creates a deep copy of the PackageBuilder.
func (b *PackageBuilder) Clone() testkit.Builder {
	return &PackageBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		version:     b.version,
		dir:         b.dir,
		private:     b.private,
	}
}
