package entities

import "sort"

// Package is a snapshot of a single workspace member taken at the start of a run.
type Package struct {
	Name    string // Unique package name (may be scoped, e.g. "@org/pkg")
	Version string // Current version declared in the manifest
	Path    string // Absolute directory of the package
	Private bool   // Private packages are never bumped
}

// PackageSet is an unordered set of package names.
type PackageSet map[string]struct{}

// NewPackageSet creates a set holding the given names.
func NewPackageSet(names ...string) PackageSet {
	set := make(PackageSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts a name into the set.
func (s PackageSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether the name is in the set.
func (s PackageSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s PackageSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PublicPackages filters out private packages, keeping discovery order.
func PublicPackages(packages []Package) []Package {
	result := make([]Package, 0, len(packages))
	for _, pkg := range packages {
		if !pkg.Private {
			result = append(result, pkg)
		}
	}
	return result
}

// FindPackage returns the package with the given name.
func FindPackage(packages []Package, name string) (Package, bool) {
	for _, pkg := range packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return Package{}, false
}
