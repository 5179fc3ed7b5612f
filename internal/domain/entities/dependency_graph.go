package entities

import (
	"sort"
	"strings"
)

// DefaultLinkPrefix marks a dependency specifier that resolves to a workspace package.
const DefaultLinkPrefix = "workspace:"

// Manifest is the subset of a package manifest the planner reads.
type Manifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Private          bool              `json:"private"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// DependencyGraph maps a package name to the names of its in-workspace dependencies.
type DependencyGraph map[string]PackageSet

// Dependencies returns the dependencies of a package in lexicographic order.
func (g DependencyGraph) Dependencies(name string) []string {
	deps, ok := g[name]
	if !ok {
		return nil
	}
	return deps.Sorted()
}

// Dependents returns the packages that depend on name, in lexicographic order.
func (g DependencyGraph) Dependents(name string) []string {
	var result []string
	for pkg, deps := range g {
		if deps.Has(name) {
			result = append(result, pkg)
		}
	}
	sort.Strings(result)
	return result
}

// BuildDependencyGraph extracts workspace-link edges from every package manifest.
// All dependency sections count. Visibility is not filtered here: edges to
// private packages are kept and left to the cascade resolver.
func BuildDependencyGraph(
	packages []Package,
	manifests map[string]*Manifest,
	linkPrefix string,
) DependencyGraph {
	if linkPrefix == "" {
		linkPrefix = DefaultLinkPrefix
	}

	graph := make(DependencyGraph, len(packages))
	for _, pkg := range packages {
		deps := NewPackageSet()
		graph[pkg.Name] = deps

		manifest, ok := manifests[pkg.Name]
		if !ok || manifest == nil {
			continue
		}

		for _, section := range []map[string]string{
			manifest.Dependencies,
			manifest.DevDependencies,
			manifest.PeerDependencies,
		} {
			for depName, specifier := range section {
				if depName == pkg.Name {
					continue
				}
				if strings.HasPrefix(strings.TrimSpace(specifier), linkPrefix) {
					deps.Add(depName)
				}
			}
		}
	}
	return graph
}
