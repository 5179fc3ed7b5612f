package entities

import (
	"fmt"
	"strings"
)

// CascadeResult is the set of packages to bump together with the reason for each one.
type CascadeResult struct {
	ToBump  PackageSet
	Reasons map[string]BumpReason
}

func newCascadeResult() CascadeResult {
	return CascadeResult{
		ToBump:  NewPackageSet(),
		Reasons: make(map[string]BumpReason),
	}
}

func (r CascadeResult) add(name string, reason BumpReason) {
	r.ToBump.Add(name)
	r.Reasons[name] = reason
}

// Ordered returns the selected package names in workspace discovery order.
func (r CascadeResult) Ordered(packages []Package) []string {
	names := make([]string, 0, len(r.ToBump))
	for _, pkg := range packages {
		if r.ToBump.Has(pkg.Name) {
			names = append(names, pkg.Name)
		}
	}
	return names
}

// ValidateRequested fails on the first requested name that is not a workspace package.
func ValidateRequested(packages []Package, requested []string) error {
	var unknown []string
	for _, name := range requested {
		if _, ok := FindPackage(packages, name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRequestedPackage, strings.Join(unknown, ", "))
	}
	return nil
}

// ResolveUpward expands the changed packages to every public package that depends on
// them, directly or transitively.
//
// Each pass looks at the set as it was when the pass started, so a package's trigger
// was always selected in an earlier pass and the trigger chains cannot loop. When more
// than one dependency qualifies the lexicographically smallest name is the trigger.
func ResolveUpward(packages []Package, graph DependencyGraph, changed PackageSet) CascadeResult {
	public := PublicPackages(packages)
	result := newCascadeResult()

	for _, pkg := range public {
		if changed.Has(pkg.Name) {
			result.add(pkg.Name, Changed())
		}
	}

	triggers := make(map[string]string)
	for {
		snapshot := NewPackageSet(result.ToBump.Sorted()...)
		var added []string

		for _, pkg := range public {
			if snapshot.Has(pkg.Name) {
				continue
			}
			for _, dep := range graph.Dependencies(pkg.Name) {
				if snapshot.Has(dep) {
					triggers[pkg.Name] = dep
					added = append(added, pkg.Name)
					break
				}
			}
		}

		if len(added) == 0 {
			break
		}
		for _, name := range added {
			result.ToBump.Add(name)
		}
	}

	for name := range triggers {
		result.Reasons[name] = DependsOnChain(triggerChain(name, triggers))
	}
	return result
}

// triggerChain walks from the trigger of name back to a package with no trigger (a changed root).
func triggerChain(name string, triggers map[string]string) []string {
	var chain []string
	current := triggers[name]
	for {
		chain = append(chain, current)
		next, ok := triggers[current]
		if !ok {
			return chain
		}
		current = next
	}
}

// ResolveDownward starts from the requested packages and pulls in their dependencies,
// transitively, but only those with detected changes. A dependency without changes is
// assumed to be published already at its current version.
func ResolveDownward(
	packages []Package,
	graph DependencyGraph,
	changed PackageSet,
	requested []string,
) (CascadeResult, error) {
	if err := ValidateRequested(packages, requested); err != nil {
		return CascadeResult{}, err
	}

	public := PublicPackages(packages)
	publicNames := NewPackageSet()
	for _, pkg := range public {
		publicNames.Add(pkg.Name)
	}

	result := newCascadeResult()
	for _, name := range requested {
		if publicNames.Has(name) {
			result.add(name, Specified())
		}
	}

	for {
		snapshot := NewPackageSet(result.ToBump.Sorted()...)
		added := false

		for _, pkg := range public {
			if !snapshot.Has(pkg.Name) {
				continue
			}
			for _, dep := range graph.Dependencies(pkg.Name) {
				if !publicNames.Has(dep) || !changed.Has(dep) || result.ToBump.Has(dep) {
					continue
				}
				result.add(dep, DependencyOf(pkg.Name))
				added = true
			}
		}

		if !added {
			break
		}
	}

	return result, nil
}
