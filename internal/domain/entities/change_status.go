package entities

// ChangeStatus is the outcome of change detection for one package.
type ChangeStatus struct {
	Package Package
	// Marker is the release tag the diff started from; empty when the package was never released.
	Marker       string
	ChangedPaths []string
}

// Changed reports whether the package has modifications since its marker.
func (s ChangeStatus) Changed() bool {
	return len(s.ChangedPaths) > 0
}

// Released reports whether a release tag exists for the package.
func (s ChangeStatus) Released() bool {
	return s.Marker != ""
}

// ChangeSetOf collects the names of changed packages.
func ChangeSetOf(statuses []ChangeStatus) PackageSet {
	set := NewPackageSet()
	for _, status := range statuses {
		if status.Changed() {
			set.Add(status.Package.Name)
		}
	}
	return set
}
