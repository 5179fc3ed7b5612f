package entities

import (
	"fmt"
	"strings"
)

// BumpResult is the planned release of one package.
type BumpResult struct {
	Package    Package
	OldVersion string
	NewVersion string
	Reason     BumpReason
}

// Tag returns the release tag for the new version.
func (r BumpResult) Tag() string {
	return ReleaseTagName(r.Package.Name, r.NewVersion)
}

// PlanReleases computes the new version of every selected package, in discovery order.
// A package without a recorded reason is reported as Changed. Nothing is written here:
// every version is computed first so an invalid version aborts before any persistence.
func PlanReleases(
	packages []Package,
	cascade CascadeResult,
	directive Directive,
) ([]BumpResult, error) {
	results := make([]BumpResult, 0, len(cascade.ToBump))
	for _, pkg := range packages {
		if !cascade.ToBump.Has(pkg.Name) {
			continue
		}

		newVersion, err := BumpVersion(pkg.Version, directive)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Name, err)
		}

		reason, ok := cascade.Reasons[pkg.Name]
		if !ok {
			reason = Changed()
		}

		results = append(results, BumpResult{
			Package:    pkg,
			OldVersion: pkg.Version,
			NewVersion: newVersion,
			Reason:     reason,
		})
	}
	return results, nil
}

// ReleaseCommitMessage builds the commit message for a release: the release phrase as
// subject, then one line per released package.
func ReleaseCommitMessage(phrase string, results []BumpResult) string {
	if phrase == "" {
		phrase = DefaultReleaseMessage
	}

	var builder strings.Builder
	builder.WriteString(phrase)
	builder.WriteString("\n\n")
	for _, result := range results {
		fmt.Fprintf(&builder, " - %s\n", result.Tag())
	}
	return builder.String()
}
