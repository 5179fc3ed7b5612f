package entities

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultReleaseMessage is the phrase that marks a workspace-wide release commit.
const DefaultReleaseMessage = "chore(release): publish"

// ReleaseTagPrefix returns the prefix shared by every release tag of a package.
func ReleaseTagPrefix(packageName string) string {
	return packageName + "@"
}

// ReleaseTagName returns the tag recorded for a package release, "<name>@<version>".
func ReleaseTagName(packageName, version string) string {
	return ReleaseTagPrefix(packageName) + version
}

// LatestReleaseTag picks, among tags of the exact form "<name>@<semver>", the one with
// the highest version. It returns false when no tag matches.
func LatestReleaseTag(packageName string, tags []string) (string, bool) {
	prefix := ReleaseTagPrefix(packageName)

	var candidates []releaseCandidate
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		raw := strings.TrimSpace(strings.TrimPrefix(tag, prefix))
		if strings.HasPrefix(raw, "v") {
			continue
		}
		version := normalizeVersion(raw)
		if !isFullSemver(version) {
			continue
		}
		candidate := releaseCandidate{tag: tag, version: version}
		if parsed, err := ParseVersion(raw); err == nil {
			candidate.parsed = &parsed
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if order := candidates[i].compare(candidates[j]); order != 0 {
			return order > 0
		}
		return candidates[i].tag > candidates[j].tag
	})
	return candidates[0].tag, true
}

type releaseCandidate struct {
	tag     string
	version string
	parsed  *ParsedVersion
}

// compare ranks prerelease numbers of the a/b/rc grammar numerically, so a10 is above a9.
// Anything outside that grammar falls back to semver precedence.
func (it releaseCandidate) compare(other releaseCandidate) int {
	if it.parsed != nil && other.parsed != nil {
		return it.parsed.Compare(*other.parsed)
	}
	return semver.Compare(it.version, other.version)
}

// normalizeVersion adds the 'v' prefix golang.org/x/mod/semver expects.
func normalizeVersion(version string) string {
	return "v" + version
}

// isFullSemver rejects the "v1" and "v1.2" shorthands semver.IsValid accepts.
func isFullSemver(version string) bool {
	if !semver.IsValid(version) {
		return false
	}
	core := version
	if idx := strings.IndexAny(core, "-+"); idx >= 0 {
		core = core[:idx]
	}
	return strings.Count(core, ".") == 2 //nolint:mnd // major.minor.patch
}
