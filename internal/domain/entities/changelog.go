package entities

import (
	"fmt"
	"strings"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	h2Prefix          = "## ["
	bulletPrefix      = "- "
)

// ChangelogEntries renders the bullets describing why a package was released.
func ChangelogEntries(result BumpResult) []string {
	return []string{
		fmt.Sprintf("%sreleased `%s` (%s)", bulletPrefix, result.NewVersion, result.Reason),
	}
}

// InsertReleaseSection turns the "## [Unreleased]" section of a Keep-a-Changelog
// document into a "## [version] - date" section and leaves an empty Unreleased
// heading above it. The entries are appended to the "### Changed" subsection of the
// new release, which is created when missing.
//
// Without an Unreleased heading the release section is inserted before the first
// "## [" heading, or at the end of the document.
func InsertReleaseSection(content, version, date string, entries []string) string {
	lines := strings.Split(content, "\n")
	releaseHeading := fmt.Sprintf("%s%s] - %s", h2Prefix, version, date)

	unreleasedIdx := findUnreleasedIndex(lines)
	if unreleasedIdx < 0 {
		at := findNextH2Index(lines, -1)
		section := []string{releaseHeading, "", changedSubheading, ""}
		section = append(section, entries...)
		if at < len(lines) {
			section = append(section, "")
		} else {
			if lines[at-1] == "" {
				at-- // keep the trailing newline last
			}
			if at > 0 && strings.TrimSpace(lines[at-1]) != "" {
				section = append([]string{""}, section...)
			}
		}
		return strings.Join(insertLines(lines, at, section), "\n")
	}

	// Unreleased heading becomes the release heading; a fresh Unreleased goes above it.
	lines[unreleasedIdx] = releaseHeading
	lines = insertLines(lines, unreleasedIdx, []string{unreleasedHeading, ""})
	releaseIdx := unreleasedIdx + 2 //nolint:mnd // heading + blank line inserted above
	nextH2Idx := findNextH2Index(lines, releaseIdx)

	if len(entries) == 0 {
		return strings.Join(lines, "\n")
	}

	changedIdx := findChangedIndex(lines, releaseIdx, nextH2Idx)
	if changedIdx >= 0 {
		insertAfter := findLastBullet(lines, changedIdx, nextH2Idx)
		lines = insertLines(lines, insertAfter+1, entries)
	} else {
		block := []string{"", changedSubheading, ""}
		block = append(block, entries...)
		lines = insertLines(lines, releaseIdx+1, block)
	}

	return strings.Join(lines, "\n")
}

// findUnreleasedIndex returns the line index of the "## [Unreleased]"
// heading, or -1 if not found.
func findUnreleasedIndex(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == unreleasedHeading {
			return i
		}
	}
	return -1
}

// findNextH2Index returns the line index of the next "## [" heading after
// startIdx, or len(lines) if there is none.
func findNextH2Index(lines []string, startIdx int) int {
	for i := startIdx + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), h2Prefix) {
			return i
		}
	}
	return len(lines)
}

// findChangedIndex returns the line index of the "### Changed" subsection
// between startIdx and endIdx, or -1 if not found.
func findChangedIndex(lines []string, startIdx, endIdx int) int {
	for i := startIdx + 1; i < endIdx; i++ {
		if strings.TrimSpace(lines[i]) == changedSubheading {
			return i
		}
	}
	return -1
}

// findLastBullet returns the index of the last bullet line in the
// ### Changed subsection, starting from changedIdx.
func findLastBullet(lines []string, changedIdx, endIdx int) int {
	insertAfter := changedIdx
	for i := changedIdx + 1; i < endIdx; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, bulletPrefix) {
			insertAfter = i
			continue
		}
		break
	}
	return insertAfter
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
