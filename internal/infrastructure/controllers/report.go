package controllers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")) //nolint:gochecknoglobals // styles
	nameStyle    = lipgloss.NewStyle().Bold(true)                                       //nolint:gochecknoglobals // styles
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))            //nolint:gochecknoglobals // styles
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))            //nolint:gochecknoglobals // styles
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))            //nolint:gochecknoglobals // styles
)

// RenderBumpResults renders one line per bumped package: name, old -> new, reason.
func RenderBumpResults(results []entities.BumpResult, dryRun bool) string {
	var builder strings.Builder

	title := "Released packages"
	if dryRun {
		title = "Planned releases (dry run)"
	}
	builder.WriteString(headerStyle.Render(title))
	builder.WriteString("\n")

	if len(results) == 0 {
		builder.WriteString(mutedStyle.Render("  nothing to release"))
		builder.WriteString("\n")
		return builder.String()
	}

	width := 0
	for _, result := range results {
		width = max(width, lipgloss.Width(result.Package.Name))
	}

	for _, result := range results {
		fmt.Fprintf(&builder, "  %s  %s -> %s  %s\n",
			nameStyle.Width(width).Render(result.Package.Name),
			result.OldVersion,
			versionStyle.Render(result.NewVersion),
			mutedStyle.Render("("+result.Reason.String()+")"),
		)
	}
	return builder.String()
}

// RenderChangedReport lists every package with its release marker and change status.
func RenderChangedReport(report *commands.ChangedReport) string {
	var builder strings.Builder
	builder.WriteString(headerStyle.Render("Packages"))
	builder.WriteString("\n")

	width := 0
	for _, status := range report.Statuses {
		width = max(width, lipgloss.Width(status.Package.Name))
	}

	for _, status := range report.Statuses {
		marker := status.Marker
		if !status.Released() {
			marker = "never released"
		}

		state := mutedStyle.Render("unchanged")
		if status.Changed() {
			state = warnStyle.Render(fmt.Sprintf("changed (%d files)", len(status.ChangedPaths)))
		}

		suffix := ""
		if status.Package.Private {
			suffix = mutedStyle.Render(" [private]")
		}

		fmt.Fprintf(&builder, "  %s  %s  %s%s\n",
			nameStyle.Width(width).Render(status.Package.Name),
			mutedStyle.Render(marker),
			state,
			suffix,
		)
	}

	ordered := report.Cascade.Ordered(report.Packages)
	builder.WriteString("\n")
	builder.WriteString(headerStyle.Render("Would bump"))
	builder.WriteString("\n")
	if len(ordered) == 0 {
		builder.WriteString(mutedStyle.Render("  nothing"))
		builder.WriteString("\n")
	}
	for _, name := range ordered {
		fmt.Fprintf(&builder, "  %s  %s\n",
			nameStyle.Render(name),
			mutedStyle.Render("("+report.Cascade.Reasons[name].String()+")"),
		)
	}
	return builder.String()
}

// RenderLogReport lists the commits since the last release commit.
func RenderLogReport(report *commands.LogReport) string {
	var builder strings.Builder

	title := "Commits (no release commit found)"
	if report.Release != nil {
		title = fmt.Sprintf("Commits since %s %s", report.Release.ShortHash(), report.Release.Subject())
	}
	builder.WriteString(headerStyle.Render(title))
	builder.WriteString("\n")

	if len(report.Commits) == 0 {
		builder.WriteString(mutedStyle.Render("  none"))
		builder.WriteString("\n")
	}
	for _, commit := range report.Commits {
		fmt.Fprintf(&builder, "  %s %s\n", versionStyle.Render(commit.ShortHash()), commit.Subject())
	}
	return builder.String()
}
