package commands

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

// Log is the interface for the log command.
type Log interface {
	Execute(ctx context.Context, opts LogOptions) (*LogReport, error)
}

// LogOptions holds runtime options for the log command.
type LogOptions struct {
	Root     string
	Settings *entities.Settings
}

// LogReport is the list of commits since the last workspace-wide release.
type LogReport struct {
	// Release is the last commit carrying the release message, nil if there is none.
	Release *entities.Commit
	Commits []entities.Commit
}

// LogCommand lists commits since the last release commit. It is for reporting only and
// plays no part in deciding what gets bumped.
type LogCommand struct {
	vcsFactory repositories.VCSRepositoryFactory
}

// NewLogCommand creates a new LogCommand.
func NewLogCommand(vcsFactory repositories.VCSRepositoryFactory) *LogCommand {
	return &LogCommand{vcsFactory: vcsFactory}
}

// Execute is best-effort about the release marker: when the marker lookup fails the
// whole history is listed instead.
func (it *LogCommand) Execute(ctx context.Context, opts LogOptions) (*LogReport, error) {
	settings := opts.Settings
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	vcs, err := it.vcsFactory(root)
	if err != nil {
		return nil, err
	}

	release, err := vcs.FindCommit(ctx, settings.ReleaseMessage)
	if err != nil {
		logger.Warnf("Failed to find the last release commit: %v (listing the full history)", err)
		release = nil
	}

	from := ""
	if release != nil {
		from = release.Hash
		logger.Infof("Last release commit: %s %s", release.ShortHash(), release.Subject())
	} else {
		logger.Info("No release commit found, listing the full history")
	}

	commits, err := vcs.Log(ctx, from)
	if err != nil {
		return nil, err
	}

	return &LogReport{Release: release, Commits: commits}, nil
}
