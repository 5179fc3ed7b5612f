package commands

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

// Changed is the interface for the changed command.
type Changed interface {
	Execute(ctx context.Context, opts ChangedOptions) (*ChangedReport, error)
}

// ChangedOptions holds runtime options for the changed command.
type ChangedOptions struct {
	Root     string
	Settings *entities.Settings
}

// ChangedReport lists every package with its change status and the packages an
// upward bump would select.
type ChangedReport struct {
	Statuses []entities.ChangeStatus
	Cascade  entities.CascadeResult
	Packages []entities.Package
}

// ChangedCommand reports which packages changed since their last release.
type ChangedCommand struct {
	loader     *WorkspaceLoader
	detector   *ChangeDetector
	vcsFactory repositories.VCSRepositoryFactory
}

// NewChangedCommand creates a new ChangedCommand.
func NewChangedCommand(
	loader *WorkspaceLoader,
	detector *ChangeDetector,
	vcsFactory repositories.VCSRepositoryFactory,
) *ChangedCommand {
	return &ChangedCommand{
		loader:     loader,
		detector:   detector,
		vcsFactory: vcsFactory,
	}
}

// Execute detects changes without planning versions or writing anything.
func (it *ChangedCommand) Execute(ctx context.Context, opts ChangedOptions) (*ChangedReport, error) {
	settings := opts.Settings
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	snapshot, err := it.loader.Load(ctx, opts.Root, settings)
	if err != nil {
		return nil, err
	}

	vcs, err := it.vcsFactory(snapshot.Root)
	if err != nil {
		return nil, err
	}

	statuses, err := it.detector.Detect(ctx, vcs, snapshot.Packages, settings.Concurrency)
	if err != nil {
		return nil, err
	}

	return &ChangedReport{
		Statuses: statuses,
		Cascade:  entities.ResolveUpward(snapshot.Packages, snapshot.Graph, entities.ChangeSetOf(statuses)),
		Packages: snapshot.Packages,
	}, nil
}
