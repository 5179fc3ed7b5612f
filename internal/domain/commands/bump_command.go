package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

const (
	changelogFileName = "CHANGELOG.md"
	changelogDateFmt  = "2006-01-02"
)

// Bump is the interface for the bump command (release planner).
type Bump interface {
	Execute(ctx context.Context, opts BumpOptions) ([]entities.BumpResult, error)
}

// BumpOptions holds runtime options for a single bump.
type BumpOptions struct {
	Root      string
	Directive entities.Directive
	// Packages switches to downward mode when non-empty.
	Packages []string
	DryRun   bool
	Settings *entities.Settings
}

// BumpCommand plans and applies a release:
// load workspace -> detect changes -> cascade -> compute versions -> persist.
type BumpCommand struct {
	loader     *WorkspaceLoader
	detector   *ChangeDetector
	manifests  repositories.ManifestRepository
	vcsFactory repositories.VCSRepositoryFactory
	now        func() time.Time
}

// NewBumpCommand creates a new BumpCommand.
func NewBumpCommand(
	loader *WorkspaceLoader,
	detector *ChangeDetector,
	manifests repositories.ManifestRepository,
	vcsFactory repositories.VCSRepositoryFactory,
) *BumpCommand {
	return &BumpCommand{
		loader:     loader,
		detector:   detector,
		manifests:  manifests,
		vcsFactory: vcsFactory,
		now:        time.Now,
	}
}

// Execute returns the planned results whether or not they were persisted.
func (it *BumpCommand) Execute(ctx context.Context, opts BumpOptions) ([]entities.BumpResult, error) {
	settings := opts.Settings
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	snapshot, err := it.loader.Load(ctx, opts.Root, settings)
	if err != nil {
		return nil, err
	}

	// unknown names fail before any VCS work
	if validateErr := entities.ValidateRequested(snapshot.Packages, opts.Packages); validateErr != nil {
		return nil, validateErr
	}

	vcs, err := it.vcsFactory(snapshot.Root)
	if err != nil {
		return nil, err
	}

	statuses, err := it.detector.Detect(ctx, vcs, snapshot.Packages, settings.Concurrency)
	if err != nil {
		return nil, err
	}
	changed := entities.ChangeSetOf(statuses)
	logger.Infof("%d packages changed since their last release", len(changed))

	cascade, err := resolveCascade(snapshot, changed, opts.Packages)
	if err != nil {
		return nil, err
	}

	results, err := entities.PlanReleases(snapshot.Packages, cascade, opts.Directive)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		logger.Info("No packages to bump, nothing to do.")
		return results, nil
	}

	if opts.DryRun {
		for _, result := range results {
			logger.Infof(
				"[DRY RUN] Would bump %s from %s to %s (%s)",
				result.Package.Name, result.OldVersion, result.NewVersion, result.Reason,
			)
		}
		return results, nil
	}

	touched, err := it.persist(results, settings)
	if err != nil {
		return results, err
	}

	if settings.Commit || settings.Tag {
		if tagErr := it.commitAndTag(ctx, vcs, results, touched, settings); tagErr != nil {
			return results, tagErr
		}
	}

	return results, nil
}

func resolveCascade(
	snapshot *WorkspaceSnapshot,
	changed entities.PackageSet,
	requested []string,
) (entities.CascadeResult, error) {
	if len(requested) == 0 {
		logger.Debug("No packages requested, cascading to dependents")
		return entities.ResolveUpward(snapshot.Packages, snapshot.Graph, changed), nil
	}
	logger.Debugf("Requested %s, cascading to changed dependencies", strings.Join(requested, ", "))
	return entities.ResolveDownward(snapshot.Packages, snapshot.Graph, changed, requested)
}

// persist writes every manifest and, when enabled, every changelog. The writes are not
// transactional: on failure the manifests written so far stay written and are logged.
func (it *BumpCommand) persist(
	results []entities.BumpResult,
	settings *entities.Settings,
) ([]string, error) {
	touched := make([]string, 0, len(results))
	written := make([]string, 0, len(results))

	for _, result := range results {
		if err := it.manifests.WriteVersion(result.Package.Path, result.NewVersion); err != nil {
			if len(written) > 0 {
				logger.Warnf("Manifests already updated before the failure: %s", strings.Join(written, ", "))
			}
			return touched, fmt.Errorf("package %s: %w", result.Package.Name, err)
		}
		written = append(written, result.Package.Name)
		touched = append(touched, it.manifests.ManifestPath(result.Package.Path))
		logger.Infof("Bumped %s from %s to %s", result.Package.Name, result.OldVersion, result.NewVersion)

		if !settings.Changelog {
			continue
		}
		changelogPath, err := it.updateChangelog(result)
		if err != nil {
			return touched, fmt.Errorf("package %s: %w", result.Package.Name, err)
		}
		if changelogPath != "" {
			touched = append(touched, changelogPath)
		}
	}

	return touched, nil
}

// updateChangelog adds a release section to the package changelog when one exists.
func (it *BumpCommand) updateChangelog(result entities.BumpResult) (string, error) {
	path := filepath.Join(result.Package.Path, changelogFileName)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("%s has no %s, skipping", result.Package.Name, changelogFileName)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat changelog: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read changelog: %w", err)
	}

	updated := entities.InsertReleaseSection(
		string(content),
		result.NewVersion,
		it.now().Format(changelogDateFmt),
		entities.ChangelogEntries(result),
	)
	if writeErr := os.WriteFile(path, []byte(updated), info.Mode().Perm()); writeErr != nil {
		return "", fmt.Errorf("failed to write changelog: %w", writeErr)
	}
	return path, nil
}

func (it *BumpCommand) commitAndTag(
	ctx context.Context,
	vcs repositories.VCSRepository,
	results []entities.BumpResult,
	touched []string,
	settings *entities.Settings,
) error {
	var paths []string
	if settings.Commit {
		paths = touched
	}

	var tags []string
	if settings.Tag {
		tags = make([]string, 0, len(results))
		for _, result := range results {
			tags = append(tags, result.Tag())
		}
	}

	message := entities.ReleaseCommitMessage(settings.ReleaseMessage, results)
	if err := vcs.CommitAndTag(ctx, message, paths, tags); err != nil {
		return fmt.Errorf("failed to record the release: %w", err)
	}

	if len(tags) > 0 {
		logger.Infof("Created tags: %s", strings.Join(tags, ", "))
	}
	return nil
}
