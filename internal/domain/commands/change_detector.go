package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

// ChangeDetector finds, for every package, whether files under its directory changed
// since the package's own last release tag.
type ChangeDetector struct{}

// NewChangeDetector creates a new ChangeDetector.
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// Detect queries the VCS for each package on at most concurrency workers. Statuses are
// returned in the order of packages. The first failing query cancels the others and is
// returned: a failed query is never read as "no release tag".
func (it *ChangeDetector) Detect(
	ctx context.Context,
	vcs repositories.VCSRepository,
	packages []entities.Package,
	concurrency int,
) ([]entities.ChangeStatus, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	statuses := make([]entities.ChangeStatus, len(packages))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, pkg := range packages {
		group.Go(func() error {
			status, err := detectPackage(groupCtx, vcs, pkg)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

func detectPackage(
	ctx context.Context,
	vcs repositories.VCSRepository,
	pkg entities.Package,
) (entities.ChangeStatus, error) {
	tags, err := vcs.ListTags(ctx, entities.ReleaseTagPrefix(pkg.Name))
	if err != nil {
		return entities.ChangeStatus{}, fmt.Errorf("looking up release tag of %s: %w", pkg.Name, err)
	}

	marker, found := entities.LatestReleaseTag(pkg.Name, tags)
	if found {
		logger.Debugf("%s: last release tag %s", pkg.Name, marker)
	} else {
		logger.Debugf("%s: never released, comparing against the first commit", pkg.Name)
	}

	paths, err := vcs.ChangedPaths(ctx, marker, pkg.Path)
	if err != nil {
		return entities.ChangeStatus{}, fmt.Errorf("diffing %s: %w", pkg.Name, err)
	}

	return entities.ChangeStatus{Package: pkg, Marker: marker, ChangedPaths: paths}, nil
}
