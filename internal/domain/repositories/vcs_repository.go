package repositories

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// VCSRepository runs version-control queries for a single repository.
//
// Every method separates "nothing found" (empty result, nil error) from "the query
// could not run" (an error wrapping entities.ErrVCSQuery).
type VCSRepository interface {
	// ListTags returns every tag name starting with prefix.
	ListTags(ctx context.Context, prefix string) ([]string, error)

	// ChangedPaths returns the files under path that differ between fromTag and HEAD.
	// An empty fromTag diffs from the first commit of the history.
	ChangedPaths(ctx context.Context, fromTag, path string) ([]string, error)

	// FindCommit returns the most recent commit whose message contains phrase.
	FindCommit(ctx context.Context, phrase string) (*entities.Commit, error)

	// Log returns the commits reachable from HEAD but not from fromHash, newest first.
	// An empty fromHash returns the full history.
	Log(ctx context.Context, fromHash string) ([]entities.Commit, error)

	// CommitAndTag stages paths, commits them with message and creates one lightweight
	// tag per name on the new commit. An empty paths list skips the commit.
	CommitAndTag(ctx context.Context, message string, paths, tags []string) error
}

// VCSRepositoryFactory opens the repository that contains root.
type VCSRepositoryFactory func(root string) (VCSRepository, error)
