//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
// It is safe for the concurrent calls made by the change detector.
type SpyVCSRepository struct {
	mu sync.Mutex

	// --- ListTags ---
	Tags        []string // every tag; filtered by prefix on each call
	ListTagsErr error
	// spy: prefixes that were requested
	ListedPrefixes []string

	// --- ChangedPaths ---
	ChangedPathsByDir map[string][]string // package path -> changed files
	ChangedPathsErr   error
	// spy: calls received
	DiffCalls []DiffCall

	// --- FindCommit ---
	ReleaseCommit *entities.Commit
	FindCommitErr error

	// --- Log ---
	Commits []entities.Commit
	LogErr  error
	// spy: from hashes received
	LogFrom []string

	// --- CommitAndTag ---
	CommitAndTagErr   error
	CommitAndTagCalls []CommitAndTagCall
}

// DiffCall records a single invocation of ChangedPaths.
type DiffCall struct {
	FromTag string
	Path    string
}

// CommitAndTagCall records a single invocation of CommitAndTag.
type CommitAndTagCall struct {
	Message string
	Paths   []string
	Tags    []string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (s *SpyVCSRepository) ListTags(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ListedPrefixes = append(s.ListedPrefixes, prefix)
	if s.ListTagsErr != nil {
		return nil, s.ListTagsErr
	}

	var tags []string
	for _, tag := range s.Tags {
		if len(tag) >= len(prefix) && tag[:len(prefix)] == prefix {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (s *SpyVCSRepository) ChangedPaths(_ context.Context, fromTag, path string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DiffCalls = append(s.DiffCalls, DiffCall{FromTag: fromTag, Path: path})
	if s.ChangedPathsErr != nil {
		return nil, s.ChangedPathsErr
	}
	return s.ChangedPathsByDir[path], nil
}

func (s *SpyVCSRepository) FindCommit(_ context.Context, _ string) (*entities.Commit, error) {
	return s.ReleaseCommit, s.FindCommitErr
}

func (s *SpyVCSRepository) Log(_ context.Context, fromHash string) ([]entities.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.LogFrom = append(s.LogFrom, fromHash)
	return s.Commits, s.LogErr
}

func (s *SpyVCSRepository) CommitAndTag(_ context.Context, message string, paths, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CommitAndTagCalls = append(s.CommitAndTagCalls, CommitAndTagCall{
		Message: message,
		Paths:   paths,
		Tags:    tags,
	})
	return s.CommitAndTagErr
}

// Factory returns a VCSRepositoryFactory always handing out this spy.
func (s *SpyVCSRepository) Factory() repositories.VCSRepositoryFactory {
	return func(_ string) (repositories.VCSRepository, error) {
		return s, nil
	}
}
