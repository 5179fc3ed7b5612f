package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

const (
	tagRefPrefix   = "refs/tags/"
	fallbackAuthor = "monobump"
	fallbackEmail  = "monobump@localhost"
)

// VCSRepository answers version-control queries with go-git.
//
// Every query opens its own handle on the repository so that queries issued from
// several goroutines never share go-git storage state.
type VCSRepository struct {
	gitDir string // directory the repository was opened from
	root   string // worktree root with symlinks resolved
}

var _ repositories.VCSRepository = (*VCSRepository)(nil)

// NewVCSRepository opens the Git repository containing path.
func NewVCSRepository(path string) (*VCSRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: opening repository at %s: %w", entities.ErrVCSQuery, path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no worktree: %w", entities.ErrVCSQuery, path, err)
	}

	root, err := filepath.EvalSymlinks(worktree.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("%w: resolving worktree root: %w", entities.ErrVCSQuery, err)
	}

	logger.Debugf("[git] Opened repository at %s", root)
	return &VCSRepository{gitDir: path, root: root}, nil
}

// NewVCSRepositoryFactory returns a factory opening go-git repositories.
func NewVCSRepositoryFactory() repositories.VCSRepositoryFactory {
	return func(root string) (repositories.VCSRepository, error) {
		repo, err := NewVCSRepository(root)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

func (it *VCSRepository) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(it.gitDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, queryError("opening repository", err)
	}
	return repo, nil
}

// ListTags returns every tag whose short name starts with prefix, sorted by name.
func (it *VCSRepository) ListTags(ctx context.Context, prefix string) ([]string, error) {
	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, queryError("listing tags", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := strings.TrimPrefix(ref.Name().String(), tagRefPrefix)
		if strings.HasPrefix(name, prefix) {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, queryError("listing tags", err)
	}

	sort.Strings(tags)
	return tags, nil
}

// ChangedPaths diffs the tree of fromTag (or of the first commit) against HEAD and keeps
// the files under path. Deleted and renamed files count when either side is under path.
func (it *VCSRepository) ChangedPaths(ctx context.Context, fromTag, path string) ([]string, error) {
	scope, err := it.relativeScope(path)
	if err != nil {
		return nil, err
	}

	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	head, err := headCommit(repo)
	if err != nil {
		return nil, err
	}

	// a package without release tag is diffed from the first commit of the history
	var from *object.Commit
	if fromTag != "" {
		from, err = resolveTag(repo, fromTag)
	} else {
		from, err = firstCommit(ctx, head)
	}
	if err != nil {
		return nil, err
	}
	fromTree, err := from.Tree()
	if err != nil {
		return nil, queryError("reading tree of "+describeFrom(fromTag), err)
	}
	headTree, err := head.Tree()
	if err != nil {
		return nil, queryError("reading tree of HEAD", err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, headTree, nil)
	if err != nil {
		return nil, queryError("computing diff", err)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, change := range changes {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name == "" || seen[name] || !inScope(scope, name) {
				continue
			}
			seen[name] = true
			paths = append(paths, name)
		}
	}

	sort.Strings(paths)
	logger.Debugf("[git] %d changed files under %q since %s", len(paths), scope, describeFrom(fromTag))
	return paths, nil
}

// FindCommit walks the history from HEAD and returns the first commit whose message
// contains phrase, or nil when there is none.
func (it *VCSRepository) FindCommit(ctx context.Context, phrase string) (*entities.Commit, error) {
	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil //nolint:nilnil // empty repository: no commit, no error
	}
	if err != nil {
		return nil, queryError("resolving HEAD", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, queryError("reading log", err)
	}

	var found *entities.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if strings.Contains(commit.Message, phrase) {
			found = &entities.Commit{Hash: commit.Hash.String(), Message: commit.Message}
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, queryError("reading log", err)
	}
	return found, nil
}

// Log returns commits reachable from HEAD and not from fromHash, newest first.
func (it *VCSRepository) Log(ctx context.Context, fromHash string) ([]entities.Commit, error) {
	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, queryError("resolving HEAD", err)
	}

	excluded := make(map[plumbing.Hash]bool)
	if fromHash != "" {
		if collectErr := collectAncestors(ctx, repo, plumbing.NewHash(fromHash), excluded); collectErr != nil {
			return nil, collectErr
		}
	}

	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, queryError("reading log", err)
	}

	var commits []entities.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !excluded[commit.Hash] {
			commits = append(commits, entities.Commit{Hash: commit.Hash.String(), Message: commit.Message})
		}
		return nil
	})
	if err != nil {
		return nil, queryError("reading log", err)
	}
	return commits, nil
}

// CommitAndTag stages and commits paths, then creates lightweight tags on the new
// commit (or on HEAD when nothing was committed).
func (it *VCSRepository) CommitAndTag(ctx context.Context, message string, paths, tags []string) error {
	repo, err := it.open()
	if err != nil {
		return err
	}

	target := plumbing.ZeroHash
	if len(paths) > 0 {
		target, err = it.commit(repo, message, paths)
		if err != nil {
			return err
		}
		logger.Infof("[git] Committed release %s", target.String()[:7])
	} else {
		head, headErr := repo.Head()
		if headErr != nil {
			return queryError("resolving HEAD", headErr)
		}
		target = head.Hash()
	}

	for _, tag := range tags {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if _, tagErr := repo.CreateTag(tag, target, nil); tagErr != nil {
			return queryError("creating tag "+tag, tagErr)
		}
		logger.Debugf("[git] Tagged %s", tag)
	}
	return nil
}

func (it *VCSRepository) commit(repo *gogit.Repository, message string, paths []string) (plumbing.Hash, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, queryError("opening worktree", err)
	}

	for _, path := range paths {
		rel, relErr := it.relativePath(path)
		if relErr != nil {
			return plumbing.ZeroHash, relErr
		}
		if _, addErr := worktree.Add(rel); addErr != nil {
			return plumbing.ZeroHash, queryError("staging "+rel, addErr)
		}
	}

	signature := authorSignature(repo)
	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return plumbing.ZeroHash, queryError("committing", err)
	}
	return hash, nil
}

// relativeScope converts a package directory into a slash-separated path relative to
// the worktree root. The root itself is "".
func (it *VCSRepository) relativeScope(path string) (string, error) {
	rel, err := it.relativePath(path)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	return rel, nil
}

func (it *VCSRepository) relativePath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", queryError("resolving "+path, err)
	}
	rel, err := filepath.Rel(it.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s is outside of the repository %s", entities.ErrVCSQuery, path, it.root)
	}
	return filepath.ToSlash(rel), nil
}

func inScope(scope, name string) bool {
	return scope == "" || name == scope || strings.HasPrefix(name, scope+"/")
}

func headCommit(repo *gogit.Repository) (*object.Commit, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, queryError("resolving HEAD", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, queryError("reading HEAD commit", err)
	}
	return commit, nil
}

// resolveTag peels lightweight and annotated tags down to their commit. The tag is
// looked up by reference name since "@" has a meaning in revision expressions.
func resolveTag(repo *gogit.Repository, tag string) (*object.Commit, error) {
	ref, err := repo.Tag(tag)
	if err != nil {
		return nil, queryError("resolving tag "+tag, err)
	}

	annotated, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, commitErr := annotated.Commit()
		if commitErr != nil {
			return nil, queryError("reading commit of tag "+tag, commitErr)
		}
		return commit, nil
	case !errors.Is(err, plumbing.ErrObjectNotFound):
		return nil, queryError("reading tag "+tag, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, queryError("reading commit of tag "+tag, err)
	}
	return commit, nil
}

// firstCommit returns the root commit reachable from head. With several roots (merged
// unrelated histories) the oldest one wins.
func firstCommit(ctx context.Context, head *object.Commit) (*object.Commit, error) {
	var root *object.Commit
	iter := object.NewCommitPreorderIter(head, nil, nil)
	err := iter.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if commit.NumParents() == 0 && (root == nil || commit.Committer.When.Before(root.Committer.When)) {
			root = commit
		}
		return nil
	})
	if err != nil {
		return nil, queryError("walking history", err)
	}
	if root == nil {
		return nil, queryError("walking history", errors.New("no root commit reachable from HEAD"))
	}
	return root, nil
}

func collectAncestors(
	ctx context.Context,
	repo *gogit.Repository,
	from plumbing.Hash,
	into map[plumbing.Hash]bool,
) error {
	commit, err := repo.CommitObject(from)
	if err != nil {
		return queryError("reading commit "+from.String(), err)
	}
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		into[c.Hash] = true
		return nil
	})
	if err != nil {
		return queryError("walking history", err)
	}
	return nil
}

// authorSignature takes user.name and user.email from the Git configuration.
func authorSignature(repo *gogit.Repository) *object.Signature {
	name, email := fallbackAuthor, fallbackEmail
	if cfg, err := repo.ConfigScoped(config.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	} else {
		logger.Warnf("[git] Failed to read Git configuration: %v (using %s)", err, fallbackAuthor)
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

func describeFrom(fromTag string) string {
	if fromTag == "" {
		return "the first commit"
	}
	return fromTag
}

func queryError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", entities.ErrVCSQuery, action, err)
}
