//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
	infraRepos "github.com/rios0rios0/monobump/internal/infrastructure/repositories"
	builders "github.com/rios0rios0/monobump/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/monobump/test/infrastructure/repositorydoubles"
)

const workspaceRoot = "/workspace"

// workspaceFixture wires the commands to in-memory doubles.
type workspaceFixture struct {
	packages  []entities.Package
	manifests *doubles.SpyManifestRepository
	vcs       *doubles.SpyVCSRepository
	loader    *commands.WorkspaceLoader
	detector  *commands.ChangeDetector
}

func newWorkspaceFixture(packages []entities.Package, deps map[string][]string) *workspaceFixture {
	manifests := &doubles.SpyManifestRepository{Manifests: map[string]*entities.Manifest{}}
	for _, pkg := range packages {
		builder := builders.NewManifestBuilder().
			WithName(pkg.Name).
			WithVersion(pkg.Version).
			WithPrivate(pkg.Private)
		for _, dep := range deps[pkg.Name] {
			builder.WithWorkspaceDependency(dep)
		}
		manifests.Manifests[pkg.Path] = builder.BuildManifest()
	}

	registry := infraRepos.NewWorkspaceRegistry()
	registry.Register(&doubles.StubWorkspaceRepository{
		WorkspaceName: "stub",
		DetectResult:  true,
		Packages:      packages,
	})

	return &workspaceFixture{
		packages:  packages,
		manifests: manifests,
		vcs:       &doubles.SpyVCSRepository{ChangedPathsByDir: map[string][]string{}},
		loader:    commands.NewWorkspaceLoader(registry, manifests),
		detector:  commands.NewChangeDetector(),
	}
}

// markChanged reports a modified file for each named package.
func (f *workspaceFixture) markChanged(names ...string) {
	for _, name := range names {
		pkg, _ := entities.FindPackage(f.packages, name)
		f.vcs.ChangedPathsByDir[pkg.Path] = []string{filepath.Join(pkg.Path, "index.js")}
	}
}

func (f *workspaceFixture) bumpCommand() *commands.BumpCommand {
	return commands.NewBumpCommand(f.loader, f.detector, f.manifests, f.vcs.Factory())
}

func pkgAt(dir, name, version string) entities.Package {
	return builders.NewPackageBuilder().
		WithName(name).
		WithVersion(version).
		WithPath(filepath.Join(dir, name)).
		BuildPackage()
}

func TestBumpCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should bump changed packages and their dependents", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture(
			[]entities.Package{
				pkgAt(workspaceRoot, "pkg-a", "1.0.0"),
				pkgAt(workspaceRoot, "pkg-b", "1.0.0"),
				pkgAt(workspaceRoot, "pkg-c", "2.0.0"),
			},
			map[string][]string{"pkg-b": {"pkg-a"}},
		)
		fixture.markChanged("pkg-a")

		// when
		results, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
		})

		// then
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "1.0.1", results[0].NewVersion)
		assert.Equal(t, entities.Changed(), results[0].Reason)
		assert.Equal(t, "1.0.1", results[1].NewVersion)
		assert.Equal(t, entities.DependsOnChain([]string{"pkg-a"}), results[1].Reason)
		assert.Equal(t, map[string]string{
			filepath.Join(workspaceRoot, "pkg-a"): "1.0.1",
			filepath.Join(workspaceRoot, "pkg-b"): "1.0.1",
		}, fixture.manifests.WrittenVersions)
		assert.Empty(t, fixture.vcs.CommitAndTagCalls)
	})

	t.Run("should not write anything on a dry run", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture(
			[]entities.Package{pkgAt(workspaceRoot, "pkg-a", "0.7.0")},
			nil,
		)
		fixture.markChanged("pkg-a")

		// when
		results, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectiveAlpha,
			DryRun:    true,
			Settings:  &entities.Settings{Concurrency: 1, Commit: true, Tag: true},
		})

		// then
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "0.8.0-a1", results[0].NewVersion)
		assert.Empty(t, fixture.manifests.WrittenVersions)
		assert.Empty(t, fixture.vcs.CommitAndTagCalls)
	})

	t.Run("should bump requested packages with their changed dependencies", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture(
			[]entities.Package{
				pkgAt(workspaceRoot, "pkg-base", "1.2.0"),
				pkgAt(workspaceRoot, "pkg-util", "3.0.0"),
				pkgAt(workspaceRoot, "pkg-dependent", "0.1.0"),
			},
			map[string][]string{"pkg-dependent": {"pkg-base", "pkg-util"}},
		)
		fixture.markChanged("pkg-base")

		// when
		results, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectiveMinor,
			Packages:  []string{"pkg-dependent"},
		})

		// then
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "pkg-base", results[0].Package.Name)
		assert.Equal(t, entities.DependencyOf("pkg-dependent"), results[0].Reason)
		assert.Equal(t, "1.3.0", results[0].NewVersion)
		assert.Equal(t, "pkg-dependent", results[1].Package.Name)
		assert.Equal(t, entities.Specified(), results[1].Reason)
		assert.Equal(t, "0.2.0", results[1].NewVersion)
	})

	t.Run("should fail on an unknown package before querying version control", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture([]entities.Package{pkgAt(workspaceRoot, "pkg-a", "1.0.0")}, nil)

		// when
		_, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
			Packages:  []string{"pkg-missing"},
		})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnknownRequestedPackage)
		assert.Empty(t, fixture.vcs.ListedPrefixes)
		assert.Empty(t, fixture.vcs.DiffCalls)
	})

	t.Run("should propagate version control failures instead of treating them as unreleased", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture([]entities.Package{pkgAt(workspaceRoot, "pkg-a", "1.0.0")}, nil)
		fixture.vcs.ListTagsErr = fmt.Errorf("%w: repository locked", entities.ErrVCSQuery)

		// when
		_, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
		})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrVCSQuery)
		assert.Empty(t, fixture.vcs.DiffCalls)
		assert.Empty(t, fixture.manifests.WrittenVersions)
	})

	t.Run("should write nothing when any version is invalid", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture(
			[]entities.Package{
				pkgAt(workspaceRoot, "pkg-a", "1.0.0"),
				pkgAt(workspaceRoot, "pkg-b", "1.0.0-beta.1"),
			},
			nil,
		)
		fixture.markChanged("pkg-a", "pkg-b")

		// when
		_, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
		})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidVersionFormat)
		assert.Empty(t, fixture.manifests.WrittenVersions)
	})

	t.Run("should keep earlier writes when a later manifest write fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture(
			[]entities.Package{
				pkgAt(workspaceRoot, "pkg-a", "1.0.0"),
				pkgAt(workspaceRoot, "pkg-b", "1.0.0"),
			},
			nil,
		)
		fixture.markChanged("pkg-a", "pkg-b")
		fixture.manifests.WriteErrs = map[string]error{
			filepath.Join(workspaceRoot, "pkg-b"): fmt.Errorf("%w: disk full", entities.ErrManifestWrite),
		}

		// when
		results, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
			Settings:  &entities.Settings{Concurrency: 2, Tag: true},
		})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrManifestWrite)
		assert.Len(t, results, 2)
		assert.Equal(t, []string{filepath.Join(workspaceRoot, "pkg-a")}, fixture.manifests.WriteOrder)
		assert.Empty(t, fixture.vcs.CommitAndTagCalls)
	})

	t.Run("should commit the manifests and tag every release", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture(
			[]entities.Package{
				pkgAt(workspaceRoot, "@org/core", "1.0.0"),
				pkgAt(workspaceRoot, "@org/ui", "2.0.0"),
			},
			map[string][]string{"@org/ui": {"@org/core"}},
		)
		fixture.markChanged("@org/core")
		settings := entities.DefaultSettings()
		settings.Commit = true
		settings.Tag = true

		// when
		_, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectiveMajor,
			Settings:  settings,
		})

		// then
		require.NoError(t, err)
		require.Len(t, fixture.vcs.CommitAndTagCalls, 1)
		call := fixture.vcs.CommitAndTagCalls[0]
		assert.Equal(t, []string{"@org/core@2.0.0", "@org/ui@3.0.0"}, call.Tags)
		assert.Equal(t, []string{
			filepath.Join(workspaceRoot, "@org/core", "package.json"),
			filepath.Join(workspaceRoot, "@org/ui", "package.json"),
		}, call.Paths)
		assert.Equal(t, "chore(release): publish\n\n - @org/core@2.0.0\n - @org/ui@3.0.0\n", call.Message)
	})

	t.Run("should tag without committing when only tagging is enabled", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture([]entities.Package{pkgAt(workspaceRoot, "pkg-a", "1.0.0")}, nil)
		fixture.markChanged("pkg-a")
		settings := entities.DefaultSettings()
		settings.Tag = true

		// when
		_, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
			Settings:  settings,
		})

		// then
		require.NoError(t, err)
		require.Len(t, fixture.vcs.CommitAndTagCalls, 1)
		assert.Nil(t, fixture.vcs.CommitAndTagCalls[0].Paths)
		assert.Equal(t, []string{"pkg-a@1.0.1"}, fixture.vcs.CommitAndTagCalls[0].Tags)
	})

	t.Run("should return the tagging failure after the manifests were written", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture([]entities.Package{pkgAt(workspaceRoot, "pkg-a", "1.0.0")}, nil)
		fixture.markChanged("pkg-a")
		fixture.vcs.CommitAndTagErr = errors.New("tag already exists")
		settings := entities.DefaultSettings()
		settings.Tag = true

		// when
		_, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
			Settings:  settings,
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tag already exists")
		assert.Equal(t, "1.0.1", fixture.manifests.WrittenVersions[filepath.Join(workspaceRoot, "pkg-a")])
	})

	t.Run("should add a release section to existing changelogs", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		withLog := pkgAt(root, "pkg-a", "1.0.0")
		withoutLog := pkgAt(root, "pkg-b", "1.0.0")
		require.NoError(t, os.MkdirAll(withLog.Path, 0o755))
		changelogPath := filepath.Join(withLog.Path, "CHANGELOG.md")
		require.NoError(t, os.WriteFile(changelogPath, []byte("# Changelog\n\n## [Unreleased]\n"), 0o600))

		fixture := newWorkspaceFixture([]entities.Package{withLog, withoutLog}, nil)
		fixture.markChanged("pkg-a", "pkg-b")
		settings := entities.DefaultSettings()
		settings.Changelog = true
		settings.Commit = true
		command := fixture.bumpCommand().WithClock(func() time.Time {
			return time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
		})

		// when
		_, err := command.Execute(context.Background(), commands.BumpOptions{
			Root:      root,
			Directive: entities.DirectiveMinor,
			Settings:  settings,
		})

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(changelogPath)
		require.NoError(t, readErr)
		assert.Equal(t,
			"# Changelog\n\n## [Unreleased]\n\n## [1.1.0] - 2026-10-17\n\n### Changed\n\n- released `1.1.0` (changed)\n",
			string(content),
		)
		assert.NoFileExists(t, filepath.Join(withoutLog.Path, "CHANGELOG.md"))
		require.Len(t, fixture.vcs.CommitAndTagCalls, 1)
		assert.Contains(t, fixture.vcs.CommitAndTagCalls[0].Paths, changelogPath)
	})

	t.Run("should do nothing when no package changed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newWorkspaceFixture([]entities.Package{pkgAt(workspaceRoot, "pkg-a", "1.0.0")}, nil)
		fixture.vcs.Tags = []string{"pkg-a@1.0.0"}

		// when
		results, err := fixture.bumpCommand().Execute(context.Background(), commands.BumpOptions{
			Root:      workspaceRoot,
			Directive: entities.DirectivePatch,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Equal(t, []doubles.DiffCall{
			{FromTag: "pkg-a@1.0.0", Path: filepath.Join(workspaceRoot, "pkg-a")},
		}, fixture.vcs.DiffCalls)
	})
}
