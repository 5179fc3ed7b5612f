//go:build unit

package controllers_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/infrastructure/controllers"
	commanddoubles "github.com/rios0rios0/monobump/test/domain/commanddoubles"
	builders "github.com/rios0rios0/monobump/test/domain/entitybuilders"
)

// newCobraCommand mirrors the global flags the root command declares.
func newCobraCommand(t *testing.T, controller entities.Controller, root string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: controller.GetBind().Use}
	cmd.Flags().String("root", root, "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("workspace", "", "")
	cmd.Flags().Int("concurrency", 4, "")
	controller.AddFlags(cmd)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func TestBumpController(t *testing.T) {
	t.Parallel()

	t.Run("should pass the directive, packages and flags to the command", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		stub := &commanddoubles.StubBumpCommand{
			Results: []entities.BumpResult{{
				Package:    builders.NewPackageBuilder().WithName("ui").BuildPackage(),
				OldVersion: "1.0.0",
				NewVersion: "1.0.1",
				Reason:     entities.Specified(),
			}},
		}
		controller := controllers.NewBumpController(stub)
		cmd, out := newCobraCommand(t, controller, root)
		require.NoError(t, cmd.Flags().Set("dry-run", "true"))
		require.NoError(t, cmd.Flags().Set("tag", "true"))
		require.NoError(t, cmd.Flags().Set("concurrency", "2"))

		// when
		err := controller.Execute(cmd, []string{"patch", "ui", "core"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, entities.DirectivePatch, stub.LastOpts.Directive)
		assert.Equal(t, []string{"ui", "core"}, stub.LastOpts.Packages)
		assert.True(t, stub.LastOpts.DryRun)
		assert.Equal(t, root, stub.LastOpts.Root)
		assert.True(t, stub.LastOpts.Settings.Tag)
		assert.False(t, stub.LastOpts.Settings.Commit)
		assert.Equal(t, 2, stub.LastOpts.Settings.Concurrency)
		assert.Contains(t, out.String(), "dry run")
		assert.Contains(t, out.String(), "1.0.0 -> 1.0.1")
		assert.Contains(t, out.String(), "(specified)")
	})

	t.Run("should read settings from the config file under root", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(root, ".monobump.yaml"), []byte("commit: true\nchangelog: true\n"), 0o600,
		))
		stub := &commanddoubles.StubBumpCommand{}
		controller := controllers.NewBumpController(stub)
		cmd, _ := newCobraCommand(t, controller, root)
		require.NoError(t, cmd.Flags().Set("changelog", "false"))

		// when
		err := controller.Execute(cmd, []string{"minor"})

		// then
		require.NoError(t, err)
		assert.True(t, stub.LastOpts.Settings.Commit)
		assert.False(t, stub.LastOpts.Settings.Changelog)
		assert.Empty(t, stub.LastOpts.Packages)
	})

	t.Run("should reject an unknown directive before running the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubBumpCommand{}
		controller := controllers.NewBumpController(stub)
		cmd, _ := newCobraCommand(t, controller, t.TempDir())

		// when
		err := controller.Execute(cmd, []string{"mega"})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidDirective)
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should wrap command failures", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubBumpCommand{ExecuteErr: entities.ErrUnknownRequestedPackage}
		controller := controllers.NewBumpController(stub)
		cmd, _ := newCobraCommand(t, controller, t.TempDir())

		// when
		err := controller.Execute(cmd, []string{"patch", "ghost"})

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnknownRequestedPackage)
		assert.Contains(t, err.Error(), "bump failed")
	})
}

func TestChangedController(t *testing.T) {
	t.Parallel()

	t.Run("should print statuses and the packages that would be bumped", func(t *testing.T) {
		t.Parallel()

		// given
		core := builders.NewPackageBuilder().WithName("core").BuildPackage()
		app := builders.NewPackageBuilder().WithName("app").BuildPackage()
		tools := builders.NewPackageBuilder().WithName("tools").WithPrivate(true).BuildPackage()
		stub := &commanddoubles.StubChangedCommand{Report: &commands.ChangedReport{
			Packages: []entities.Package{core, app, tools},
			Statuses: []entities.ChangeStatus{
				{Package: core, Marker: "core@1.0.0", ChangedPaths: []string{"packages/core/index.js"}},
				{Package: app, Marker: "app@1.0.0"},
				{Package: tools},
			},
			Cascade: entities.CascadeResult{
				ToBump: entities.NewPackageSet("core", "app"),
				Reasons: map[string]entities.BumpReason{
					"core": entities.Changed(),
					"app":  entities.DependsOnChain([]string{"core"}),
				},
			},
		}}
		controller := controllers.NewChangedController(stub)
		cmd, out := newCobraCommand(t, controller, t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		output := out.String()
		assert.Contains(t, output, "core@1.0.0")
		assert.Contains(t, output, "changed (1 files)")
		assert.Contains(t, output, "never released")
		assert.Contains(t, output, "[private]")
		assert.Contains(t, output, "(depends on core)")
	})

	t.Run("should wrap command failures", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubChangedCommand{ExecuteErr: entities.ErrVCSQuery}
		controller := controllers.NewChangedController(stub)
		cmd, _ := newCobraCommand(t, controller, t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		assert.ErrorIs(t, err, entities.ErrVCSQuery)
	})
}

func TestLogController(t *testing.T) {
	t.Parallel()

	t.Run("should print the commits since the release commit", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLogCommand{Report: &commands.LogReport{
			Release: &entities.Commit{Hash: "1234567890", Message: "chore(release): publish"},
			Commits: []entities.Commit{{Hash: "abcdef0123", Message: "fix: spacing\n\nbody"}},
		}}
		controller := controllers.NewLogController(stub)
		cmd, out := newCobraCommand(t, controller, t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Commits since 1234567 chore(release): publish")
		assert.Contains(t, out.String(), "abcdef0 fix: spacing")
		assert.NotContains(t, out.String(), "body")
	})

	t.Run("should wrap command failures", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLogCommand{ExecuteErr: errors.New("boom")}
		controller := controllers.NewLogController(stub)
		cmd, _ := newCobraCommand(t, controller, t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log failed")
	})
}

func TestRenderBumpResults(t *testing.T) {
	t.Parallel()

	t.Run("should say so when nothing was released", func(t *testing.T) {
		t.Parallel()

		// when
		output := controllers.RenderBumpResults(nil, false)

		// then
		assert.Contains(t, output, "Released packages")
		assert.Contains(t, output, "nothing to release")
	})
}
