//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/monobump/internal/domain/entities"
)

func TestReleaseTagName(t *testing.T) {
	t.Parallel()

	t.Run("should join the package name and version with an at sign", func(t *testing.T) {
		t.Parallel()

		// when
		tag := entities.ReleaseTagName("@org/ui", "1.2.0-rc1")

		// then
		assert.Equal(t, "@org/ui@1.2.0-rc1", tag)
	})
}

func TestLatestReleaseTag(t *testing.T) {
	t.Parallel()

	t.Run("should pick the highest version by semver ordering", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"ui@1.9.0", "ui@1.10.0", "ui@1.10.0-rc1", "ui@1.2.3"}

		// when
		tag, found := entities.LatestReleaseTag("ui", tags)

		// then
		assert.True(t, found)
		assert.Equal(t, "ui@1.10.0", tag)
	})

	t.Run("should not confuse packages sharing a name prefix", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"ui-kit@3.0.0", "ui@1.0.0"}

		// when
		tag, found := entities.LatestReleaseTag("ui", tags)

		// then
		assert.True(t, found)
		assert.Equal(t, "ui@1.0.0", tag)
	})

	t.Run("should handle scoped package names", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"@org/ui@0.1.0", "@org/ui@0.2.0-a1", "@org/core@5.0.0"}

		// when
		tag, found := entities.LatestReleaseTag("@org/ui", tags)

		// then
		assert.True(t, found)
		assert.Equal(t, "@org/ui@0.2.0-a1", tag)
	})

	t.Run("should skip tags that are not full versions", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"ui@latest", "ui@2", "ui@2.1", "ui@nightly-1"}

		// when
		_, found := entities.LatestReleaseTag("ui", tags)

		// then
		assert.False(t, found)
	})

	t.Run("should rank prerelease numbers numerically", func(t *testing.T) {
		t.Parallel()

		// given
		cases := []struct {
			tags     []string
			expected string
		}{
			{[]string{"pkg@0.8.0-a9", "pkg@0.8.0-a10"}, "pkg@0.8.0-a10"},
			{[]string{"pkg@2.0.0-rc10", "pkg@2.0.0-rc2"}, "pkg@2.0.0-rc10"},
			{[]string{"pkg@2.0.0-b11", "pkg@2.0.0-rc2", "pkg@2.0.0-a30"}, "pkg@2.0.0-rc2"},
		}

		for _, tc := range cases {
			// when
			tag, found := entities.LatestReleaseTag("pkg", tc.tags)

			// then
			assert.True(t, found)
			assert.Equal(t, tc.expected, tag)
		}
	})

	t.Run("should rank a stable release above its prereleases", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"pkg@1.0.0-rc12", "pkg@1.0.0", "pkg@1.0.0-b3"}

		// when
		tag, found := entities.LatestReleaseTag("pkg", tags)

		// then
		assert.True(t, found)
		assert.Equal(t, "pkg@1.0.0", tag)
	})

	t.Run("should ignore tags whose version carries a v prefix", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"ui@v2.0.0", "ui@1.0.0"}

		// when
		tag, found := entities.LatestReleaseTag("ui", tags)

		// then
		assert.True(t, found)
		assert.Equal(t, "ui@1.0.0", tag)
	})

	t.Run("should not accept a v prefixed tag as the only release", func(t *testing.T) {
		t.Parallel()

		// when
		_, found := entities.LatestReleaseTag("pkg", []string{"pkg@v1.0.0"})

		// then
		assert.False(t, found)
	})

	t.Run("should report absence when there are no tags", func(t *testing.T) {
		t.Parallel()

		// when
		tag, found := entities.LatestReleaseTag("ui", nil)

		// then
		assert.False(t, found)
		assert.Empty(t, tag)
	})
}
