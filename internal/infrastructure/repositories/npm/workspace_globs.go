package npm

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

const nodeModulesDir = "node_modules"

// ExpandPackageGlobs resolves workspace globs (relative to root, "!" negates) into
// packages. Discovery order follows the patterns, then lexical order within a pattern.
func ExpandPackageGlobs(
	root string,
	patterns []string,
	manifests repositories.ManifestRepository,
) ([]entities.Package, error) {
	var includes, excludes []string
	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if negated, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, cleanPattern(negated))
			continue
		}
		includes = append(includes, cleanPattern(pattern))
	}

	fsys := os.DirFS(root)
	seenDirs := make(map[string]bool)
	seenNames := make(map[string]string)
	var packages []entities.Package

	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, path.Join(pattern, manifestFileName))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)

		for _, match := range matches {
			dir := path.Dir(match)
			if seenDirs[dir] || dir == "." || isInNodeModules(dir) {
				continue
			}
			excluded, err := matchesAny(excludes, dir)
			if err != nil {
				return nil, err
			}
			if excluded {
				continue
			}
			seenDirs[dir] = true

			pkgDir := filepath.Join(root, filepath.FromSlash(dir))
			manifest, err := manifests.Read(pkgDir)
			if err != nil {
				return nil, fmt.Errorf("workspace member %s: %w", dir, err)
			}
			if manifest.Name == "" {
				logger.Warnf("[npm] Skipping %s: package.json has no name", dir)
				continue
			}
			if other, dup := seenNames[manifest.Name]; dup {
				return nil, fmt.Errorf("package name %q is used by both %s and %s", manifest.Name, other, dir)
			}
			seenNames[manifest.Name] = dir

			packages = append(packages, entities.Package{
				Name:    manifest.Name,
				Version: manifest.Version,
				Path:    pkgDir,
				Private: manifest.Private,
			})
		}
	}

	return packages, nil
}

func cleanPattern(pattern string) string {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	return strings.TrimSuffix(path.Clean(pattern), "/")
}

func matchesAny(patterns []string, dir string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, dir)
		if err != nil {
			return false, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func isInNodeModules(dir string) bool {
	for _, segment := range strings.Split(dir, "/") {
		if segment == nodeModulesDir {
			return true
		}
	}
	return false
}
