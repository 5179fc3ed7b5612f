package npm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	"github.com/rios0rios0/monobump/internal/domain/repositories"
)

const (
	manifestFileName = "package.json"
	versionKey       = "version"
)

// ManifestRepository reads and rewrites package.json files.
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates a new package.json manifest repository.
func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

// ManifestPath returns the package.json path of a package directory.
func (it *ManifestRepository) ManifestPath(packageDir string) string {
	return filepath.Join(packageDir, manifestFileName)
}

// Read parses the package.json of the package directory.
func (it *ManifestRepository) Read(packageDir string) (*entities.Manifest, error) {
	path := it.ManifestPath(packageDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrManifestRead, err)
	}

	var manifest entities.Manifest
	if unmarshalErr := json.Unmarshal(data, &manifest); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", entities.ErrManifestRead, path, unmarshalErr)
	}
	return &manifest, nil
}

// WriteVersion replaces the bytes of the top-level "version" value and leaves the rest
// of the file untouched.
func (it *ManifestRepository) WriteVersion(packageDir, version string) error {
	path := it.ManifestPath(packageDir)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrManifestWrite, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrManifestWrite, err)
	}

	updated, err := ReplaceTopLevelString(data, versionKey, version)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrManifestWrite, path, err)
	}

	if writeErr := os.WriteFile(path, updated, info.Mode().Perm()); writeErr != nil {
		return fmt.Errorf("%w: %w", entities.ErrManifestWrite, writeErr)
	}
	logger.Debugf("[npm] Wrote version %s to %s", version, path)
	return nil
}

// ReplaceTopLevelString swaps the string value of a top-level key in a JSON object.
// Nested keys with the same name are not touched.
func ReplaceTopLevelString(data []byte, key, value string) ([]byte, error) {
	start, end, err := locateTopLevelValue(data, key)
	if err != nil {
		return nil, err
	}
	if data[start] != '"' {
		return nil, fmt.Errorf("%q is not a string", key)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	result := make([]byte, 0, len(data)-(end-start)+len(encoded))
	result = append(result, data[:start]...)
	result = append(result, encoded...)
	result = append(result, data[end:]...)
	return result, nil
}

// locateTopLevelValue returns the byte range of the value stored under key in the
// top-level JSON object.
func locateTopLevelValue(data []byte, key string) (int, int, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return 0, 0, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return 0, 0, errors.New("manifest is not a JSON object")
	}

	for decoder.More() {
		keyToken, keyErr := decoder.Token()
		if keyErr != nil {
			return 0, 0, keyErr
		}
		name, _ := keyToken.(string)
		valueStart := skipToValue(data, int(decoder.InputOffset()))

		var raw json.RawMessage
		if decodeErr := decoder.Decode(&raw); decodeErr != nil {
			return 0, 0, decodeErr
		}
		if name == key {
			return valueStart, int(decoder.InputOffset()), nil
		}
	}

	return 0, 0, fmt.Errorf("no top-level %q field", key)
}

// skipToValue moves past whitespace and the ':' separating a key from its value.
func skipToValue(data []byte, offset int) int {
	for offset < len(data) {
		switch data[offset] {
		case ' ', '\t', '\n', '\r', ':':
			offset++
		default:
			return offset
		}
	}
	return offset
}
