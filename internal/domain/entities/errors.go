package entities

import "errors"

var (
	// ErrInvalidVersionFormat is returned when a version string does not match
	// MAJOR.MINOR.PATCH or MAJOR.MINOR.PATCH-{a|b|rc}N.
	ErrInvalidVersionFormat = errors.New("invalid version format")

	// ErrInvalidDirective is returned for an unknown bump directive name.
	ErrInvalidDirective = errors.New("invalid bump directive")

	// ErrUnknownRequestedPackage is returned when a requested package is not in the workspace.
	ErrUnknownRequestedPackage = errors.New("unknown requested package")

	// ErrVCSQuery is returned when a version-control query could not be executed.
	// It is never used to signal an empty answer.
	ErrVCSQuery = errors.New("version control query failed")

	// ErrManifestRead is returned when a package manifest cannot be read or parsed.
	ErrManifestRead = errors.New("failed to read manifest")

	// ErrManifestWrite is returned when a package manifest cannot be rewritten.
	ErrManifestWrite = errors.New("failed to write manifest")

	// ErrNoWorkspace is returned when no supported workspace layout is found.
	ErrNoWorkspace = errors.New("no supported workspace found")
)
