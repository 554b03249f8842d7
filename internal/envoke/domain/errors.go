package domain

import (
	"errors"
	"fmt"
)

// Exported error variables allow callers to use errors.Is() for error checking.
var (
	// ErrInitialized is returned by init when the profile directory already exists.
	ErrInitialized = errors.New("This directory is already initialized.")

	// ErrUninitialized is returned by every other operation when it does not.
	ErrUninitialized = errors.New("Directory has not been initialized - please run `envoke init`.")

	// ErrNoActiveProfile is returned by current when no .env is present.
	ErrNoActiveProfile = errors.New("No active profile - activate a profile with: `envoke switch <profile>`.")

	// ErrNonLinkedEnv is returned when .env exists but is not a symlink managed
	// by envoke. A regular .env is user-owned and is never replaced without --force.
	ErrNonLinkedEnv = errors.New("The current `.env` is not managed by envoke. Backup your changes and delete the `.env`, or run `envoke switch <profile> --force`.")
)

// ProfileNotFoundError reports an operation on a profile that has no file on disk.
type ProfileNotFoundError struct {
	Profile string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("Profile `%s` does not exist. Run `envoke create %s` to create the profile.", e.Profile, e.Profile)
}

// FileExistsError reports a create against a path that is already occupied.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("The file `%s` already exists.", e.Path)
}

// Filesystem operations for OpError.Op.
const (
	OpOpen     = "open"
	OpCreate   = "create"
	OpRemove   = "remove"
	OpWrite    = "write"
	OpMkdir    = "mkdir"
	OpReadDir  = "readdir"
	OpSymlink  = "symlink"
	OpReadLink = "readlink"
)

// OpError wraps a failed filesystem call with the operation kind and the
// offending path. Target is only set for symlink creation. The underlying
// OS error is preserved as the cause and reachable through Unwrap.
type OpError struct {
	Op     string
	Path   string
	Target string
	Err    error
}

func (e *OpError) Error() string {
	switch e.Op {
	case OpOpen:
		return fmt.Sprintf("Failed to open file `%s`.", e.Path)
	case OpCreate:
		return fmt.Sprintf("Failed to create file `%s`.", e.Path)
	case OpRemove:
		return fmt.Sprintf("Failed to remove file `%s`.", e.Path)
	case OpWrite:
		return fmt.Sprintf("Failed to write contents to file `%s`.", e.Path)
	case OpMkdir:
		return fmt.Sprintf("Failed to create directory `%s`.", e.Path)
	case OpReadDir:
		return fmt.Sprintf("Failed to read contents of directory `%s`.", e.Path)
	case OpSymlink:
		return fmt.Sprintf("Failed to link `%s` to `%s`.", e.Path, e.Target)
	case OpReadLink:
		return fmt.Sprintf("Failed to read the link at `%s`.", e.Path)
	default:
		return fmt.Sprintf("Filesystem operation %s failed on `%s`.", e.Op, e.Path)
	}
}

func (e *OpError) Unwrap() error {
	return e.Err
}
