// Package storage provides the narrow filesystem capability that the rest of
// envoke runs on. It carries no policy: every method is a single attempt
// against the injected afero filesystem, and every failure is wrapped into
// the matching domain error kind at the point of the call.
package storage

import (
	"os"

	"github.com/spf13/afero"

	"github.com/example/envoke/internal/envoke/domain"
)

// Storage abstracts the filesystem operations envoke needs. Injecting it lets
// tests substitute an in-memory or temp-directory filesystem without touching
// real paths.
type Storage interface {
	// Exists reports whether the path resolves to anything on disk.
	Exists(path string) bool

	// IsSymlink reports whether the path is a symbolic link. It is false for
	// non-existent paths and for regular files and directories.
	IsSymlink(path string) bool

	// MkdirAll creates the directory along with any missing ancestors.
	MkdirAll(path string) error

	// CreateFile creates a new file, failing if the path already exists.
	CreateFile(path string) (afero.File, error)

	// OpenFile opens a file with the provided flags and permissions.
	OpenFile(path string, flag int, perm os.FileMode) (afero.File, error)

	// ReadDir lists the directory, failing if it is missing or unreadable.
	ReadDir(path string) ([]os.FileInfo, error)

	// Symlink creates a symbolic link at link pointing to target, failing if
	// link already exists.
	Symlink(target, link string) error

	// ReadLink returns the stored target of the symlink at link.
	ReadLink(link string) (string, error)

	// Remove deletes a file or a symlink. It is not recursive and does not
	// remove directories.
	Remove(path string) error
}

// New wraps an afero filesystem in the Storage capability. Symlink operations
// require a backend that supports them (afero.OsFs does); backends without
// symlink support report every path as a non-symlink and fail link creation.
func New(fs afero.Fs) Storage {
	return &aferoStorage{fs: fs}
}

type aferoStorage struct {
	fs afero.Fs
}

func (s *aferoStorage) Exists(path string) bool {
	exists, err := afero.Exists(s.fs, path)
	return err == nil && exists
}

func (s *aferoStorage) IsSymlink(path string) bool {
	lstater, ok := s.fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, lstatCalled, err := lstater.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

func (s *aferoStorage) MkdirAll(path string) error {
	if err := s.fs.MkdirAll(path, 0o755); err != nil {
		return &domain.OpError{Op: domain.OpMkdir, Path: path, Err: err}
	}
	return nil
}

func (s *aferoStorage) CreateFile(path string) (afero.File, error) {
	file, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, &domain.OpError{Op: domain.OpCreate, Path: path, Err: err}
	}
	return file, nil
}

func (s *aferoStorage) OpenFile(path string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := s.fs.OpenFile(path, flag, perm)
	if err != nil {
		return nil, &domain.OpError{Op: domain.OpOpen, Path: path, Err: err}
	}
	return file, nil
}

func (s *aferoStorage) ReadDir(path string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return nil, &domain.OpError{Op: domain.OpReadDir, Path: path, Err: err}
	}
	return entries, nil
}

func (s *aferoStorage) Symlink(target, link string) error {
	linker, ok := s.fs.(afero.Linker)
	if !ok {
		return &domain.OpError{Op: domain.OpSymlink, Path: link, Target: target, Err: afero.ErrNoSymlink}
	}
	if err := linker.SymlinkIfPossible(target, link); err != nil {
		return &domain.OpError{Op: domain.OpSymlink, Path: link, Target: target, Err: err}
	}
	return nil
}

func (s *aferoStorage) ReadLink(link string) (string, error) {
	reader, ok := s.fs.(afero.LinkReader)
	if !ok {
		return "", &domain.OpError{Op: domain.OpReadLink, Path: link, Err: afero.ErrNoReadlink}
	}
	target, err := reader.ReadlinkIfPossible(link)
	if err != nil {
		return "", &domain.OpError{Op: domain.OpReadLink, Path: link, Err: err}
	}
	return target, nil
}

func (s *aferoStorage) Remove(path string) error {
	if err := s.fs.Remove(path); err != nil {
		return &domain.OpError{Op: domain.OpRemove, Path: path, Err: err}
	}
	return nil
}
