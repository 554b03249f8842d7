package envoke

import (
	"fmt"

	"github.com/example/envoke/internal/envoke/config"
	"github.com/example/envoke/internal/envoke/domain"
	"github.com/example/envoke/internal/envoke/storage"
)

// profileHeader opens every created profile file; the profile name follows it.
const profileHeader = "# ------------------------------------------------------------------------------\n# Profile: "

// Service composes Manager calls into the user-facing operations. Each
// operation checks its initialization precondition, performs one transition,
// and returns; failures propagate unchanged to the caller.
type Service struct {
	cfg config.Config
	mgr *Manager
	fs  storage.Storage
}

// NewService builds the operation layer over the provided configuration and
// storage capability.
func NewService(cfg config.Config, fs storage.Storage) *Service {
	return &Service{cfg: cfg, mgr: NewManager(cfg, fs), fs: fs}
}

// Manager exposes the underlying profile store.
func (s *Service) Manager() *Manager {
	return s.mgr
}

// Init creates the profile directory. It runs once; a second init fails.
func (s *Service) Init() error {
	if s.mgr.IsInitialized() {
		return domain.ErrInitialized
	}
	return s.fs.MkdirAll(s.cfg.Dir)
}

// Create writes a new profile file containing the header comment and returns
// its path. An existing file is never overwritten.
func (s *Service) Create(name string) (string, error) {
	if !s.mgr.IsInitialized() {
		return "", domain.ErrUninitialized
	}

	path := s.mgr.ProfilePath(name)
	if s.fs.Exists(path) {
		return "", &domain.FileExistsError{Path: path}
	}

	file, err := s.fs.CreateFile(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%s%s\n", profileHeader, name); err != nil {
		return "", &domain.OpError{Op: domain.OpWrite, Path: path, Err: err}
	}
	return path, nil
}

// Switch activates the named profile. force permits replacing a regular,
// user-owned .env file.
func (s *Service) Switch(name string, force bool) error {
	if !s.mgr.IsInitialized() {
		return domain.ErrUninitialized
	}
	return s.mgr.Activate(name, force)
}

// Remove deletes the profile file, unlinking .env first when it targets this
// profile. The returned bool reports whether the link was removed. Removal is
// irreversible.
func (s *Service) Remove(name string) (bool, error) {
	if !s.mgr.IsInitialized() {
		return false, domain.ErrUninitialized
	}

	path := s.mgr.ProfilePath(name)
	if !s.fs.Exists(path) {
		return false, &domain.ProfileNotFoundError{Profile: name}
	}

	unlinked, err := s.mgr.DeactivateIfTargeting(name)
	if err != nil {
		return unlinked, err
	}

	if err := s.fs.Remove(path); err != nil {
		return unlinked, err
	}
	return unlinked, nil
}

// List returns the stored profile names.
func (s *Service) List() ([]string, error) {
	if !s.mgr.IsInitialized() {
		return nil, domain.ErrUninitialized
	}
	return s.mgr.Profiles()
}

// Current returns the active profile's name.
func (s *Service) Current() (string, error) {
	if !s.mgr.IsInitialized() {
		return "", domain.ErrUninitialized
	}
	return s.mgr.ActiveProfile()
}
