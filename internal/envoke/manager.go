// Package envoke implements the profile store and the command operations for
// the envoke CLI. Profiles are plain files in the profile directory; the
// active profile is whichever one the .env symlink points at. There is no
// metadata store: the filesystem is the database, and every call re-derives
// state from it.
package envoke

import (
	"path/filepath"
	"strings"

	"github.com/example/envoke/internal/envoke/config"
	"github.com/example/envoke/internal/envoke/domain"
	"github.com/example/envoke/internal/envoke/storage"
)

// profileSuffix is the extension every profile file carries on disk.
const profileSuffix = ".env"

// Manager owns the mapping from profile names to on-disk files and the
// active-link transitions. It holds no state beyond the configured paths.
type Manager struct {
	cfg config.Config
	fs  storage.Storage
}

// NewManager constructs a Manager over the provided configuration and
// storage capability.
func NewManager(cfg config.Config, fs storage.Storage) *Manager {
	return &Manager{cfg: cfg, fs: fs}
}

// IsInitialized reports whether the profile directory exists. Its absence is
// the single "uninitialized" signal for every operation.
func (m *Manager) IsInitialized() bool {
	return m.fs.Exists(m.cfg.Dir)
}

// ProfilePath returns the on-disk path for a profile name, appending the
// .env suffix only when the name does not already end with it. It is pure:
// no filesystem access and no name validation. Whether the name is a legal
// filename is the operating system's concern.
func (m *Manager) ProfilePath(name string) string {
	if !strings.HasSuffix(name, profileSuffix) {
		name += profileSuffix
	}
	return filepath.Join(m.cfg.Dir, name)
}

// Profiles lists the profile names found in the profile directory: regular
// files whose extension is exactly .env, reported by their stems. Order is
// whatever the filesystem enumerates; callers must not rely on it. A missing
// or unreadable directory is a read error, so callers distinguish "not
// initialized" by checking IsInitialized first.
func (m *Manager) Profiles() ([]string, error) {
	entries, err := m.fs.ReadDir(m.cfg.Dir)
	if err != nil {
		return nil, err
	}

	profiles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != profileSuffix {
			continue
		}
		profiles = append(profiles, stem(entry.Name()))
	}
	return profiles, nil
}

// Activate points the env link at the named profile.
//
// An existing symlink at the env path is always replaced; being a symlink is
// itself proof that envoke manages it. A regular file there is user-owned and
// is only replaced when force is set. The remove-then-relink sequence is not
// atomic: a concurrent reader during the window sees no active profile. That
// race is accepted for a single-user local CLI.
func (m *Manager) Activate(name string, force bool) error {
	profilePath := m.ProfilePath(name)
	if !m.fs.Exists(profilePath) {
		return &domain.ProfileNotFoundError{Profile: name}
	}

	envPath := m.cfg.EnvFile
	if m.fs.Exists(envPath) {
		if !force && !m.fs.IsSymlink(envPath) {
			return domain.ErrNonLinkedEnv
		}
		if err := m.fs.Remove(envPath); err != nil {
			return err
		}
	}

	return m.fs.Symlink(profilePath, envPath)
}

// DeactivateIfTargeting removes the env link when it is a symlink whose
// target stem matches the named profile's stem, reporting whether it did.
// Comparing stems rather than full paths keeps the match correct when the
// link was created from a different working directory.
func (m *Manager) DeactivateIfTargeting(name string) (bool, error) {
	envPath := m.cfg.EnvFile
	if !m.fs.Exists(envPath) || !m.fs.IsSymlink(envPath) {
		return false, nil
	}

	target, err := m.fs.ReadLink(envPath)
	if err != nil {
		return false, err
	}
	if stem(target) != stem(m.ProfilePath(name)) {
		return false, nil
	}

	if err := m.fs.Remove(envPath); err != nil {
		return false, err
	}
	return true, nil
}

// ActiveProfile returns the stem of the profile the env link points at.
func (m *Manager) ActiveProfile() (string, error) {
	envPath := m.cfg.EnvFile
	if !m.fs.Exists(envPath) {
		return "", domain.ErrNoActiveProfile
	}
	if !m.fs.IsSymlink(envPath) {
		return "", domain.ErrNonLinkedEnv
	}

	target, err := m.fs.ReadLink(envPath)
	if err != nil {
		return "", err
	}
	return stem(target), nil
}

// stem strips the directory and the final extension from a path.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
