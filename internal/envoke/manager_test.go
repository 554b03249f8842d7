package envoke

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"

	"github.com/example/envoke/internal/envoke/config"
	"github.com/example/envoke/internal/envoke/domain"
	"github.com/example/envoke/internal/envoke/storage"
)

func newMemManager() (*Manager, afero.Fs) {
	fs := afero.NewMemMapFs()
	cfg := config.Config{Dir: "/work/.envoke", EnvFile: "/work/.env"}
	return NewManager(cfg, storage.New(fs)), fs
}

// newOsManager returns a Manager rooted in a temp directory on the real
// filesystem, which is needed for symlink behavior.
func newOsManager(t *testing.T) (*Manager, config.Config) {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.Config{
		Dir:     filepath.Join(tmp, ".envoke"),
		EnvFile: filepath.Join(tmp, ".env"),
	}
	mgr := NewManager(cfg, storage.New(afero.NewOsFs()))
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		t.Fatalf("mkdir profile dir: %v", err)
	}
	return mgr, cfg
}

func writeProfile(t *testing.T, cfg config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Dir, name+".env")
	if err := os.WriteFile(path, []byte("KEY=value\n"), 0o644); err != nil {
		t.Fatalf("write profile %s: %v", name, err)
	}
	return path
}

func TestIsInitialized(t *testing.T) {
	mgr, fs := newMemManager()

	if mgr.IsInitialized() {
		t.Fatal("expected uninitialized before the directory exists")
	}
	if err := fs.MkdirAll("/work/.envoke", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if !mgr.IsInitialized() {
		t.Fatal("expected initialized after the directory exists")
	}
}

func TestProfilePathAppendsSuffix(t *testing.T) {
	mgr, _ := newMemManager()

	path := mgr.ProfilePath("dev")
	if filepath.Base(path) != "dev.env" {
		t.Fatalf("expected dev.env, got %s", filepath.Base(path))
	}
}

func TestProfilePathSuffixIdempotent(t *testing.T) {
	mgr, _ := newMemManager()

	if mgr.ProfilePath("prod") != mgr.ProfilePath("prod.env") {
		t.Fatalf("expected ProfilePath to be suffix-idempotent: %s vs %s",
			mgr.ProfilePath("prod"), mgr.ProfilePath("prod.env"))
	}
}

func TestProfilesFiltering(t *testing.T) {
	mgr, fs := newMemManager()

	files := []string{"dev.env", "prod.env", "README.md"}
	for _, name := range files {
		if err := afero.WriteFile(fs, "/work/.envoke/"+name, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := fs.MkdirAll("/work/.envoke/subdir", 0o755); err != nil {
		t.Fatalf("mkdir subdir: %v", err)
	}

	profiles, err := mgr.Profiles()
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	sort.Strings(profiles)
	if len(profiles) != 2 || profiles[0] != "dev" || profiles[1] != "prod" {
		t.Fatalf("expected [dev prod], got %v", profiles)
	}
}

func TestProfilesEmptyDirectory(t *testing.T) {
	mgr, fs := newMemManager()
	if err := fs.MkdirAll("/work/.envoke", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	profiles, err := mgr.Profiles()
	if err != nil {
		t.Fatalf("Profiles on empty directory: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles, got %v", profiles)
	}
}

func TestProfilesMissingDirectory(t *testing.T) {
	mgr, _ := newMemManager()

	_, err := mgr.Profiles()
	if err == nil {
		t.Fatal("expected error for a missing profile directory")
	}
	var opErr *domain.OpError
	if !errors.As(err, &opErr) || opErr.Op != domain.OpReadDir {
		t.Fatalf("expected a readdir error, got %v", err)
	}
}

func TestActivateMissingProfile(t *testing.T) {
	mgr, _ := newOsManager(t)

	err := mgr.Activate("ghost", false)
	var notFound *domain.ProfileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProfileNotFoundError, got %v", err)
	}
	if notFound.Profile != "ghost" {
		t.Fatalf("expected profile ghost, got %s", notFound.Profile)
	}
}

func TestActivateCreatesLink(t *testing.T) {
	mgr, cfg := newOsManager(t)
	profilePath := writeProfile(t, cfg, "dev")

	if err := mgr.Activate("dev", false); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	target, err := os.Readlink(cfg.EnvFile)
	if err != nil {
		t.Fatalf("readlink .env: %v", err)
	}
	if target != profilePath {
		t.Fatalf("expected link to %s, got %s", profilePath, target)
	}
}

func TestActivateReplacesExistingLink(t *testing.T) {
	mgr, cfg := newOsManager(t)
	writeProfile(t, cfg, "dev")
	writeProfile(t, cfg, "prod")

	if err := mgr.Activate("dev", false); err != nil {
		t.Fatalf("Activate dev: %v", err)
	}
	if err := mgr.Activate("prod", false); err != nil {
		t.Fatalf("Activate prod over existing link: %v", err)
	}

	active, err := mgr.ActiveProfile()
	if err != nil {
		t.Fatalf("ActiveProfile: %v", err)
	}
	if active != "prod" {
		t.Fatalf("expected prod active, got %s", active)
	}
}

func TestActivateRefusesForeignEnv(t *testing.T) {
	mgr, cfg := newOsManager(t)
	writeProfile(t, cfg, "dev")
	if err := os.WriteFile(cfg.EnvFile, []byte("hand edited\n"), 0o644); err != nil {
		t.Fatalf("write foreign .env: %v", err)
	}

	err := mgr.Activate("dev", false)
	if !errors.Is(err, domain.ErrNonLinkedEnv) {
		t.Fatalf("expected ErrNonLinkedEnv, got %v", err)
	}

	content, err := os.ReadFile(cfg.EnvFile)
	if err != nil {
		t.Fatalf("read .env: %v", err)
	}
	if string(content) != "hand edited\n" {
		t.Fatalf("foreign .env was modified: %q", content)
	}
}

func TestActivateForceReplacesForeignEnv(t *testing.T) {
	mgr, cfg := newOsManager(t)
	writeProfile(t, cfg, "dev")
	if err := os.WriteFile(cfg.EnvFile, []byte("hand edited\n"), 0o644); err != nil {
		t.Fatalf("write foreign .env: %v", err)
	}

	if err := mgr.Activate("dev", true); err != nil {
		t.Fatalf("Activate with force: %v", err)
	}

	info, err := os.Lstat(cfg.EnvFile)
	if err != nil {
		t.Fatalf("lstat .env: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatal("expected .env to be a symlink after forced activation")
	}
}

func TestDeactivateIfTargetingMatch(t *testing.T) {
	mgr, cfg := newOsManager(t)
	writeProfile(t, cfg, "dev")
	if err := mgr.Activate("dev", false); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	unlinked, err := mgr.DeactivateIfTargeting("dev")
	if err != nil {
		t.Fatalf("DeactivateIfTargeting: %v", err)
	}
	if !unlinked {
		t.Fatal("expected the link to be removed")
	}
	if _, err := os.Lstat(cfg.EnvFile); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected .env to be gone, got %v", err)
	}
}

func TestDeactivateIfTargetingOther(t *testing.T) {
	mgr, cfg := newOsManager(t)
	writeProfile(t, cfg, "dev")
	writeProfile(t, cfg, "prod")
	if err := mgr.Activate("dev", false); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	unlinked, err := mgr.DeactivateIfTargeting("prod")
	if err != nil {
		t.Fatalf("DeactivateIfTargeting: %v", err)
	}
	if unlinked {
		t.Fatal("expected the link to be left alone")
	}

	active, err := mgr.ActiveProfile()
	if err != nil {
		t.Fatalf("ActiveProfile: %v", err)
	}
	if active != "dev" {
		t.Fatalf("expected dev still active, got %s", active)
	}
}

func TestDeactivateIfTargetingNoLink(t *testing.T) {
	mgr, _ := newOsManager(t)

	unlinked, err := mgr.DeactivateIfTargeting("dev")
	if err != nil {
		t.Fatalf("DeactivateIfTargeting: %v", err)
	}
	if unlinked {
		t.Fatal("expected no-op without a link")
	}
}

func TestActiveProfileNoLink(t *testing.T) {
	mgr, _ := newOsManager(t)

	_, err := mgr.ActiveProfile()
	if !errors.Is(err, domain.ErrNoActiveProfile) {
		t.Fatalf("expected ErrNoActiveProfile, got %v", err)
	}
}

func TestActiveProfileForeignEnv(t *testing.T) {
	mgr, cfg := newOsManager(t)
	if err := os.WriteFile(cfg.EnvFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("write foreign .env: %v", err)
	}

	_, err := mgr.ActiveProfile()
	if !errors.Is(err, domain.ErrNonLinkedEnv) {
		t.Fatalf("expected ErrNonLinkedEnv, got %v", err)
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		".envoke/dev.env":         "dev",
		"/abs/path/prod.env":      "prod",
		"staging.env":             "staging",
		".envoke/archive.tar.env": "archive.tar",
	}
	for path, want := range cases {
		if got := stem(path); got != want {
			t.Errorf("stem(%q) = %q, want %q", path, got, want)
		}
	}
}
