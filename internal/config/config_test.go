//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/kittypreview/internal/geometry"
	"github.com/llehouerou/kittypreview/internal/kitty"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/tmp",
			expected: filepath.Join(home, "tmp"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/.cache/kittypreview/frames",
			expected: filepath.Join(home, ".cache", "kittypreview", "frames"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/dev/shm",
			expected: "/dev/shm",
		},
		{
			name:     "relative path unchanged",
			input:    "frames/out",
			expected: "frames/out",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// isolate points XDG_CONFIG_HOME and the working directory at empty temp
// dirs so the user's own config does not leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("could not create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
}

func TestGetConfigPaths(t *testing.T) {
	isolate(t)
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}

	expectedFirst := filepath.Join(xdg.ConfigHome, "kittypreview", "config.toml")
	if paths[0] != expectedFirst {
		t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
	}

	// Last path should be the local file
	if paths[1] != "kittypreview.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "kittypreview.toml")
	}
}

func TestLoad_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	mode, err := cfg.Mode()
	if err != nil || mode != kitty.ModeChunks {
		t.Errorf("Mode() = %v, %v, want chunks", mode, err)
	}
	if cfg.SweepAge() != 24*time.Hour {
		t.Errorf("SweepAge() = %v, want 24h", cfg.SweepAge())
	}
	if cfg.CellOverride() != (geometry.Size{}) {
		t.Errorf("CellOverride() = %v, want zero", cfg.CellOverride())
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	isolate(t)

	writeFile(t, "kittypreview.toml", `
transmission = "file"
temp_dir = "~/frames"
temp_prefix = "tty-graphics-protocol-test-"
quiet = 2
downscale = true
cell_width = 9
cell_height = 18
sweep_max_age_hours = 3
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	mode, _ := cfg.Mode()
	if mode != kitty.ModeTempFile {
		t.Errorf("Mode() = %v, want file", mode)
	}

	home, _ := os.UserHomeDir()
	expectedDir := filepath.Join(home, "frames")
	tf := cfg.TempFiles()
	if tf.Dir != expectedDir {
		t.Errorf("TempFiles().Dir = %q, want %q", tf.Dir, expectedDir)
	}
	if tf.Prefix != "tty-graphics-protocol-test-" {
		t.Errorf("TempFiles().Prefix = %q", tf.Prefix)
	}
	if cfg.Quiet != 2 {
		t.Errorf("Quiet = %d, want 2", cfg.Quiet)
	}
	if !cfg.Downscale {
		t.Error("Downscale = false, want true")
	}
	if got := cfg.CellOverride(); got != (geometry.Size{Width: 9, Height: 18}) {
		t.Errorf("CellOverride() = %v, want 9x18", got)
	}
	if cfg.SweepAge() != 3*time.Hour {
		t.Errorf("SweepAge() = %v, want 3h", cfg.SweepAge())
	}
}

func TestLoad_LaterFilesWin(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(xdg.ConfigHome, "kittypreview", "config.toml"), "quiet = 1\ntransmission = \"file\"\n")
	writeFile(t, "kittypreview.toml", "quiet = 2\n")
	explicit := filepath.Join(dir, "other.toml")
	writeFile(t, explicit, "transmission = \"chunks\"\n")

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Quiet != 2 {
		t.Errorf("Quiet = %d, want 2 from the local file", cfg.Quiet)
	}
	if cfg.Transmission != "chunks" {
		t.Errorf("Transmission = %q, want chunks from the explicit file", cfg.Transmission)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() expected error for missing explicit file, got nil")
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	isolate(t)

	writeFile(t, "kittypreview.toml", "invalid = [[[")

	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "unknown transmission",
			content: `transmission = "shm"`,
			want:    kitty.ErrInvalidMode,
		},
		{
			name:    "quiet too high",
			content: `quiet = 3`,
			want:    ErrInvalidQuiet,
		},
		{
			name:    "negative quiet",
			content: `quiet = -1`,
			want:    ErrInvalidQuiet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			writeFile(t, "kittypreview.toml", tt.content)

			_, err := Load("")
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCellOverride_Partial(t *testing.T) {
	cfg := Config{CellWidth: 9}
	if got := cfg.CellOverride(); got != (geometry.Size{}) {
		t.Errorf("CellOverride() = %v, want zero when height is unset", got)
	}
}
