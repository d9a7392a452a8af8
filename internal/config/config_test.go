package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"avifwrap/internal/config"
)

func TestLoadDefaultConfigExpandsRoot(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AVIFWRAP_ROOT", "")
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if !filepath.IsAbs(cfg.Encoder.RootDir) {
		t.Fatalf("expected absolute root dir, got %q", cfg.Encoder.RootDir)
	}
	if filepath.Base(cfg.Encoder.RootDir) != "runtimes" {
		t.Fatalf("unexpected root dir: %q", cfg.Encoder.RootDir)
	}
	if !cfg.Defaults.Overwrite {
		t.Fatal("expected overwrite enabled by default")
	}
	if cfg.Defaults.EmitMessage {
		t.Fatal("expected emit_message disabled by default")
	}
	if cfg.Defaults.Quality != nil || cfg.Defaults.Speed != nil {
		t.Fatalf("expected quality/speed unset by default, got %v/%v", cfg.Defaults.Quality, cfg.Defaults.Speed)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "avifwrap.toml")
	t.Setenv("AVIFWRAP_ROOT", "")

	type payload struct {
		Encoder struct {
			RootDir        string `toml:"root_dir"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"encoder"`
		Defaults struct {
			Quality   int  `toml:"quality"`
			Speed     int  `toml:"speed"`
			Overwrite bool `toml:"overwrite"`
			ColorRGB  bool `toml:"color_rgb"`
		} `toml:"defaults"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Encoder.RootDir = filepath.Join(tempDir, "bin")
	custom.Encoder.TimeoutSeconds = 30
	custom.Defaults.Quality = 60
	custom.Defaults.Speed = 3
	custom.Defaults.ColorRGB = true
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config %q to be read, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Encoder.RootDir != custom.Encoder.RootDir {
		t.Fatalf("unexpected root dir: %q", cfg.Encoder.RootDir)
	}
	if cfg.Encoder.TimeoutSeconds != 30 {
		t.Fatalf("unexpected timeout: %d", cfg.Encoder.TimeoutSeconds)
	}
	if cfg.Defaults.Quality == nil || *cfg.Defaults.Quality != 60 {
		t.Fatalf("unexpected quality: %v", cfg.Defaults.Quality)
	}
	if cfg.Defaults.Speed == nil || *cfg.Defaults.Speed != 3 {
		t.Fatalf("unexpected speed: %v", cfg.Defaults.Speed)
	}
	if cfg.Defaults.Overwrite {
		t.Fatal("expected overwrite=false from file")
	}
	if cfg.Defaults.ColorRGB == nil || !*cfg.Defaults.ColorRGB {
		t.Fatalf("unexpected color_rgb: %v", cfg.Defaults.ColorRGB)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}
}

func TestLoadHonoursRootEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AVIFWRAP_ROOT", root)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Encoder.RootDir != root {
		t.Fatalf("expected env root %q, got %q", root, cfg.Encoder.RootDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("AVIFWRAP_ROOT", "")
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "quality", content: "[defaults]\nquality = 0\n", want: "defaults.quality"},
		{name: "speed", content: "[defaults]\nspeed = 11\n", want: "defaults.speed"},
		{name: "timeout", content: "[encoder]\ntimeout_seconds = -1\n", want: "encoder.timeout_seconds"},
		{name: "format", content: "[logging]\nformat = \"xml\"\n", want: "logging.format"},
		{name: "level", content: "[logging]\nlevel = \"loud\"\n", want: "logging.level"},
		{name: "unknown key", content: "[encoder]\nbinary = \"cavif\"\n", want: "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "avifwrap.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("AVIFWRAP_ROOT", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Encoder.TimeoutSeconds != 0 {
		t.Fatalf("unexpected sample timeout: %d", cfg.Encoder.TimeoutSeconds)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/runtimes")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "runtimes") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
