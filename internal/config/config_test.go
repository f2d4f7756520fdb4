package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"titlesort/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(home, "run"))
	t.Setenv("TITLESORT_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(home, ".config", "titlesort", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".local", "share", "titlesort", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, want)
	}
	if want := filepath.Join(home, "run", "titlesort"); cfg.Paths.LockDir != want {
		t.Fatalf("unexpected lock dir: got %q want %q", cfg.Paths.LockDir, want)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Output.Format != "table" || cfg.Output.Color != "auto" {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.LogFilePath() != "" {
		t.Fatalf("expected no log file by default, got %q", cfg.LogFilePath())
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(home, "custom.toml")
	content := `
[paths]
log_dir = "~/logs"

[logging]
format = "JSON"
level = "Debug"
file = true

[output]
format = "yaml"
color = "never"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be loaded, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.Color != "never" {
		t.Fatalf("unexpected output: %+v", cfg.Output)
	}
	if want := filepath.Join(home, "logs", "titlesort.log"); cfg.LogFilePath() != want {
		t.Fatalf("unexpected log file path %q want %q", cfg.LogFilePath(), want)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := isolateEnv(t)
	cases := map[string]string{
		"log format":    "[logging]\nformat = \"xml\"\n",
		"log level":     "[logging]\nlevel = \"chatty\"\n",
		"output format": "[output]\nformat = \"csv\"\n",
		"color":         "[output]\ncolor = \"sometimes\"\n",
		"unknown key":   "[organizer]\npattern = \"x\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(home, strings.ReplaceAll(name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TITLESORT_LOG_LEVEL", "WARN")
	t.Setenv("NO_COLOR", "1")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.Output.Color != "never" {
		t.Fatalf("expected NO_COLOR to disable color, got %q", cfg.Output.Color)
	}
}

func TestSampleConfigRoundTrips(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LockDir = filepath.Join(base, "locks")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LockDir); err != nil {
		t.Fatalf("expected lock dir: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LogDir); !os.IsNotExist(err) {
		t.Fatalf("log dir should only be created with file logging, stat err=%v", err)
	}

	cfg.Logging.File = true
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LogDir); err != nil {
		t.Fatalf("expected log dir: %v", err)
	}
}
