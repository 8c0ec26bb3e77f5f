package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/assembler/internal/logging"
	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fragctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefinedKeys(t *testing.T) {
	path := writeFile(t, `
log_level = "debug"
max_fragments = 64
write_manifest = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.LogLevel = "debug"
	want.MaxFragments = 64
	want.WriteManifest = false
	if cfg != want {
		t.Fatalf("got %+v want %+v", cfg, want)
	}
	if cfg.Limits().MaxFragments != 64 {
		t.Fatalf("limits not derived from config: %+v", cfg.Limits())
	}
}

func TestLoadEmptyFileIsDefault(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "fragment_size = 64\n"))
	if err == nil || !strings.Contains(err.Error(), "fragment_size") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		`log_level = "loud"`,
		`max_fragments = 0`,
		`metrics_textfile = "/tmp/metrics.txt"`,
	}
	for _, body := range cases {
		if _, err := Load(writeFile(t, body)); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTemplateLoadsAsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("template does not round-trip: %+v", cfg)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestApplyLogging(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	cfg.LogNoColor = true
	s := logging.DefaultSettings(logging.ProfileRuntime)
	cfg.ApplyLogging(&s)
	if s.Level != zerolog.WarnLevel || !s.NoColor || !s.Timestamp {
		t.Fatalf("unexpected settings %+v", s)
	}
}
