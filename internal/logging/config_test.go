package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"diagnostics", zerolog.TraceLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v,%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDefaultSettingsByProfile(t *testing.T) {
	rt := DefaultSettings(ProfileRuntime)
	if rt.Level != zerolog.InfoLevel || !rt.Timestamp {
		t.Fatalf("unexpected runtime defaults: %+v", rt)
	}
	tst := DefaultSettings(ProfileTest)
	if tst.Level != zerolog.DebugLevel || tst.Timestamp {
		t.Fatalf("unexpected test defaults: %+v", tst)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogNoColor, "true")
	t.Setenv(EnvLogTimestamp, "not-a-bool")
	cfg := DefaultSettings(ProfileRuntime)
	cfg.Level = zerolog.DebugLevel
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("expected env level to win, got %v", cfg.Level)
	}
	if !cfg.NoColor {
		t.Fatalf("expected no color from env")
	}
	if !cfg.Timestamp {
		t.Fatalf("invalid bool should leave timestamp unchanged")
	}
}
