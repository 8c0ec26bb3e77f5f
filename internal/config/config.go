package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/assembler/internal/logging"
	"github.com/danmuck/assembler/internal/protocol/fragment"
)

// Config is the fragctl.toml key mapping.
type Config struct {
	LogLevel        string `toml:"log_level" comment:"trace|debug|info|warn|error|disabled"`
	LogTimestamp    bool   `toml:"log_timestamp" comment:"prefix log lines with an RFC3339 timestamp"`
	LogNoColor      bool   `toml:"log_no_color" comment:"disable ANSI colors in console output"`
	MaxFragments    uint64 `toml:"max_fragments" comment:"largest fragment set accepted by join and recv"`
	WriteManifest   bool   `toml:"write_manifest" comment:"write a manifest next to every split output"`
	MetricsTextfile string `toml:"metrics_textfile" comment:"node_exporter textfile path (.prom), empty disables export"`
}

func Default() Config {
	return Config{
		LogLevel:        "info",
		LogTimestamp:    true,
		LogNoColor:      false,
		MaxFragments:    fragment.DefaultLimits().MaxFragments,
		WriteManifest:   true,
		MetricsTextfile: "",
	}
}

// Load reads path and overlays the keys it defines onto Default.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_timestamp") {
		cfg.LogTimestamp = raw.LogTimestamp
	}
	if meta.IsDefined("log_no_color") {
		cfg.LogNoColor = raw.LogNoColor
	}
	if meta.IsDefined("max_fragments") {
		cfg.MaxFragments = raw.MaxFragments
	}
	if meta.IsDefined("write_manifest") {
		cfg.WriteManifest = raw.WriteManifest
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.MaxFragments == 0 {
		return fmt.Errorf("max_fragments must be positive")
	}
	if cfg.MetricsTextfile != "" && !strings.HasSuffix(cfg.MetricsTextfile, ".prom") {
		return fmt.Errorf("metrics_textfile %q must end in .prom", cfg.MetricsTextfile)
	}
	return nil
}

func (c Config) Limits() fragment.Limits {
	return fragment.Limits{MaxFragments: c.MaxFragments}
}

// ApplyLogging is a logging.Configure overlay. Environment overrides still
// win over the file.
func (c Config) ApplyLogging(s *logging.Settings) {
	if lvl, ok := logging.ParseLevel(c.LogLevel); ok {
		s.Level = lvl
	}
	s.Timestamp = c.LogTimestamp
	s.NoColor = c.LogNoColor
}
