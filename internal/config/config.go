// Package config holds the run configuration, optionally loaded from a TOML
// file. Flags override the file; the file overrides defaults.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// FrameRate applies uniformly to every segment; the raw streams carry
	// no metadata, so it must be supplied.
	FrameRate int `toml:"fps"`

	// VideoExt selects which files in the data directory are segments.
	VideoExt string `toml:"video_ext"`

	// EventLogs names the per-class log files, one class per file.
	EventLogs []string `toml:"event_logs"`

	CountsFile  string `toml:"counts_file"`
	DatasetFile string `toml:"dataset_file"`

	// ProbeJobs bounds the parallel ffprobe invocations of the count command.
	ProbeJobs int `toml:"probe_jobs"`
}

func Default() Config {
	return Config{
		FrameRate:   24,
		VideoExt:    ".h264",
		EventLogs:   []string{"logPos.txt", "logNeg.txt", "logNo.txt"},
		CountsFile:  "counts.csv",
		DatasetFile: "dataset.csv",
		ProbeJobs:   60,
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.FrameRate <= 0 {
		return cfg, fmt.Errorf("config %s: fps must be positive, got %d", path, cfg.FrameRate)
	}
	if len(cfg.EventLogs) == 0 {
		return cfg, fmt.Errorf("config %s: event_logs must name at least one log", path)
	}

	return cfg, nil
}
