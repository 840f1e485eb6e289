// SPDX-License-Identifier: MIT
// Package config loads analysis settings from defaults, an optional YAML
// file and DEPTHLATH_ environment variables.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/depthlath/analysis"
	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/tulip"
)

// EnvPrefix prefixes every environment override, e.g. DEPTHLATH_TULIP_RESOLUTION.
const EnvPrefix = "DEPTHLATH"

// Config stores all settings of a run.
type Config struct {
	Seed     int64          `mapstructure:"seed"`
	Tulip    TulipConfig    `mapstructure:"tulip"`
	VGA      VGAConfig      `mapstructure:"vga"`
	Progress ProgressConfig `mapstructure:"progress"`
	Log      LogConfig      `mapstructure:"log"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// TulipConfig stores segment sweep settings.
type TulipConfig struct {
	Resolution int       `mapstructure:"resolution"`
	Radii      []float64 `mapstructure:"radii"`
	Choice     bool      `mapstructure:"choice"`
}

// VGAConfig stores visibility analysis settings.
type VGAConfig struct {
	Workers              int  `mapstructure:"workers"`
	ForceCommOnOneThread bool `mapstructure:"forceCommOnOneThread"`
	StepRadius           int  `mapstructure:"stepRadius"`
	SameOwnerClustering  bool `mapstructure:"sameOwnerClustering"`
}

// ProgressConfig stores the cancellation poll interval.
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// SnapshotConfig names where attribute tables are persisted. An empty Dir
// disables snapshots.
type SnapshotConfig struct {
	Dir  string `mapstructure:"dir"`
	Name string `mapstructure:"name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("tulip.resolution", tulip.FullResolution)
	v.SetDefault("tulip.radii", []float64{0})
	v.SetDefault("tulip.choice", true)
	v.SetDefault("vga.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("vga.forceCommOnOneThread", false)
	v.SetDefault("vga.stepRadius", 0)
	v.SetDefault("vga.sameOwnerClustering", false)
	v.SetDefault("progress.interval", progress.DefaultInterval)
	v.SetDefault("log.debug", false)
	v.SetDefault("snapshot.dir", "")
	v.SetDefault("snapshot.name", "attributes")
}

// Load reads configuration from path (optional) and the environment.
// Environment variables override the file, e.g. DEPTHLATH_VGA_WORKERS=4.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &cfg, nil
}

// TulipOptions maps the tulip section onto SegmentTulip options.
func (c *Config) TulipOptions() []analysis.TulipOption {
	return []analysis.TulipOption{
		analysis.WithTulipResolution(c.Tulip.Resolution),
		analysis.WithRadii(c.Tulip.Radii...),
		analysis.WithChoice(c.Tulip.Choice),
	}
}

// VGAOptions maps the vga section onto VisualLocal/VisualGlobal options.
func (c *Config) VGAOptions() []analysis.VGAOption {
	return []analysis.VGAOption{
		analysis.WithWorkers(c.VGA.Workers),
		analysis.WithCommOnOneThread(c.VGA.ForceCommOnOneThread),
		analysis.WithStepRadius(c.VGA.StepRadius),
		analysis.WithSameOwnerClustering(c.VGA.SameOwnerClustering),
	}
}

// RunOptions maps seed and poll interval onto run context options.
func (c *Config) RunOptions() []analysis.RunOption {
	return []analysis.RunOption{
		analysis.WithSeed(c.Seed),
		analysis.WithPollInterval(c.Progress.Interval),
	}
}
