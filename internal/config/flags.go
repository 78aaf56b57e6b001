package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Canvas width")
	flagHeight      = flag.Int("height", 0, "Canvas height")
	flagPoints      = flag.Int("points", 0, "Side and interior point count")
	flagSeed        = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config target, empty when not set.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// SaveConfigRequested reports whether --save-config was given.
func SaveConfigRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Image.Width.Default = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Image.Height.Default = *flagHeight
	}
	if *flagPoints > 0 {
		cfg.Generation.Points.Default = *flagPoints
	}
	if *flagSeed != 0 {
		cfg.Generation.Seed = *flagSeed
	}
}
