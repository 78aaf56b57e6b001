package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test image defaults
	if cfg.Image.Width.Default != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Image.Width.Default)
	}
	if cfg.Image.Height.Default != 720 {
		t.Errorf("expected height 720, got %d", cfg.Image.Height.Default)
	}
	if cfg.Image.FPS.Default != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Image.FPS.Default)
	}

	// Test generation defaults
	if cfg.Generation.Points.Default != 60 {
		t.Errorf("expected 60 points, got %d", cfg.Generation.Points.Default)
	}
	if !cfg.Generation.AvoidHoles {
		t.Error("expected avoid_holes to be true by default")
	}
	if cfg.Generation.MaxSampleAttempts != 1000 {
		t.Errorf("expected 1000 sample attempts, got %d", cfg.Generation.MaxSampleAttempts)
	}
	if len(cfg.Generation.Holes) != 0 {
		t.Errorf("expected no holes by default, got %d", len(cfg.Generation.Holes))
	}

	// Test window defaults
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
image:
  width: {min: 200, max: 1920, default: 1024}
  fps: {min: 1, max: 60, default: 24}

generation:
  points: {min: 8, max: 400, default: 120}
  avoid_holes: false
  seed: 1234
  holes:
    - [[300, 200], [500, 200], [400, 400]]
  orbit_radius: {min: 1, max: 4}

render:
  lines: false
  color: {h: 10, s: 80, v: 90}

window:
  title: "mesh"

logging:
  level: "debug"
  log_file: "lowpoly.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Image.Width.Default != 1024 || cfg.Image.Width.Max != 1920 {
		t.Errorf("expected width 1024 in [200,1920], got %+v", cfg.Image.Width)
	}
	if cfg.Image.Height.Default != 720 {
		t.Errorf("expected height to keep default 720, got %d", cfg.Image.Height.Default)
	}
	if cfg.Image.FPS.Default != 24 {
		t.Errorf("expected fps 24, got %d", cfg.Image.FPS.Default)
	}
	if cfg.Generation.Points.Default != 120 {
		t.Errorf("expected 120 points, got %d", cfg.Generation.Points.Default)
	}
	if cfg.Generation.AvoidHoles {
		t.Error("expected avoid_holes to be false")
	}
	if cfg.Generation.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Generation.Seed)
	}
	if len(cfg.Generation.Holes) != 1 || len(cfg.Generation.Holes[0]) != 3 {
		t.Fatalf("expected one triangular hole, got %v", cfg.Generation.Holes)
	}
	if cfg.Generation.Holes[0][2] != [2]float64{400, 400} {
		t.Errorf("expected third hole vertex (400,400), got %v", cfg.Generation.Holes[0][2])
	}
	if cfg.Generation.OrbitRadius.Max != 4 {
		t.Errorf("expected orbit radius max 4, got %v", cfg.Generation.OrbitRadius.Max)
	}
	if cfg.Render.Lines {
		t.Error("expected lines to be false")
	}
	if cfg.Render.Color != (HSV{H: 10, S: 80, V: 90}) {
		t.Errorf("expected color (10,80,90), got %+v", cfg.Render.Color)
	}
	if cfg.Window.Title != "mesh" {
		t.Errorf("expected title 'mesh', got %s", cfg.Window.Title)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "lowpoly.log" {
		t.Errorf("expected log file 'lowpoly.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
image:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:    "width default out of range",
			modify:  func(c *Config) { c.Image.Width.Default = 50 },
			wantErr: []string{"image.width"},
		},
		{
			name: "speeds inverted",
			modify: func(c *Config) {
				c.Generation.MinSpeed.Default = 5
				c.Generation.MaxSpeed.Default = 1
			},
			wantErr: []string{"min_speed 5 exceeds max_speed 1"},
		},
		{
			name: "several problems",
			modify: func(c *Config) {
				c.Image.FPS = IntRange{Min: 0, Max: 60, Default: 30}
				c.Generation.MaxSampleAttempts = 0
				c.Generation.OrbitRadius = Span{Min: 5, Max: 1}
				c.Generation.Holes = [][][2]float64{{{0, 0}, {1, 1}}}
			},
			wantErr: []string{"image.fps", "max_sample_attempts", "orbit_radius", "holes[0]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}
		})
	}
}

func TestClamp(t *testing.T) {
	r := IntRange{Min: 8, Max: 100, Default: 20}
	if got := r.Clamp(3); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
	if got := r.Clamp(500); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	f := FloatRange{Min: 0, Max: 10, Default: 1}
	if got := f.Clamp(-1); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Point the user config dir somewhere empty
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("image:\n  width: {min: 100, max: 900, default: 800}\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "size and points flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
				*flagPoints = 200
			},
			verify: func(cfg *Config) {
				if cfg.Image.Width.Default != 1920 {
					t.Errorf("expected width 1920, got %d", cfg.Image.Width.Default)
				}
				if cfg.Image.Height.Default != 1080 {
					t.Errorf("expected height 1080, got %d", cfg.Image.Height.Default)
				}
				if cfg.Generation.Points.Default != 200 {
					t.Errorf("expected 200 points, got %d", cfg.Generation.Points.Default)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
				*flagPoints = 0
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 99
			},
			verify: func(cfg *Config) {
				if cfg.Generation.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Generation.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
image:
  width: {min: 100, max: 3840, default: 1600}
  height: {min: 100, max: 2160, default: 900}
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Image.Width.Default != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Image.Width.Default)
	}

	// Height should be from file (900) since no flag override
	if cfg.Image.Height.Default != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Image.Height.Default)
	}
}

func TestLoadRejectsInvalidFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  title: test\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 100000
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "image.width") {
		t.Errorf("expected an image.width error, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Generation.Holes = [][][2]float64{{{10, 10}, {50, 10}, {30, 40}}}
	cfg.Render.FillVariation.Default = 35
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Render.FillVariation.Default != 35 {
		t.Errorf("expected fill variation 35, got %d", loaded.Render.FillVariation.Default)
	}
	if len(loaded.Generation.Holes) != 1 || loaded.Generation.Holes[0][1] != [2]float64{50, 10} {
		t.Errorf("expected saved hole, got %v", loaded.Generation.Holes)
	}
}

func TestSaveWritesUserConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not redirectable through XDG_CONFIG_HOME on this OS")
	}
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Generation.Points.Default = 120
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if want := filepath.Join(ConfigDir(), "config.yaml"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	// The next start picks the saved file up
	if found := findConfigFile(); found != path {
		t.Fatalf("expected findConfigFile to return %s, got %q", path, found)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Generation.Points.Default != 120 {
		t.Errorf("expected 120 points, got %d", loaded.Generation.Points.Default)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# lowpoly configuration") {
		t.Errorf("expected header comment, got %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestSaveToRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Image.Width.Default = 99999
	err := cfg.SaveTo(path)
	if err == nil || !strings.Contains(err.Error(), "image.width") {
		t.Fatalf("expected image.width error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("expected no file written, stat returned %v", statErr)
	}
}
