package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.CameraStart != [3]float32{0, 0, 750} {
		t.Errorf("expected camera start (0,0,750), got %v", cfg.Scene.CameraStart)
	}
	if cfg.Scene.MaxConsecutiveFailures != 5 {
		t.Errorf("expected 5 consecutive failures, got %d", cfg.Scene.MaxConsecutiveFailures)
	}
	if cfg.Scene.FailureCooldown != 2*time.Second {
		t.Errorf("expected cooldown 2s, got %v", cfg.Scene.FailureCooldown)
	}
	if len(cfg.Scene.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(cfg.Scene.Sections))
	}
	if !cfg.Scene.Sections[2].RequiresModel {
		t.Error("expected section3 to depend on the model")
	}
	if len(cfg.Scene.Sections[1].Planes) != 2 {
		t.Errorf("expected section2 to move both planes, got %d", len(cfg.Scene.Sections[1].Planes))
	}

	if cfg.Page.CarouselInterval != 8*time.Second {
		t.Errorf("expected carousel interval 8s, got %v", cfg.Page.CarouselInterval)
	}
	if cfg.Page.TickerLeg != 50*time.Second {
		t.Errorf("expected ticker leg 50s, got %v", cfg.Page.TickerLeg)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

scene:
  seed: 99
  failure_cooldown: 500ms
  sections:
    - id: intro
      duration: 1.5
      camera: [0, 10, 600]
      fog: 0.001
      wave: true
    - id: outro
      duration: 3
      camera: [0, 0, 300]
      planes:
        - position: [1, 2, 3]
          rotation: [0.5, 0, 0]

page:
  carousel_interval: 4s
  language: de
  quotes:
    - symbol: DAX
      price: 18000.25
      change: 0.8

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Scene.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Scene.Seed)
	}
	if cfg.Scene.FailureCooldown != 500*time.Millisecond {
		t.Errorf("expected cooldown 500ms, got %v", cfg.Scene.FailureCooldown)
	}
	// Unset keys keep their defaults.
	if cfg.Scene.MaxConsecutiveFailures != 5 {
		t.Errorf("expected default failure limit, got %d", cfg.Scene.MaxConsecutiveFailures)
	}
	if len(cfg.Scene.Sections) != 2 {
		t.Fatalf("expected the file's 2 sections to replace the defaults, got %d", len(cfg.Scene.Sections))
	}
	if cfg.Scene.Sections[0].ID != "intro" || !cfg.Scene.Sections[0].Wave {
		t.Errorf("unexpected first section %+v", cfg.Scene.Sections[0])
	}
	if got := cfg.Scene.Sections[1].Planes[0].Position; got != [3]float32{1, 2, 3} {
		t.Errorf("expected plane position (1,2,3), got %v", got)
	}

	if cfg.Page.CarouselInterval != 4*time.Second {
		t.Errorf("expected carousel interval 4s, got %v", cfg.Page.CarouselInterval)
	}
	if cfg.Page.Language != "de" {
		t.Errorf("expected language de, got %s", cfg.Page.Language)
	}
	if len(cfg.Page.Quotes) != 1 || cfg.Page.Quotes[0].Symbol != "DAX" {
		t.Errorf("unexpected quotes %+v", cfg.Page.Quotes)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no sections",
			mutate:  func(c *Config) { c.Scene.Sections = nil },
			wantErr: "at least one section",
		},
		{
			name:    "duplicate section",
			mutate:  func(c *Config) { c.Scene.Sections[1].ID = "section1" },
			wantErr: "duplicate id",
		},
		{
			name:    "zero duration",
			mutate:  func(c *Config) { c.Scene.Sections[0].Duration = 0 },
			wantErr: "duration must be positive",
		},
		{
			name:    "breaker disabled",
			mutate:  func(c *Config) { c.Scene.MaxConsecutiveFailures = 0 },
			wantErr: "max_consecutive_failures",
		},
		{
			name:    "no model samples",
			mutate:  func(c *Config) { c.Assets.SampleCount = 0 },
			wantErr: "assets.sample_count",
		},
		{
			name:    "negative model samples",
			mutate:  func(c *Config) { c.Assets.SampleCount = -5 },
			wantErr: "must be positive",
		},
		{
			name:    "bad color",
			mutate:  func(c *Config) { c.Scene.FogColor = "teal" },
			wantErr: "invalid color",
		},
		{
			name:    "trigger on unknown region",
			mutate:  func(c *Config) { c.Page.Triggers[0].Region = "footer" },
			wantErr: "unknown region",
		},
		{
			name:    "trigger to unknown section",
			mutate:  func(c *Config) { c.Page.Triggers[1].OnEnter = "section9" },
			wantErr: "unknown section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]float32
		wantErr bool
	}{
		{in: "#ffffff", want: [3]float32{1, 1, 1}},
		{in: "000000", want: [3]float32{0, 0, 0}},
		{in: "#ff0000", want: [3]float32{1, 0, 0}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.ShowPanel {
					t.Error("expected debug panel to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "/tmp/head.glb" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.ModelPath != "/tmp/head.glb" {
					t.Errorf("expected model path /tmp/head.glb, got %s", cfg.Assets.ModelPath)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Scene.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  max_consecutive_failures: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Seed = 1234
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Scene.Seed != 1234 {
		t.Errorf("expected seed 1234 after round trip, got %d", loaded.Scene.Seed)
	}
	if loaded.Page.TickerLeg != cfg.Page.TickerLeg {
		t.Errorf("expected ticker leg %v, got %v", cfg.Page.TickerLeg, loaded.Page.TickerLeg)
	}
}
