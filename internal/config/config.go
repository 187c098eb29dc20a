// Package config handles showcase configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Config holds all showcase settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Page     PageConfig     `yaml:"page"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SceneConfig holds the 3D scene layout and the per-section targets.
type SceneConfig struct {
	Seed        uint64     `yaml:"seed"`
	FogEnabled  bool       `yaml:"fog_enabled"`
	FogColor    string     `yaml:"fog_color"`
	CameraStart [3]float32 `yaml:"camera_start"`
	FOV         float32    `yaml:"fov"`

	PlaneColor  string  `yaml:"plane_color"`
	DotColor    string  `yaml:"dot_color"`
	PlaneOffset float32 `yaml:"plane_offset"` // Vertical distance of each plane from the origin

	// Render loop circuit breaker.
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures"`
	FailureCooldown        time.Duration `yaml:"failure_cooldown"`

	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is the target state of the scene for one section.
type SectionConfig struct {
	ID       string  `yaml:"id"`
	Duration float64 `yaml:"duration"` // seconds

	Camera [3]float32 `yaml:"camera"`
	Target [3]float32 `yaml:"target"`
	Fog    float32    `yaml:"fog"`

	PlaneOpacity float32 `yaml:"plane_opacity"`
	PointOpacity float32 `yaml:"point_opacity"`
	ChartOpacity float32 `yaml:"chart_opacity"`
	BarsOpacity  float32 `yaml:"bars_opacity"`
	BustOpacity  float32 `yaml:"bust_opacity"`
	Morph        float32 `yaml:"morph"`

	Wave          bool `yaml:"wave"`
	RequiresModel bool `yaml:"requires_model"`

	// Planes optionally moves each plane; index matches plane order (up, down).
	Planes []PlaneTransform `yaml:"planes,omitempty"`
}

// PlaneTransform is a target group transform for one plane.
type PlaneTransform struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
}

// PageConfig holds the 2D page layout, scrolling and furniture settings.
type PageConfig struct {
	Regions  []RegionConfig  `yaml:"regions"`
	Triggers []TriggerConfig `yaml:"triggers"`

	ScrollStep      float64 `yaml:"scroll_step"` // pixels per wheel notch
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`

	ParallaxDepths []float32 `yaml:"parallax_depths"`

	CarouselInterval time.Duration `yaml:"carousel_interval"`
	Slides           []string      `yaml:"slides"`

	TickerLeg time.Duration `yaml:"ticker_leg"`
	Language  string        `yaml:"language"`
	Quotes    []QuoteConfig `yaml:"quotes"`
}

// RegionConfig is one stacked page region. Height is in viewport heights.
type RegionConfig struct {
	ID     string  `yaml:"id"`
	Height float64 `yaml:"height"`
}

// TriggerConfig maps crossings of a region's trigger line to sections.
type TriggerConfig struct {
	Region             string  `yaml:"region"`
	Start              float64 `yaml:"start"` // fraction of the viewport, 0.5 = "top 50%"
	OnEnter            string  `yaml:"on_enter"`
	OnLeaveBack        string  `yaml:"on_leave_back"`
	ReverseOnLeaveBack string  `yaml:"reverse_on_leave_back,omitempty"`
}

// QuoteConfig is one ticker item.
type QuoteConfig struct {
	Symbol string  `yaml:"symbol"`
	Price  float64 `yaml:"price"`
	Change float64 `yaml:"change"`
}

// AssetsConfig holds the bust model settings.
type AssetsConfig struct {
	ModelPath   string     `yaml:"model_path"`
	SampleCount int        `yaml:"sample_count"`
	Scale       float32    `yaml:"scale"`
	Position    [3]float32 `yaml:"position"`
}

// DebugConfig holds developer overlay settings.
type DebugConfig struct {
	ShowPanel bool `yaml:"show_panel"`
	ShowStats bool `yaml:"show_stats"`
	Helpers   bool `yaml:"helpers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	const quarter = math.Pi / 4
	const half = math.Pi / 2

	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			Seed:                   1,
			FogEnabled:             true,
			FogColor:               "#002135",
			CameraStart:            [3]float32{0, 0, 750},
			FOV:                    45,
			PlaneColor:             "#005e97",
			DotColor:               "#ffff00",
			PlaneOffset:            200,
			MaxConsecutiveFailures: 5,
			FailureCooldown:        2 * time.Second,
			Sections: []SectionConfig{
				{
					ID:           "section1",
					Duration:     2,
					Camera:       [3]float32{0, 0, 750},
					Fog:          0.0008,
					PlaneOpacity: 0.3,
					PointOpacity: 1,
					Wave:         true,
				},
				{
					ID:           "section2",
					Duration:     2,
					Camera:       [3]float32{0, 150, 900},
					Target:       [3]float32{200, 0, 0},
					Fog:          0.0004,
					PlaneOpacity: 0.15,
					PointOpacity: 0.6,
					ChartOpacity: 1,
					BarsOpacity:  1,
					Planes: []PlaneTransform{
						{Position: [3]float32{-100, 0, 0}, Rotation: [3]float32{-half, 0, quarter}},
						{Position: [3]float32{750, 0, -282}, Rotation: [3]float32{-half, 0, -quarter}},
					},
				},
				{
					ID:            "section3",
					Duration:      2.5,
					Camera:        [3]float32{0, 60, 450},
					Target:        [3]float32{0, 60, 0},
					Fog:           0.0006,
					PlaneOpacity:  0.05,
					PointOpacity:  1,
					BustOpacity:   0.35,
					Morph:         1,
					RequiresModel: true,
				},
			},
		},
		Page: PageConfig{
			Regions: []RegionConfig{
				{ID: "section1", Height: 1},
				{ID: "section2", Height: 1},
				{ID: "section3", Height: 1},
				{ID: "section4", Height: 1},
				{ID: "section5", Height: 1.5},
			},
			Triggers: []TriggerConfig{
				{Region: "section2", Start: 0.5, OnEnter: "section2", OnLeaveBack: "section1"},
				{Region: "section5", Start: 0.5, OnEnter: "section3", OnLeaveBack: "section2", ReverseOnLeaveBack: "section3"},
			},
			ScrollStep:       120,
			SpringFrequency:  6,
			SpringDamping:    1,
			ParallaxDepths:   []float32{0.2, 0.4, 0.7, 1},
			CarouselInterval: 8 * time.Second,
			Slides: []string{
				"Trade with confidence",
				"Markets at a glance",
				"Built for speed",
				"Always on",
			},
			TickerLeg: 50 * time.Second,
			Language:  "en",
			Quotes: []QuoteConfig{
				{Symbol: "BTC", Price: 64210.5, Change: 2.31},
				{Symbol: "ETH", Price: 3120.75, Change: -1.12},
				{Symbol: "SOL", Price: 148.2, Change: 4.05},
				{Symbol: "EUR/USD", Price: 1.0842, Change: 0.12},
				{Symbol: "GOLD", Price: 2331.4, Change: -0.4},
			},
		},
		Assets: AssetsConfig{
			ModelPath:   "assets/bust.glb",
			SampleCount: 625,
			Scale:       120,
		},
		Debug: DebugConfig{
			ShowPanel: false,
			ShowStats: true,
			Helpers:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the invariants the scene and page rely on.
func (c *Config) Validate() error {
	if len(c.Scene.Sections) == 0 {
		return errors.New("scene.sections: at least one section is required")
	}
	seen := make(map[string]bool, len(c.Scene.Sections))
	for i, s := range c.Scene.Sections {
		if s.ID == "" {
			return fmt.Errorf("scene.sections[%d]: empty id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("scene.sections[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		if s.Duration <= 0 {
			return fmt.Errorf("scene.sections[%d] %s: duration must be positive", i, s.ID)
		}
	}
	if c.Scene.MaxConsecutiveFailures < 1 {
		return fmt.Errorf("scene.max_consecutive_failures: must be at least 1, got %d", c.Scene.MaxConsecutiveFailures)
	}
	if c.Assets.SampleCount <= 0 {
		return fmt.Errorf("assets.sample_count: must be positive, got %d", c.Assets.SampleCount)
	}
	for _, hex := range []string{c.Scene.FogColor, c.Scene.PlaneColor, c.Scene.DotColor} {
		if _, err := ParseHexColor(hex); err != nil {
			return err
		}
	}

	regions := make(map[string]bool, len(c.Page.Regions))
	for _, r := range c.Page.Regions {
		if r.Height <= 0 {
			return fmt.Errorf("page.regions %s: height must be positive", r.ID)
		}
		regions[r.ID] = true
	}
	for _, tr := range c.Page.Triggers {
		if !regions[tr.Region] {
			return fmt.Errorf("page.triggers: unknown region %q", tr.Region)
		}
		for _, id := range []string{tr.OnEnter, tr.OnLeaveBack, tr.ReverseOnLeaveBack} {
			if id != "" && !seen[id] {
				return fmt.Errorf("page.triggers %s: unknown section %q", tr.Region, id)
			}
		}
	}
	return nil
}

// ParseHexColor parses "#rrggbb" into normalized RGB components.
func ParseHexColor(s string) ([3]float32, error) {
	var rgb [3]float32
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return rgb, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb, fmt.Errorf("invalid color %q: %w", s, err)
	}
	rgb[0] = float32((v>>16)&0xff) / 255
	rgb[1] = float32((v>>8)&0xff) / 255
	rgb[2] = float32(v&0xff) / 255
	return rgb, nil
}
