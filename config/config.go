// Package config loads the tunable parameters of a page from YAML. Every field that a document
// leaves out keeps its reference default, so an empty file is a valid configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/onin-go/engine/animator"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the root document.
type Config struct {
	Pointer PointerConfig `yaml:"pointer"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Scroll  ScrollConfig  `yaml:"scroll"`
	Grid    GridConfig    `yaml:"grid"`
	Engine  EngineConfig  `yaml:"engine"`
}

// PoseConfig is a base position with a uniform scale.
type PoseConfig struct {
	Position [3]float32 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
}

// PointerConfig tunes the pointer target resolver.
type PointerConfig struct {
	Threshold     float32    `yaml:"threshold"`
	Parallax      float32    `yaml:"parallax"`
	RotationRange float32    `yaml:"rotation_range"`
	Resting       PoseConfig `yaml:"resting"`
	Engaged       PoseConfig `yaml:"engaged"`
}

// ViewerConfig selects the featured asset and how it is played.
type ViewerConfig struct {
	// Asset is the key of the featured asset. Empty mounts nothing.
	Asset string `yaml:"asset"`

	// Mode is "skinned" or "decorative".
	Mode string `yaml:"mode"`

	// Loop is "repeat", "once" or "pingpong".
	Loop string `yaml:"loop"`

	AutoPlay  bool    `yaml:"auto_play"`
	Smoothing float32 `yaml:"smoothing"`
}

// Knot is one progress-to-offset control point.
type Knot struct {
	At     float64 `yaml:"at"`
	Offset float64 `yaml:"offset"`
}

// SpringConfig is the physical description of the scroll spring.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

// SmootherConfig tunes wheel smoothing.
type SmootherConfig struct {
	// Duration is the easing time in seconds.
	Duration        float64 `yaml:"duration"`
	WheelMultiplier float64 `yaml:"wheel_multiplier"`

	// Limit is the scrollable distance wheel input is clamped to. Zero disables wheel smoothing.
	Limit float64 `yaml:"limit"`
}

// ScrollConfig tunes the scroll offset pipeline.
type ScrollConfig struct {
	Keyframes []Knot         `yaml:"keyframes"`
	Spring    SpringConfig   `yaml:"spring"`
	Smoother  SmootherConfig `yaml:"smoother"`
}

// GridConfig describes the flip grids of the page.
type GridConfig struct {
	Count        int           `yaml:"count"`
	Rows         int           `yaml:"rows"`
	Columns      int           `yaml:"columns"`
	FlipDuration time.Duration `yaml:"flip_duration"`
	Intro        bool          `yaml:"intro"`
}

// EngineConfig tunes the tick loop.
type EngineConfig struct {
	TickRate        int           `yaml:"tick_rate"`
	ProfileInterval time.Duration `yaml:"profile_interval"`
}

// Default returns the reference configuration.
//
// Returns:
//   - Config: the defaults every document is layered on
func Default() Config {
	return Config{
		Pointer: PointerConfig{
			Threshold:     0.01,
			Parallax:      0.7,
			RotationRange: 0.7853982,
			Resting:       PoseConfig{Position: [3]float32{-0.05, 0, -1}, Scale: 0.01},
			Engaged:       PoseConfig{Position: [3]float32{0, 0.3, 0.1}, Scale: 0.015},
		},
		Viewer: ViewerConfig{
			Mode:      "skinned",
			Loop:      "repeat",
			AutoPlay:  true,
			Smoothing: 0.05,
		},
		Scroll: ScrollConfig{
			Keyframes: []Knot{{0, 0}, {0.33, -300}, {0.66, 200}, {1, 0}},
			Spring:    SpringConfig{Stiffness: 30, Damping: 20, Mass: 1},
			Smoother:  SmootherConfig{Duration: 1.2, WheelMultiplier: 1},
		},
		Grid: GridConfig{
			Count:        2,
			Rows:         6,
			Columns:      8,
			FlipDuration: time.Second,
			Intro:        true,
		},
		Engine: EngineConfig{
			TickRate:        60,
			ProfileInterval: 5 * time.Second,
		},
	}
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the document is malformed or fails validation
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Validate reports the first value that the components would reject or silently ignore.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	if c.Pointer.Threshold < 0 {
		return errors.Errorf("config: pointer.threshold %v is negative", c.Pointer.Threshold)
	}
	if c.Viewer.Smoothing <= 0 || c.Viewer.Smoothing > 1 {
		return errors.Errorf("config: viewer.smoothing %v outside (0, 1]", c.Viewer.Smoothing)
	}
	if _, err := parseMode(c.Viewer.Mode); err != nil {
		return err
	}
	if _, err := parseLoop(c.Viewer.Loop); err != nil {
		return err
	}

	if len(c.Scroll.Keyframes) == 0 {
		return errors.New("config: scroll.keyframes is empty")
	}
	for i := 1; i < len(c.Scroll.Keyframes); i++ {
		if c.Scroll.Keyframes[i].At <= c.Scroll.Keyframes[i-1].At {
			return errors.Errorf("config: scroll.keyframes[%d] at %v does not increase", i, c.Scroll.Keyframes[i].At)
		}
	}
	if c.Scroll.Spring.Stiffness <= 0 || c.Scroll.Spring.Mass <= 0 {
		return errors.New("config: scroll.spring needs positive stiffness and mass")
	}
	spring := motion.SpringConfig{Stiffness: c.Scroll.Spring.Stiffness, Damping: c.Scroll.Spring.Damping, Mass: c.Scroll.Spring.Mass}
	if r := spring.DampingRatio(); r < motion.MinDampingRatio {
		return errors.Errorf("config: scroll.spring.damping %v gives damping ratio %.3f, need at least %v",
			c.Scroll.Spring.Damping, r, motion.MinDampingRatio)
	}
	if c.Scroll.Smoother.Duration <= 0 {
		return errors.Errorf("config: scroll.smoother.duration %v is not positive", c.Scroll.Smoother.Duration)
	}
	if c.Scroll.Smoother.Limit < 0 {
		return errors.Errorf("config: scroll.smoother.limit %v is negative", c.Scroll.Smoother.Limit)
	}

	if c.Grid.Count < 0 {
		return errors.Errorf("config: grid.count %d is negative", c.Grid.Count)
	}
	if c.Grid.Rows < 1 || c.Grid.Columns < 1 {
		return errors.Errorf("config: grid is %dx%d, need at least 1x1", c.Grid.Rows, c.Grid.Columns)
	}
	if c.Grid.FlipDuration <= 0 {
		return errors.Errorf("config: grid.flip_duration %v is not positive", c.Grid.FlipDuration)
	}

	if c.Engine.TickRate < 1 {
		return errors.Errorf("config: engine.tick_rate %d is not positive", c.Engine.TickRate)
	}
	return nil
}

// AssetMode returns the configured consumption mode. Unknown names map to asset.ModeSkinned.
func (v ViewerConfig) AssetMode() asset.Mode {
	m, _ := parseMode(v.Mode)
	return m
}

// LoopMode returns the configured loop mode. Unknown names map to animator.LoopRepeat.
func (v ViewerConfig) LoopMode() animator.LoopMode {
	m, _ := parseLoop(v.Loop)
	return m
}

// Inputs returns the keyframe knot positions.
func (s ScrollConfig) Inputs() []float64 {
	out := make([]float64, len(s.Keyframes))
	for i, k := range s.Keyframes {
		out[i] = k.At
	}
	return out
}

// Outputs returns the keyframe knot offsets.
func (s ScrollConfig) Outputs() []float64 {
	out := make([]float64, len(s.Keyframes))
	for i, k := range s.Keyframes {
		out[i] = k.Offset
	}
	return out
}

func parseMode(s string) (asset.Mode, error) {
	switch strings.ToLower(s) {
	case "skinned", "":
		return asset.ModeSkinned, nil
	case "decorative":
		return asset.ModeDecorative, nil
	default:
		return asset.ModeSkinned, errors.Errorf("config: unknown viewer.mode %q", s)
	}
}

func parseLoop(s string) (animator.LoopMode, error) {
	switch strings.ToLower(s) {
	case "repeat", "":
		return animator.LoopRepeat, nil
	case "once":
		return animator.LoopOnce, nil
	case "pingpong":
		return animator.LoopPingPong, nil
	default:
		return animator.LoopRepeat, errors.Errorf("config: unknown viewer.loop %q", s)
	}
}
