package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/onin-go/engine/animator"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []float64{0, 0.33, 0.66, 1}, cfg.Scroll.Inputs())
	assert.Equal(t, []float64{0, -300, 200, 0}, cfg.Scroll.Outputs())
	assert.Equal(t, asset.ModeSkinned, cfg.Viewer.AssetMode())
	assert.Equal(t, animator.LoopRepeat, cfg.Viewer.LoopMode())
	assert.True(t, cfg.Grid.Intro, "cells spin in on mount unless turned off")
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_OverridesOnlyGivenFields(t *testing.T) {
	doc := `
viewer:
  asset: models/fox.glb
  mode: decorative
  loop: pingpong
grid:
  count: 1
  flip_duration: 750ms
  intro: false
scroll:
  keyframes:
    - {at: 0, offset: 0}
    - {at: 1, offset: -100}
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "models/fox.glb", cfg.Viewer.Asset)
	assert.Equal(t, asset.ModeDecorative, cfg.Viewer.AssetMode())
	assert.Equal(t, animator.LoopPingPong, cfg.Viewer.LoopMode())
	assert.Equal(t, float32(0.05), cfg.Viewer.Smoothing)
	assert.True(t, cfg.Viewer.AutoPlay)

	assert.Equal(t, 1, cfg.Grid.Count)
	assert.Equal(t, 6, cfg.Grid.Rows)
	assert.Equal(t, 750*time.Millisecond, cfg.Grid.FlipDuration)
	assert.False(t, cfg.Grid.Intro)

	assert.Equal(t, []Knot{{0, 0}, {1, -100}}, cfg.Scroll.Keyframes)
	assert.Equal(t, 30.0, cfg.Scroll.Spring.Stiffness)
	assert.Equal(t, Default().Pointer, cfg.Pointer)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("viewer:\n  smoothnig: 0.1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smoothnig")
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero smoothing", func(c *Config) { c.Viewer.Smoothing = 0 }, "viewer.smoothing"},
		{"smoothing above one", func(c *Config) { c.Viewer.Smoothing = 1.5 }, "viewer.smoothing"},
		{"unknown mode", func(c *Config) { c.Viewer.Mode = "wireframe" }, "viewer.mode"},
		{"unknown loop", func(c *Config) { c.Viewer.Loop = "bounce" }, "viewer.loop"},
		{"negative threshold", func(c *Config) { c.Pointer.Threshold = -1 }, "pointer.threshold"},
		{"no knots", func(c *Config) { c.Scroll.Keyframes = nil }, "keyframes is empty"},
		{"knots out of order", func(c *Config) { c.Scroll.Keyframes = []Knot{{0, 0}, {0.5, 1}, {0.5, 2}} }, "keyframes[2]"},
		{"zero stiffness", func(c *Config) { c.Scroll.Spring.Stiffness = 0 }, "scroll.spring"},
		{"zero mass", func(c *Config) { c.Scroll.Spring.Mass = 0 }, "scroll.spring"},
		{"negative damping", func(c *Config) { c.Scroll.Spring.Damping = -1 }, "damping"},
		{"zero damping", func(c *Config) { c.Scroll.Spring.Damping = 0 }, "damping ratio"},
		{"barely damped", func(c *Config) { c.Scroll.Spring.Damping = 0.5 }, "damping ratio"},
		{"zero smoother duration", func(c *Config) { c.Scroll.Smoother.Duration = 0 }, "smoother.duration"},
		{"negative smoother limit", func(c *Config) { c.Scroll.Smoother.Limit = -5 }, "smoother.limit"},
		{"empty grid", func(c *Config) { c.Grid.Columns = 0 }, "need at least 1x1"},
		{"negative grid count", func(c *Config) { c.Grid.Count = -1 }, "grid.count"},
		{"zero flip duration", func(c *Config) { c.Grid.FlipDuration = 0 }, "flip_duration"},
		{"zero tick rate", func(c *Config) { c.Engine.TickRate = 0 }, "tick_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  tick_rate: 120\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Engine.TickRate)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grid:\n  rows: 0\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
