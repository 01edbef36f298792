package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjackforbots/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 8, c.Shoe.Decks)
	assert.Equal(t, 10, c.Betting.Levels)
	assert.Equal(t, "flat", c.Betting.Policy)
	assert.Equal(t, 1.0, c.Betting.UnitPerCount)
	assert.Equal(t, 100000, c.Simulation.Rounds)
	assert.Equal(t, 1, c.Simulation.Workers)
	assert.Equal(t, "localhost:8090", c.ServerAddress())
	require.NoError(t, c.Validate())

	d, err := c.IdleTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, d)
}

func TestParseFullFile(t *testing.T) {
	src := `
shoe {
  decks = 6
}

betting {
  levels         = 5
  policy         = "ramp"
  unit_per_count = 0.5
}

simulation {
  rounds            = 2500
  workers           = 4
  seed              = 42
  progress_interval = "250ms"
}

server {
  address      = "0.0.0.0"
  port         = 9000
  idle_timeout = "30s"
  log_level    = "debug"
}
`
	c, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 6, c.Shoe.Decks)
	assert.Equal(t, 5, c.Betting.Levels)
	assert.Equal(t, "ramp", c.Betting.Policy)
	assert.Equal(t, 0.5, c.Betting.UnitPerCount)
	assert.Equal(t, 2500, c.Simulation.Rounds)
	assert.Equal(t, 4, c.Simulation.Workers)
	assert.Equal(t, int64(42), c.Simulation.Seed)
	assert.Equal(t, "0.0.0.0:9000", c.ServerAddress())

	p, err := c.ProgressInterval()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, p)

	d, err := c.IdleTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestParsePartialBlockKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte(`betting { policy = "random" }`), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "random", c.Betting.Policy)
	assert.Equal(t, 10, c.Betting.Levels)
	assert.Equal(t, 8, c.Shoe.Decks)
	assert.Equal(t, 8090, c.Server.Port)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`shoe { decks = `), "bad.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`shoe { colour = "red" }`), "bad.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`shoe { decks = "many" }`), "bad.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative decks", func(c *Config) { c.Shoe.Decks = -1 }},
		{"negative levels", func(c *Config) { c.Betting.Levels = -2 }},
		{"unknown policy", func(c *Config) { c.Betting.Policy = "martingale" }},
		{"negative unit", func(c *Config) { c.Betting.UnitPerCount = -1 }},
		{"partial strategy", func(c *Config) { c.Strategy.Hard = "hard.csv" }},
		{"zero rounds", func(c *Config) { c.Simulation.Rounds = -5 }},
		{"zero workers", func(c *Config) { c.Simulation.Workers = -1 }},
		{"bad progress", func(c *Config) { c.Simulation.ProgressInterval = "soon" }},
		{"negative progress", func(c *Config) { c.Simulation.ProgressInterval = "-1s" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad idle timeout", func(c *Config) { c.Server.IdleTimeout = "forever" }},
		{"zero idle timeout", func(c *Config) { c.Server.IdleTimeout = "0s" }},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadChartDefault(t *testing.T) {
	chart, err := Default().LoadChart()
	require.NoError(t, err)
	assert.NotNil(t, chart.Hard)
}

func TestLoadChartRelativeToConfigFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"hard_totals.csv", "soft_totals.csv", "pairs.csv"} {
		data, err := os.ReadFile(filepath.Join("..", "strategy", "charts", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}

	cfgPath := filepath.Join(dir, "blackjack.hcl")
	src := `strategy {
  hard  = "hard_totals.csv"
  soft  = "soft_totals.csv"
  pairs = "pairs.csv"
}
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(src), 0644))

	c, err := Load(cfgPath)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	chart, err := c.LoadChart()
	require.NoError(t, err)
	d, ok := chart.Hard.Get(11, 6)
	require.True(t, ok)
	assert.Equal(t, strategy.Double, d)
}

func TestLoadChartMissingFile(t *testing.T) {
	c := Default()
	c.Strategy = &StrategyConfig{Hard: "nope.csv", Soft: "nope.csv", Pairs: "nope.csv"}
	_, err := c.LoadChart()
	assert.Error(t, err)
}
