// Package config loads the HCL configuration shared by the simulate and
// serve commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjackforbots/internal/betting"
	"github.com/lox/blackjackforbots/internal/blackjack"
	"github.com/lox/blackjackforbots/internal/strategy"
)

// Config represents the complete configuration. Every block is optional;
// Load fills in whatever the file leaves out.
type Config struct {
	Shoe       *ShoeConfig       `hcl:"shoe,block"`
	Betting    *BettingConfig    `hcl:"betting,block"`
	Strategy   *StrategyConfig   `hcl:"strategy,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
	Server     *ServerConfig     `hcl:"server,block"`

	dir string // directory relative strategy paths resolve against
}

// ShoeConfig configures the shoe
type ShoeConfig struct {
	Decks int `hcl:"decks,optional"`
}

// BettingConfig configures the bet action space and the built-in policy
type BettingConfig struct {
	Levels       int     `hcl:"levels,optional"`
	Policy       string  `hcl:"policy,optional"`
	UnitPerCount float64 `hcl:"unit_per_count,optional"`
}

// StrategyConfig points at basic strategy CSV grids. All three paths must
// be set together; leaving them empty selects the built-in chart.
type StrategyConfig struct {
	Hard  string `hcl:"hard,optional"`
	Soft  string `hcl:"soft,optional"`
	Pairs string `hcl:"pairs,optional"`
}

// SimulationConfig configures the simulate command
type SimulationConfig struct {
	Rounds           int    `hcl:"rounds,optional"`
	Workers          int    `hcl:"workers,optional"`
	Seed             int64  `hcl:"seed,optional"`
	ProgressInterval string `hcl:"progress_interval,optional"`
}

// ServerConfig configures the environment server
type ServerConfig struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

const (
	defaultPolicy           = "flat"
	defaultUnitPerCount     = 1.0
	defaultRounds           = 100000
	defaultProgressInterval = "5s"
	defaultAddress          = "localhost"
	defaultPort             = 8090
	defaultIdleTimeout      = "10m"
	defaultLogLevel         = "info"
)

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	c, err := Parse(src, filename)
	if err != nil {
		return nil, err
	}
	c.dir = filepath.Dir(filename)
	return c, nil
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Shoe == nil {
		c.Shoe = &ShoeConfig{}
	}
	if c.Shoe.Decks == 0 {
		c.Shoe.Decks = blackjack.DefaultNumDecks
	}

	if c.Betting == nil {
		c.Betting = &BettingConfig{}
	}
	if c.Betting.UnitPerCount == 0 {
		c.Betting.UnitPerCount = defaultUnitPerCount
	}
	if c.Betting.Levels == 0 {
		c.Betting.Levels = blackjack.DefaultBetLevels
	}
	if c.Betting.Policy == "" {
		c.Betting.Policy = defaultPolicy
	}

	if c.Strategy == nil {
		c.Strategy = &StrategyConfig{}
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Rounds == 0 {
		c.Simulation.Rounds = defaultRounds
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 1
	}
	if c.Simulation.ProgressInterval == "" {
		c.Simulation.ProgressInterval = defaultProgressInterval
	}

	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = defaultIdleTimeout
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaultLogLevel
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Shoe.Decks < 1 {
		return fmt.Errorf("shoe: decks must be at least 1, got %d", c.Shoe.Decks)
	}
	if c.Betting.Levels < 1 {
		return fmt.Errorf("betting: levels must be at least 1, got %d", c.Betting.Levels)
	}
	if !betting.Valid(c.Betting.Policy) {
		return fmt.Errorf("betting: unknown policy %q (want one of %v)", c.Betting.Policy, betting.Names)
	}
	if c.Betting.UnitPerCount < 0 {
		return fmt.Errorf("betting: unit_per_count must not be negative")
	}

	s := c.Strategy
	if set := countSet(s.Hard, s.Soft, s.Pairs); set != 0 && set != 3 {
		return fmt.Errorf("strategy: hard, soft and pairs must be set together")
	}

	if c.Simulation.Rounds < 1 {
		return fmt.Errorf("simulation: rounds must be positive, got %d", c.Simulation.Rounds)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be at least 1, got %d", c.Simulation.Workers)
	}
	if _, err := c.ProgressInterval(); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}
	if d, err := c.IdleTimeout(); err != nil {
		return err
	} else if d <= 0 {
		return fmt.Errorf("server: idle_timeout must be positive")
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns the parsed server idle timeout
func (c *Config) IdleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("server: invalid idle_timeout %q: %w", c.Server.IdleTimeout, err)
	}
	return d, nil
}

// ProgressInterval returns the parsed simulation progress interval. Zero
// disables progress logging.
func (c *Config) ProgressInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.ProgressInterval)
	if err != nil {
		return 0, fmt.Errorf("simulation: invalid progress_interval %q: %w", c.Simulation.ProgressInterval, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation: progress_interval must not be negative")
	}
	return d, nil
}

// LoadChart loads the configured strategy grids, or the built-in chart when
// none are configured. Relative paths resolve against the config file.
func (c *Config) LoadChart() (*strategy.Chart, error) {
	s := c.Strategy
	if countSet(s.Hard, s.Soft, s.Pairs) == 0 {
		return strategy.DefaultChart()
	}
	return strategy.LoadChartFiles(c.resolve(s.Hard), c.resolve(s.Soft), c.resolve(s.Pairs))
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
