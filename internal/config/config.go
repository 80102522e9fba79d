package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wintermist/mcpresence/internal/domain"
)

// MinRefreshRate is the fastest allowed poll cadence. Discord presence
// updates are rate limited, so anything quicker just burns the budget.
const MinRefreshRate = 30

// Config holds the application configuration. Key names match the
// config.yml layout the bot has always shipped with.
type Config struct {
	BotToken      string `yaml:"bot-token"`
	Prefix        string `yaml:"prefix"`
	ServerAddress string `yaml:"server-address"`
	ServerPort    int    `yaml:"server-port"`
	ServerType    string `yaml:"server-type"`
	RefreshRate   int    `yaml:"refresh-rate"` // seconds

	// Optional maintenance detection: a regular expression matched
	// against the chosen snapshot field (motd, version or any).
	MaintenancePattern string `yaml:"maintenance-pattern,omitempty"`
	MaintenanceField   string `yaml:"maintenance-field,omitempty"`

	// Optional channel ID for transition announcements.
	NotifyChannel string `yaml:"notify-channel,omitempty"`

	LogLevel string `yaml:"log-level,omitempty"`
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Prefix == "" {
		c.Prefix = ";"
	}
	if c.ServerType == "" {
		c.ServerType = string(domain.EditionJava)
	}
	if c.ServerPort == 0 {
		c.ServerPort = domain.Edition(c.ServerType).DefaultPort()
	}
	if c.RefreshRate == 0 {
		c.RefreshRate = 60
	}
	if c.MaintenanceField == "" {
		c.MaintenanceField = domain.MaintenanceFieldMOTD
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration. Any error here is fatal at
// startup, before the poll loop starts.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot-token is required (or set DISCORD_TOKEN)")
	}
	if c.ServerAddress == "" {
		return fmt.Errorf("server-address is required")
	}
	switch domain.Edition(c.ServerType) {
	case domain.EditionJava, domain.EditionBedrock:
	default:
		return fmt.Errorf("server-type must be either java or bedrock, got %q", c.ServerType)
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("server-port must be in 1-65535, got %d", c.ServerPort)
	}
	if c.RefreshRate < MinRefreshRate {
		return fmt.Errorf("refresh-rate must be %d or higher, got %d", MinRefreshRate, c.RefreshRate)
	}
	if _, err := domain.NewMaintenanceRule(c.MaintenancePattern, c.MaintenanceField); err != nil {
		return err
	}
	return nil
}

// Target builds the immutable probe target from the configuration.
func (c *Config) Target() domain.Target {
	return domain.Target{
		Address: c.ServerAddress,
		Port:    c.ServerPort,
		Edition: domain.Edition(c.ServerType),
	}
}

// MaintenanceRule compiles the configured maintenance predicate.
// Validate must have passed first.
func (c *Config) MaintenanceRule() (domain.MaintenanceRule, error) {
	return domain.NewMaintenanceRule(c.MaintenancePattern, c.MaintenanceField)
}

// PollInterval returns the refresh rate as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.RefreshRate) * time.Second
}

// Save writes the configuration as YAML, creating the file with owner
// only permissions since it holds the bot token.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
