package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the project root.
const FileName = "buildforge.yaml"

// Config represents the project-wide configuration loaded from the root path.
type Config struct {
	Builder       BuilderConfig        `yaml:"builder"`
	Notifications *NotificationsConfig `yaml:"notifications,omitempty"`
}

// BuilderConfig controls how the external build tool is invoked.
type BuilderConfig struct {
	// Command is the build tool executable. Defaults to "make".
	Command string `yaml:"command,omitempty"`

	// CleanGoal is the goal invoked before a clean build. Defaults to "clean".
	CleanGoal string `yaml:"clean_goal,omitempty"`

	// DefaultConfiguration is used when no --configuration flag is given.
	DefaultConfiguration string `yaml:"default_configuration,omitempty"`

	// Env lists extra KEY=VALUE pairs passed to every build invocation.
	Env []string `yaml:"env,omitempty"`
}

// NotificationsConfig enables publishing run outcomes to NATS (watch mode).
type NotificationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Load loads configuration from the project root. A missing file yields the
// defaults; a malformed file is an error that propagates to the caller.
func Load(rootPath string) (*Config, error) {
	// Load .env files first so env expansion below sees them. Existing
	// process environment wins; a missing .env is not an error.
	loadEnvFiles(rootPath)

	cfgPath := filepath.Join(rootPath, FileName)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Builder.Command == "" {
		c.Builder.Command = "make"
	}
	if c.Builder.CleanGoal == "" {
		c.Builder.CleanGoal = "clean"
	}
	if c.Notifications != nil && c.Notifications.Subject == "" {
		c.Notifications.Subject = "buildforge.runs"
	}
}

func (c *Config) validate() error {
	if c.Notifications != nil && c.Notifications.Enabled && c.Notifications.NATSURL == "" {
		return fmt.Errorf("notifications enabled but nats_url is empty")
	}
	return nil
}

// loadEnvFiles loads .env/.env.local from the root, first match wins.
// godotenv never overrides variables already present in the environment.
func loadEnvFiles(rootPath string) {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(filepath.Join(rootPath, name)); err == nil {
			return
		}
	}
}
