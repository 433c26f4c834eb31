package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// BaseDir is the directory holding all site directories plus the
	// helper bin directory for the AppArmor-workaround daemon copies.
	BaseDir string `yaml:"base_dir"`

	// Port allocation range. Each site consumes a stride of PortStep
	// consecutive ports: base=HTTP, base+1=HTTPS, base+2=database.
	PortMin  int `yaml:"port_min"`
	PortMax  int `yaml:"port_max"`
	PortStep int `yaml:"port_step"`

	// Default service drivers used by install.
	WWWDriver string `yaml:"www_driver"`
	DBDriver  string `yaml:"db_driver"`

	// Binaries overrides daemon binary paths. Empty values fall back
	// to platform detection.
	Binaries Binaries `yaml:"binaries,omitempty"`
}

// Binaries holds optional daemon binary path overrides.
type Binaries struct {
	Apache2        string `yaml:"apache2,omitempty"`
	Mysqld         string `yaml:"mysqld,omitempty"`
	MysqlInstallDB string `yaml:"mysql_install_db,omitempty"`
	MysqlClient    string `yaml:"mysql,omitempty"`
	Postgres       string `yaml:"postgres,omitempty"`
	Initdb         string `yaml:"initdb,omitempty"`
}

// configDir is the default config directory
const configDir = ".config/dsm"
const configFile = "config.yaml"

// Default port range, stride 3: HTTP, HTTPS, database.
const (
	DefaultPortMin  = 10000
	DefaultPortMax  = 10100
	DefaultPortStep = 3
)

// New creates a new Config with default values.
// BaseDir defaults to ~/www, matching where developer sites live.
func New() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		BaseDir:   filepath.Join(home, "www"),
		PortMin:   DefaultPortMin,
		PortMax:   DefaultPortMax,
		PortStep:  DefaultPortStep,
		WWWDriver: "apache2",
		DBDriver:  "mysql",
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk.
// A missing config file yields the default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks port range consistency.
func (c *Config) Validate() error {
	if c.PortStep < 3 {
		return fmt.Errorf("port_step must be at least 3 (HTTP, HTTPS, database), got %d", c.PortStep)
	}
	if c.PortMin <= 0 || c.PortMax > 65535 {
		return fmt.Errorf("port range [%d, %d] out of bounds", c.PortMin, c.PortMax)
	}
	if c.PortMin+c.PortStep-1 > c.PortMax {
		return fmt.Errorf("port range [%d, %d] too narrow for a stride of %d", c.PortMin, c.PortMax, c.PortStep)
	}
	if c.BaseDir == "" {
		return fmt.Errorf("base_dir must not be empty")
	}
	return nil
}

// BinDir returns the helper bin directory under the base directory.
// The AppArmor workaround copies mysqld and mysql_install_db there.
func (c *Config) BinDir() string {
	return filepath.Join(c.BaseDir, "bin")
}
