package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dadmoscow/xrandrctl/internal/logger"
)

// Defaults applied when no config file exists yet.
const (
	DefaultXrandrPath   = "xrandr"
	DefaultServerPort   = 8080
	DefaultLogLevel     = "info"
	DefaultPollInterval = 2000
)

// Config represents the application configuration
type Config struct {
	// XrandrPath is the xrandr executable, looked up on PATH when
	// not absolute.
	XrandrPath string `json:"xrandr_path" yaml:"xrandr_path" mapstructure:"xrandr_path"`

	// ServerPort is the HTTP API listen port for `serve`.
	ServerPort int `json:"server_port" yaml:"server_port" mapstructure:"server_port"`

	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// PollIntervalMS is how often the serve watcher re-queries the
	// display configuration, in milliseconds.
	PollIntervalMS int `json:"poll_interval_ms" yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
}

// Manager handles configuration
type Manager struct {
	configPath string
	config     *Config
	v          *viper.Viper
	mu         sync.RWMutex
}

// NewManager creates a new configuration manager. Pass an empty string
// to use the default path under ~/.config/xrandrctl.
func NewManager(configFile string) (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "xrandrctl")
	configPath := filepath.Join(configDir, "config.yaml")
	if configFile != "" {
		configPath = configFile
		configDir = filepath.Dir(configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetDefault("xrandr_path", DefaultXrandrPath)
	v.SetDefault("server_port", DefaultServerPort)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("poll_interval_ms", DefaultPollInterval)

	m := &Manager{
		configPath: configPath,
		v:          v,
	}

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			logger.WithComponent("config").Info().
				Str("path", configPath).
				Msg("Config file not found, creating new config")
			if err := m.sync(); err != nil {
				return nil, err
			}
			if err := m.Save(); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			return m, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := m.sync(); err != nil {
		return nil, err
	}

	logger.WithComponent("config").Debug().
		Str("path", configPath).
		Msg("Config loaded")

	return m, nil
}

// sync refreshes the cached Config struct from the viper settings.
func (m *Manager) sync() error {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.mu.Lock()
	m.config = &cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// GetViper returns the underlying viper instance for key-level access
func (m *Manager) GetViper() *viper.Viper {
	return m.v
}

// GetConfigPath returns the config file path
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// SetPort overrides the server port for this run
func (m *Manager) SetPort(port int) {
	m.v.Set("server_port", port)
	if err := m.sync(); err != nil {
		logger.WithComponent("config").Warn().Err(err).
			Msg("Config override not applied, keeping last good config")
	}
}

// SetLogLevel overrides the log level for this run
func (m *Manager) SetLogLevel(level string) {
	m.v.Set("log_level", level)
	if err := m.sync(); err != nil {
		logger.WithComponent("config").Warn().Err(err).
			Msg("Config override not applied, keeping last good config")
	}
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	if err := m.sync(); err != nil {
		return err
	}

	m.mu.RLock()
	data, err := yaml.Marshal(m.config)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
