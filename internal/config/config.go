package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"fileseek/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version       int                 `toml:"version"`
	DefaultRoots  []string            `toml:"default_roots"`
	CaseSensitive bool                `toml:"case_sensitive"`
	Workers       int                 `toml:"workers"` // 0 = auto-size from core count
	Presets       map[string][]string `toml:"presets"` // preset name -> extensions
	UISettings    UISettings          `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowFullPaths bool `toml:"show_full_paths"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	fileseekDir := filepath.Join(configDir, "fileseek")
	os.MkdirAll(fileseekDir, 0755)

	return &configService{
		filePath: filepath.Join(fileseekDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{DefaultRoots: cfg.DefaultRoots})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{DefaultRoots: cfg.DefaultRoots})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Initialize maps if nil and backfill the built-in presets
	if cfg.Presets == nil {
		cfg.Presets = defaultPresets()
	}
	if len(cfg.DefaultRoots) == 0 {
		cfg.DefaultRoots = defaultRoots()
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:      1,
		DefaultRoots: defaultRoots(),
		Workers:      0,
		Presets:      defaultPresets(),
		UISettings: UISettings{
			ShowFullPaths: true,
		},
	}
}

func defaultRoots() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return []string{homeDir}
}

// defaultPresets are the built-in extension filter presets offered in
// the UI. "All" is the absence of a filter and is not listed here.
func defaultPresets() map[string][]string {
	return map[string][]string{
		"Images":    {"png", "jpg", "jpeg", "gif", "bmp", "webp"},
		"Documents": {"pdf", "doc", "docx", "xls", "xlsx", "txt", "odt"},
		"Code":      {"py", "js", "java", "cpp", "c", "h", "cs", "ts", "rb", "go", "rs", "html", "css"},
	}
}
