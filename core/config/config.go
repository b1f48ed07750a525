package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/tristendillon/easyroutes/core/logger"
	"gopkg.in/yaml.v3"
)

const FileName = "easyroutes.yaml"

type Config struct {
	SrcDir         string `yaml:"src_dir"`
	ComponentsDir  string `yaml:"components_dir"`
	Extension      string `yaml:"extension"`
	RoutesFile     string `yaml:"routes_file"`
	PackageManager string `yaml:"package_manager"`
	Watch          Watch  `yaml:"watch"`
}

type Watch struct {
	Include    []string `yaml:"include"`
	DebounceMS int      `yaml:"debounce_ms"`
}

var envOverrides = map[string]func(*Config, string){
	"EASYROUTES_EXTENSION":       func(c *Config, v string) { c.Extension = v },
	"EASYROUTES_SRC_DIR":         func(c *Config, v string) { c.SrcDir = v },
	"EASYROUTES_PACKAGE_MANAGER": func(c *Config, v string) { c.PackageManager = v },
	"EASYROUTES_ROUTES_FILE":     func(c *Config, v string) { c.RoutesFile = v },
}

func Default() *Config {
	return &Config{
		SrcDir:         "src",
		ComponentsDir:  "components",
		Extension:      "jsx",
		RoutesFile:     "routes.yaml",
		PackageManager: "npm",
		Watch: Watch{
			Include:    []string{},
			DebounceMS: 500,
		},
	}
}

// ComponentsRoot is the directory holding one folder per generated component.
func (c *Config) ComponentsRoot() string {
	return filepath.Join(c.SrcDir, c.ComponentsDir)
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

func (c *Config) Validate() error {
	switch c.Extension {
	case "jsx", "tsx":
	default:
		return fmt.Errorf("extension must be jsx or tsx, got %q", c.Extension)
	}

	switch c.PackageManager {
	case "npm", "pnpm", "yarn", "bun":
	default:
		return fmt.Errorf("package_manager must be one of npm, pnpm, yarn, bun, got %q", c.PackageManager)
	}

	if c.SrcDir == "" || c.ComponentsDir == "" || c.RoutesFile == "" {
		return fmt.Errorf("src_dir, components_dir and routes_file must not be empty")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}

// Load reads easyroutes.yaml from dir, falling back to Default, then applies
// overrides from dir/.env and the process environment (the latter wins).
func Load(dir string) (*Config, error) {
	cfg := Default()

	filePath := filepath.Join(dir, FileName)
	data, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		logger.Debug("No %s found, using default config", FileName)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		logger.Debug("Config file found: %s", filePath)
	}

	if err := applyEnv(cfg, filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Debug("Config: %+v", *cfg)
	return cfg, nil
}

func applyEnv(cfg *Config, envPath string) error {
	values := map[string]string{}
	if _, err := os.Stat(envPath); err == nil {
		read, err := godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", envPath, err)
		}
		values = read
		logger.Debug("Loaded overrides from %s", envPath)
	}

	for key, apply := range envOverrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			apply(cfg, v)
			continue
		}
		if v := values[key]; v != "" {
			apply(cfg, v)
		}
	}
	return nil
}
