package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Index   string       `yaml:"index"`
	Docs    DocsConfig   `yaml:"docs"`
	Output  OutputConfig `yaml:"output"`
	Server  ServerConfig `yaml:"server"`
	Daemon  DaemonConfig `yaml:"daemon"`
	History string       `yaml:"history,omitempty"` // run history database path, empty disables
	Strict  bool         `yaml:"strict"`
}

// DocsConfig locates the content catalog source: either a local directory or
// a git repository that gets cloned into a temp workspace before cataloging.
type DocsConfig struct {
	Path   string `yaml:"path,omitempty"`
	Repo   string `yaml:"repo,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	Depth  int    `yaml:"depth,omitempty"` // shallow clone depth, 0 = full
}

// OutputConfig represents render output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// ServerConfig configures the preview server and optional event publishing.
type ServerConfig struct {
	Port        int    `yaml:"port,omitempty"`
	NATSURL     string `yaml:"nats_url,omitempty"`
	NATSSubject string `yaml:"nats_subject,omitempty"`
}

// DaemonConfig configures watch/scheduled revalidation behaviour.
type DaemonConfig struct {
	RevalidateInterval time.Duration `yaml:"revalidate_interval,omitempty"`
	DebounceWindow     time.Duration `yaml:"debounce_window,omitempty"`
}

// IsRemote reports whether the docs source is a git repository.
func (d DocsConfig) IsRemote() bool { return d.Repo != "" }

// Load loads configuration from the specified file.
// A .env file alongside the process, when present, is loaded first so that
// ${VAR} expansion in the YAML can pick up its values.
func Load(configPath string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Index == "" {
		c.Index = "navigation.yaml"
	}
	if c.Docs.Path == "" && !c.Docs.IsRemote() {
		c.Docs.Path = "./docs"
	}
	if c.Docs.IsRemote() && c.Docs.Branch == "" {
		c.Docs.Branch = "main"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./site"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.NATSSubject == "" {
		c.Server.NATSSubject = "navbuilder.events"
	}
	if c.Daemon.RevalidateInterval == 0 {
		c.Daemon.RevalidateInterval = 10 * time.Minute
	}
	if c.Daemon.DebounceWindow == 0 {
		c.Daemon.DebounceWindow = 400 * time.Millisecond
	}
	if c.History == "" {
		c.History = filepath.Join(".navbuilder", "history.db")
	}
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Index: "navigation.yaml",
		Docs: DocsConfig{
			Path: "./docs",
		},
		Output: OutputConfig{
			Directory: "./site",
			Clean:     true,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Strict: true,
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
