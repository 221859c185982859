package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.json"

	// DefaultPort is the default playground server port.
	DefaultPort = 7070

	// DefaultHost is the default playground server host.
	DefaultHost = "localhost"

	// DefaultDebounce is the default delay before a changed document is
	// re-rendered.
	DefaultDebounce = "100ms"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vtree"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "vtree"
)

// Config represents the complete vtree.json configuration.
type Config struct {
	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Server contains playground server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Watch contains document watcher configuration.
	Watch WatchConfig `json:"watch,omitempty"`

	// S3 contains settings for s3:// document sources.
	S3 S3Config `json:"s3,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `json:"level,omitempty"`

	// Format is text or json (default: text).
	Format string `json:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers reconciler metrics and serves /metrics.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace (default: "vtree").
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled turns on spans for mount, update and commit.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName is the tracer name (default: "vtree").
	TracerName string `json:"tracerName,omitempty"`
}

// ServerConfig contains playground server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// MaxDocumentBytes limits the size of posted documents (default: 1 MiB).
	MaxDocumentBytes int64 `json:"maxDocumentBytes,omitempty"`
}

// WatchConfig contains document watcher settings.
type WatchConfig struct {
	// Debounce is the delay after the last change before re-rendering
	// (e.g., "100ms").
	Debounce string `json:"debounce,omitempty"`

	// Ignore contains glob patterns of files to ignore.
	Ignore []string `json:"ignore,omitempty"`
}

// S3Config contains settings for loading documents from S3.
type S3Config struct {
	// Region is the AWS region (default: AWS_REGION or us-east-1).
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for vtree.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No vtree.json found in " + filepath.Dir(path)).
				WithSuggestion("Create vtree.json or run 'vtree init'")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse vtree.json: " + err.Error()).
			WithSuggestion("Check that vtree.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Metrics and tracing
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxDocumentBytes == 0 {
		c.Server.MaxDocumentBytes = 1 << 20
	}

	// Watch
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Watch.Ignore == nil {
		c.Watch.Ignore = []string{".*", "*~", "*.swp"}
	}

	// S3
	if c.S3.Region == "" {
		c.S3.Region = os.Getenv("AWS_REGION")
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E120").
			WithDetailf("unknown log level %q", c.Log.Level).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E120").
			WithDetailf("unknown log format %q", c.Log.Format).
			WithSuggestion("Use text or json")
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d < 0 {
		return errors.New("E120").
			WithDetailf("invalid watch debounce %q", c.Watch.Debounce)
	}
	if c.Server.MaxDocumentBytes < 0 {
		return errors.New("E120").
			WithDetail("maxDocumentBytes must not be negative")
	}
	return nil
}

// Address returns the address string for the playground server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// DebounceDuration returns the watch debounce as a duration.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 100 * time.Millisecond
	}
	return d
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vtree.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No vtree.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory,
// falling back to defaults when no vtree.json exists.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "E141") {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}
