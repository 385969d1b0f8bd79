// Package config provides configuration types and defaults for promptline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/promptline/internal/log"
)

// Config holds all configuration options for promptline.
type Config struct {
	Prompt  PromptConfig  `mapstructure:"prompt" yaml:"prompt"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// PromptConfig holds input line options.
type PromptConfig struct {
	Multiline   bool   `mapstructure:"multiline" yaml:"multiline"`     // Shift+Return (alt+enter) inserts a newline
	Symbol      string `mapstructure:"symbol" yaml:"symbol"`           // Drawn before the buffer
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"` // Shown while the buffer is empty
}

// HistoryConfig holds history persistence options.
type HistoryConfig struct {
	// Path is the SQLite file. Empty keeps history in memory only.
	Path string `mapstructure:"path" yaml:"path"`

	// Limit caps stored entries; 0 means unlimited.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// Share reloads entries written by other promptline processes.
	Share bool `mapstructure:"share" yaml:"share"`

	// Debounce delays reloads after the database changes.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Markdown      bool   `mapstructure:"markdown" yaml:"markdown"`             // Render transcript entries as markdown
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
	Width         int    `mapstructure:"width" yaml:"width"`                   // Wrap width; 0 follows the window
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/promptline/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`

	// ServiceName is reported as service.name.
	// Default: "promptline"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// MarshalYAML writes Debounce as a duration string instead of nanoseconds.
func (h HistoryConfig) MarshalYAML() (any, error) {
	return struct {
		Path     string `yaml:"path"`
		Limit    int    `yaml:"limit"`
		Share    bool   `yaml:"share"`
		Debounce string `yaml:"debounce"`
	}{h.Path, h.Limit, h.Share, h.Debounce.String()}, nil
}

// DefaultDir returns ~/.config/promptline, or "" if the home dir is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "promptline")
}

// DefaultHistoryPath returns the default history database path.
func DefaultHistoryPath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Prompt: PromptConfig{
			Multiline: false,
			Symbol:    "> ",
		},
		History: HistoryConfig{
			Path:     DefaultHistoryPath(),
			Limit:    1000,
			Share:    true,
			Debounce: 250 * time.Millisecond,
		},
		UI: UIConfig{
			Markdown:      true,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "promptline",
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateHistory(cfg.History); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateHistory checks history configuration for errors.
func ValidateHistory(h HistoryConfig) error {
	if h.Limit < 0 {
		return fmt.Errorf("history.limit must be >= 0, got %d", h.Limit)
	}
	if h.Debounce < 0 {
		return fmt.Errorf("history.debounce must be >= 0, got %s", h.Debounce)
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	if ui.Width < 0 {
		return fmt.Errorf("ui.width must be >= 0, got %d", ui.Width)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# promptline configuration

# Input line
prompt:
  multiline: false   # alt+enter / shift+enter inserts a newline
  symbol: "> "       # Drawn before the input
  # placeholder: "Type a message"

# Prompt history
history:
  # path: ~/.config/promptline/history.db  # SQLite file (default shown)
  limit: 1000        # Entries kept; 0 = unlimited
  share: true        # Pick up entries submitted in other promptline windows
  debounce: 250ms    # Delay before reloading after the database changes

# Transcript rendering
ui:
  markdown: true         # Render submitted entries as markdown
  markdown_style: dark   # "dark" (default) or "light"
  width: 0               # Wrap width; 0 follows the terminal

# Distributed tracing of submits
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/promptline/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#   service_name: promptline
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
