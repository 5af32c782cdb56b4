package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"iconify/internal/imageops"
)

// Config represents the resolved settings for one run
type Config struct {
	InputDir    string        `mapstructure:"input_dir"`
	OutputDir   string        `mapstructure:"output_dir"`
	SizeSpec    string        `mapstructure:"size"`
	Method      string        `mapstructure:"method"`
	Force       bool          `mapstructure:"force"`
	AutoOrient  bool          `mapstructure:"auto_orient"`
	DryRun      bool          `mapstructure:"dry_run"`
	JPEGQuality int           `mapstructure:"jpeg_quality"`
	Verbose     int           `mapstructure:"verbose"`
	Logging     LoggingConfig `mapstructure:"logging"`

	// Resolved from SizeSpec and Method by Resolve.
	Size      Size               `mapstructure:"-"`
	Resampler imageops.Resampler `mapstructure:"-"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Format     string `mapstructure:"format"` // text or json
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		SizeSpec:    "64x64",
		Method:      "lanczos",
		JPEGQuality: imageops.DefaultJPEGQuality,
		Logging: LoggingConfig{
			Format:     "text",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"size":              "size",
	"method":            "method",
	"force":             "force",
	"verbose":           "verbose",
	"auto_orient":       "auto-orient",
	"dry_run":           "dry-run",
	"jpeg_quality":      "jpeg-quality",
	"logging.file_path": "log-file",
	"logging.format":    "log-format",
}

// BindFlags binds the CLI flags in fs to their config keys. Flags that were
// not set on the command line only act as defaults.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration from defaults, the config file, ICONIFY_*
// environment variables and bound flags, in increasing priority.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	config := DefaultConfig()
	setDefaults(v, config)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("iconify")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.iconify")
	}

	v.SetEnvPrefix("ICONIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.File = v.ConfigFileUsed()

	if err := config.Resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("input_dir", c.InputDir)
	v.SetDefault("output_dir", c.OutputDir)
	v.SetDefault("size", c.SizeSpec)
	v.SetDefault("method", c.Method)
	v.SetDefault("force", c.Force)
	v.SetDefault("auto_orient", c.AutoOrient)
	v.SetDefault("dry_run", c.DryRun)
	v.SetDefault("jpeg_quality", c.JPEGQuality)
	v.SetDefault("verbose", c.Verbose)
	v.SetDefault("logging.format", c.Logging.Format)
	v.SetDefault("logging.file_path", c.Logging.FilePath)
	v.SetDefault("logging.max_size", c.Logging.MaxSize)
	v.SetDefault("logging.max_backups", c.Logging.MaxBackups)
	v.SetDefault("logging.max_age", c.Logging.MaxAge)
	v.SetDefault("logging.compress", c.Logging.Compress)
}

// Resolve parses the size and method, fills in directory defaults and
// validates the result.
func (c *Config) Resolve() error {
	size, err := ParseSize(c.SizeSpec)
	if err != nil {
		return err
	}
	c.Size = size

	resampler, err := imageops.ParseResampler(c.Method)
	if err != nil {
		return err
	}
	c.Resampler = resampler

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "icons")
	}

	return c.Validate()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Size.Width <= 0 || c.Size.Height <= 0 {
		return fmt.Errorf("%w %s: width and height must be greater than zero", ErrInvalidSize, c.Size)
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg_quality: %d (valid: 1-100)", c.JPEGQuality)
	}

	if c.Verbose < 0 {
		return fmt.Errorf("invalid verbose level: %d", c.Verbose)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}

	return nil
}

// IgnoreExisting reports whether files that already have an icon are skipped.
func (c *Config) IgnoreExisting() bool {
	return !c.Force
}
