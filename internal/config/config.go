package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/example/ankistats/internal/locator"
	"github.com/example/ankistats/internal/logger"
	"github.com/example/ankistats/pkg/models"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ANKI_EXPORT"

// DefaultOutputPath is where the export lands when nothing else is configured
var DefaultOutputPath = filepath.Join("data", "anki_data.json")

// Config holds the paths and options for one export run.
// Environment keys are ANKI_EXPORT_<FIELD>, e.g. ANKI_EXPORT_OUTPUT_PATH, ANKI_EXPORT_LOG_LEVEL.
type Config struct {
	DatabasePath string        `yaml:"database_path" split_words:"true"`
	OutputPath   string        `yaml:"output_path" split_words:"true"`
	ReportPath   string        `yaml:"report_path" split_words:"true"`
	Profile      string        `yaml:"profile"`
	Timezone     string        `yaml:"timezone"`
	Log          logger.Config `yaml:"log"`
}

// Options tells Load where to look for configuration
type Options struct {
	ConfigFile string // YAML file; falls back to ANKI_EXPORT_CONFIG
	EnvFile    string // dotenv file, ignored when missing
	Home       string // home directory used for default paths
	Overrides  Config // non-empty fields win over every other source
}

// Default returns the built-in configuration for home
func Default(home string) Config {
	return Config{
		DatabasePath: defaultDatabasePath(home, locator.DefaultProfile),
		OutputPath:   DefaultOutputPath,
		Profile:      locator.DefaultProfile,
		Timezone:     string(models.DateUTC),
		Log:          logger.DefaultConfig(),
	}
}

// Load resolves the configuration: defaults, YAML file, dotenv file,
// environment, then overrides
func Load(opts Options) (*Config, error) {
	cfg := Default(opts.Home)

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %v", opts.EnvFile, err)
		}
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		if err := loadFile(configFile, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %v", err)
	}

	cfg.apply(opts.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v", path, err)
	}
	return nil
}

func (c *Config) apply(o Config) {
	if o.DatabasePath != "" {
		c.DatabasePath = o.DatabasePath
	}
	if o.OutputPath != "" {
		c.OutputPath = o.OutputPath
	}
	if o.ReportPath != "" {
		c.ReportPath = o.ReportPath
	}
	if o.Profile != "" {
		c.Profile = o.Profile
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
	if o.Log.Encoding != "" {
		c.Log.Encoding = o.Log.Encoding
	}
}

// Validate checks the fields a run cannot do without
func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if !c.DateMode().Valid() {
		return fmt.Errorf("invalid timezone %q: want %q or %q", c.Timezone, models.DateUTC, models.DateLocal)
	}
	return nil
}

// DateMode returns the calendar used to group reviews
func (c *Config) DateMode() models.DateMode {
	return models.DateMode(c.Timezone)
}

// Candidates returns the fallback database locations for the configured profile
func (c *Config) Candidates(home string) []string {
	return locator.DefaultCandidates(home, c.Profile)
}

// defaultDatabasePath picks the conventional location for the running platform
func defaultDatabasePath(home, profile string) string {
	candidates := locator.DefaultCandidates(home, profile)
	switch runtime.GOOS {
	case "windows":
		return candidates[0]
	case "darwin":
		return candidates[1]
	default:
		return candidates[2]
	}
}

// ParseFlags reads command line arguments into load options
func ParseFlags(name string, args []string, output io.Writer) (Options, error) {
	var opts Options

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")
	fs.StringVar(&opts.Overrides.DatabasePath, "db", "", "path to the Anki collection.anki2")
	fs.StringVar(&opts.Overrides.OutputPath, "out", "", "destination JSON file")
	fs.StringVar(&opts.Overrides.ReportPath, "report", "", "optional destination XLSX report")
	fs.StringVar(&opts.Overrides.Profile, "profile", "", "Anki profile name used for auto-detection")
	fs.StringVar(&opts.Overrides.Timezone, "tz", "", "day boundaries: utc | local")
	fs.StringVar(&opts.Overrides.Log.Level, "log-level", "", "log level: debug | info | warn | error")
	fs.StringVar(&opts.Overrides.Log.Encoding, "log-encoding", "", "log encoding: console | json")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}
