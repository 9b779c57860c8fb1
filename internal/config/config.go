package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/assistant/internal/book"
)

//go:embed schema.cue
var schemaCUE string

// Defaults.
const (
	DefaultDatabase  = "addressbook.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultEnvFile   = ".env"
)

// Environment variable names.
const (
	EnvDatabase  = "ASSISTANT_DB"
	EnvWindow    = "ASSISTANT_WINDOW"
	EnvLogLevel  = "ASSISTANT_LOG_LEVEL"
	EnvLogFormat = "ASSISTANT_LOG_FORMAT"
)

// Config holds the resolved settings.
type Config struct {
	// Database is the SQLite file holding the address book.
	Database string `yaml:"database" json:"database"`

	// Window is the upcoming-birthday look-ahead in days.
	Window int `yaml:"window" json:"window"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database:  DefaultDatabase,
		Window:    book.DefaultWindow,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// LoadOptions selects the files Load reads.
type LoadOptions struct {
	// File is an optional YAML config path. Empty means none.
	File string

	// EnvFile is the dotenv path. Empty means DefaultEnvFile.
	EnvFile string

	// Lookup reads environment variables. Nil means os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load resolves the configuration from defaults, file and environment.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return nil, err
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	// Real environment wins over .env.
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.mergeEnv(get); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// mergeEnv overlays ASSISTANT_* variables.
func (c *Config) mergeEnv(get func(string) (string, bool)) error {
	if v, ok := get(EnvDatabase); ok && v != "" {
		c.Database = v
	}
	if v, ok := get(EnvWindow); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWindow, v, err)
		}
		c.Window = n
	}
	if v, ok := get(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := get(EnvLogFormat); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	return nil
}

// Validate checks c against the embedded CUE schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", cueerrors.Details(err, nil))
	}
	return nil
}
