package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// History settings
	HistoryDir   string
	HistoryFile  string
	HistoryLimit int

	// Execution settings
	Processors int

	// Runner binaries
	Runners Runners

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Runners holds the binary used for each test runner
type Runners struct {
	Pytest  string
	Cargo   string
	Go      string
	PHPUnit string
}

// Flags holds command-line flags
type Flags struct {
	Full       bool
	Verbose    bool
	Debug      bool
	Processors int
	NameFilter string
	FileFilter string
	Table      bool
	FailFast   bool
	Run        bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:  DefaultProjectPath,
		HistoryDir:   DefaultHistoryDir,
		HistoryFile:  DefaultHistoryFile,
		HistoryLimit: DefaultHistoryLimit,
		Processors:   DefaultProcessors,
		Runners: Runners{
			Pytest:  DefaultPytest,
			Cargo:   DefaultCargo,
			Go:      DefaultGo,
			PHPUnit: DefaultPHPUnit,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config with defaults, reads the dotenv file at envFile into
// the environment and applies the TESTPICK_* overrides. A missing env file is
// not an error.
func Load(envFile string) (*Config, error) {
	cfg := New()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("TESTPICK_PYTEST", &c.Runners.Pytest)
	setString("TESTPICK_CARGO", &c.Runners.Cargo)
	setString("TESTPICK_GO", &c.Runners.Go)
	setString("TESTPICK_PHPUNIT", &c.Runners.PHPUnit)
	setString("TESTPICK_PROJECT_PATH", &c.ProjectPath)

	setInt := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
		}
		*dst = n
		return nil
	}
	if err := setInt("TESTPICK_PROCESSORS", &c.Processors); err != nil {
		return err
	}
	c.Flags.Processors = c.Processors
	return setInt("TESTPICK_HISTORY_LIMIT", &c.HistoryLimit)
}

// GetHistoryPath returns the absolute path of the run history file
func (c *Config) GetHistoryPath() string {
	p := filepath.Join(c.ProjectPath, c.HistoryDir, c.HistoryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetWorkers returns the worker count, preferring the flag when set
func (c *Config) GetWorkers() int {
	if c.Flags.Processors > 0 {
		return c.Flags.Processors
	}
	if c.Processors > 0 {
		return c.Processors
	}
	return 1
}
