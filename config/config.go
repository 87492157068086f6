// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogama/xhr"
	"github.com/gogama/xhr/syncbridge"
	"github.com/gogama/xhr/transport"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// FileNames are the names Load looks for, in order, when it is not
// given a path.
var FileNames = []string{
	".xhr.yaml",
	".xhr.yml",
	"xhr.yaml",
	"xhr.yml",
}

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config is the top level of a configuration file.
type Config struct {
	// Headers are added to, or replace, xhr.DefaultHeaders.
	Headers            map[string]string     `yaml:"headers"`
	DisableHeaderCheck bool                  `yaml:"disableHeaderCheck"`
	TLS                *transport.TLSOptions `yaml:"tls"`
	Helper             Helper                `yaml:"helper"`
	Log                Log                   `yaml:"log"`
}

// Helper configures how synchronous requests run the helper process.
type Helper struct {
	// Path of the helper executable. Empty means syncbridge.DefaultHelper.
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`

	// LogFile, if set, is passed to the helper in the environment
	// variable syncbridge.LogFileEnv.
	LogFile string `yaml:"logFile"`
}

// Log configures the logger returned by Config.Logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`

	// File, if set, sends log records to a rotated file instead of the
	// writer passed to Logger. The remaining fields control rotation.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  zerolog.LevelWarnValue,
			Format: FormatConsole,
		},
	}
}

// Load reads the configuration file at path. If path is empty, Load
// looks for one of FileNames in the working directory and returns
// Default if there is none.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, name := range FileNames {
		_, err := os.Stat(name)
		if err == nil {
			return loadFile(name)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("xhr/config: %w", err)
		}
	}
	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xhr/config: %w", err)
	}
	return Parse(b, filepath.Base(path))
}

// Parse decodes a configuration document. Fields missing from the
// document keep their Default values. Unknown fields are an error.
// The name is used in error messages.
func Parse(b []byte, name string) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("xhr/config: %s: %w", name, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("xhr/config: %s: %w", name, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.TLS != nil {
		if _, err := c.TLS.Config(); err != nil {
			return err
		}
	}
	return nil
}

// Logger builds the logger described by the Log section. Records go
// to w unless a log file is configured.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}

	if c.Log.File != "" {
		w = &lumberjack.Logger{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSize,
			MaxBackups: c.Log.MaxBackups,
			MaxAge:     c.Log.MaxAge,
			Compress:   c.Log.Compress,
		}
	} else if c.Log.Format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Spawner returns the helper spawner described by the Helper section.
func (c *Config) Spawner() *syncbridge.ExecSpawner {
	s := &syncbridge.ExecSpawner{
		Path: c.Helper.Path,
		Args: c.Helper.Args,
	}
	if c.Helper.LogFile != "" {
		s.Env = []string{syncbridge.LogFileEnv + "=" + c.Helper.LogFile}
	}
	return s
}

// DefaultHeaders returns xhr.DefaultHeaders overlaid with the configured
// headers. Names are lower-cased.
func (c *Config) DefaultHeaders() map[string]string {
	h := make(map[string]string, len(xhr.DefaultHeaders)+len(c.Headers))
	for name, value := range xhr.DefaultHeaders {
		h[name] = value
	}
	for name, value := range c.Headers {
		h[strings.ToLower(name)] = value
	}
	return h
}

// Options returns the xhr options for a request logging to logger.
func (c *Config) Options(logger zerolog.Logger) []xhr.Option {
	opts := []xhr.Option{
		xhr.WithLogger(logger),
		xhr.WithDefaultHeaders(c.DefaultHeaders()),
		xhr.WithDisableHeaderCheck(c.DisableHeaderCheck),
		xhr.WithSpawner(c.Spawner()),
	}
	if c.TLS != nil {
		opts = append(opts, xhr.WithTLS(c.TLS))
	}
	return opts
}

// HelperLogger returns the logger for the helper process. It writes
// JSON records at debug level to the rotated file named by the
// environment variable syncbridge.LogFileEnv, and discards records if
// the variable is unset.
func HelperLogger() zerolog.Logger {
	name := os.Getenv(syncbridge.LogFileEnv)
	if name == "" {
		return zerolog.Nop()
	}

	w := &lumberjack.Logger{
		Filename:   name,
		MaxSize:    10,
		MaxBackups: 3,
	}
	return zerolog.New(w).With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}
