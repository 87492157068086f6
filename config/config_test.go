// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogama/xhr"
	"github.com/gogama/xhr/syncbridge"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
headers:
  User-Agent: my-agent/1.0
  X-Custom: yes
disableHeaderCheck: true
tls:
  servername: example.com
  rejectUnauthorized: false
helper:
  path: /usr/local/bin/xhrsync
  args: [--quiet]
  logFile: /tmp/xhrsync.log
log:
  level: debug
  format: json
  maxSize: 5
`

func TestParse(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		c, err := Parse([]byte(sample), "sample.yaml")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"User-Agent": "my-agent/1.0", "X-Custom": "yes"}, c.Headers)
		assert.True(t, c.DisableHeaderCheck)
		require.NotNil(t, c.TLS)
		assert.Equal(t, "example.com", c.TLS.ServerName)
		require.NotNil(t, c.TLS.RejectUnauthorized)
		assert.False(t, *c.TLS.RejectUnauthorized)
		assert.Equal(t, Helper{Path: "/usr/local/bin/xhrsync", Args: []string{"--quiet"}, LogFile: "/tmp/xhrsync.log"}, c.Helper)
		assert.Equal(t, "debug", c.Log.Level)
		assert.Equal(t, FormatJSON, c.Log.Format)
		assert.Equal(t, 5, c.Log.MaxSize)
	})
	t.Run("empty", func(t *testing.T) {
		c, err := Parse(nil, "empty.yaml")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})
	t.Run("partial keeps defaults", func(t *testing.T) {
		c, err := Parse([]byte("log:\n  level: error\n"), "partial.yaml")
		require.NoError(t, err)
		assert.Equal(t, "error", c.Log.Level)
		assert.Equal(t, FormatConsole, c.Log.Format)
	})
	t.Run("errors", func(t *testing.T) {
		testCases := []struct {
			name string
			doc  string
		}{
			{"unknown field", "bogus: 1\n"},
			{"bad level", "log:\n  level: loud\n"},
			{"bad format", "log:\n  format: xml\n"},
			{"bad cipher", "tls:\n  ciphers: [NOPE]\n"},
			{"not yaml", "headers: [\n"},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := Parse([]byte(testCase.doc), "bad.yaml")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "xhr/config: bad.yaml: ")
			})
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(name, []byte("disableHeaderCheck: true\n"), 0o644))
		c, err := Load(name)
		require.NoError(t, err)
		assert.True(t, c.DisableHeaderCheck)
	})
	t.Run("missing path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
	t.Run("search", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "xhr.yaml"), []byte("log:\n  level: info\n"), 0o644))
		chdir(t, dir)
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "info", c.Log.Level)
	})
	t.Run("search finds nothing", func(t *testing.T) {
		chdir(t, t.TempDir())
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})
}

func TestConfig_Logger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		c := Default()
		c.Log.Format = FormatJSON
		c.Log.Level = "info"
		var buf bytes.Buffer
		logger := c.Logger(&buf)
		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"message":"shown"`)
	})
	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Default().Logger(&buf)
		logger.Warn().Msg("careful")
		assert.Contains(t, buf.String(), "careful")
		assert.NotContains(t, buf.String(), `"message"`)
	})
	t.Run("file", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "xhr.log")
		c := Default()
		c.Log.File = name
		var buf bytes.Buffer
		logger := c.Logger(&buf)
		logger.Error().Msg("to file")
		assert.Zero(t, buf.Len())
		b, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Contains(t, string(b), "to file")
	})
}

func TestConfig_Options(t *testing.T) {
	c, err := Parse([]byte(sample), "sample.yaml")
	require.NoError(t, err)

	s := c.Spawner()
	assert.Equal(t, "/usr/local/bin/xhrsync", s.Path)
	assert.Equal(t, []string{"--quiet"}, s.Args)
	assert.Equal(t, []string{syncbridge.LogFileEnv + "=/tmp/xhrsync.log"}, s.Env)

	h := c.DefaultHeaders()
	assert.Equal(t, "my-agent/1.0", h["user-agent"])
	assert.Equal(t, "yes", h["x-custom"])
	assert.Equal(t, "*/*", h["accept"])
	assert.Equal(t, "gogama-xhr", xhr.DefaultHeaders["user-agent"], "package defaults untouched")

	x := xhr.New(c.Options(zerolog.Nop())...)
	require.NoError(t, x.Open("GET", "http://example.com/"))
	assert.Equal(t, "my-agent/1.0", x.GetRequestHeader("User-Agent"))
	ok, err := x.SetRequestHeader("Cookie", "a=b")
	require.NoError(t, err)
	assert.True(t, ok, "header check disabled")
}

func TestHelperLogger(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(syncbridge.LogFileEnv, "")
		logger := HelperLogger()
		assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	})
	t.Run("set", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "xhrsync.log")
		t.Setenv(syncbridge.LogFileEnv, name)
		logger := HelperLogger()
		logger.Debug().Msg("helper record")
		b, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"message":"helper record"`)
		assert.Contains(t, string(b), `"pid":`)
	})
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
