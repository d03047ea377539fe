package logr

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var got bytes.Buffer
		logger, err := New(Config{Format: "json", Output: &got})
		require.NoError(t, err)

		logger.Info("something", "foo", "bar")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(got.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "something", entry["msg"])
		assert.Equal(t, "bar", entry["foo"])
	})

	t.Run("error", func(t *testing.T) {
		var got bytes.Buffer
		logger, err := New(Config{Format: "text", Output: &got})
		require.NoError(t, err)

		logger.Error(errors.New("woops"), "spilt me beer")

		assert.Contains(t, got.String(), "level=ERROR")
		assert.Contains(t, got.String(), "err=woops")
	})

	t.Run("hide debug", func(t *testing.T) {
		var got bytes.Buffer
		logger, err := New(Config{Format: "text", Output: &got})
		require.NoError(t, err)

		logger.V(1).Info("should not see this")

		assert.Empty(t, got.String())
	})

	t.Run("show debug", func(t *testing.T) {
		var got bytes.Buffer
		logger, err := New(Config{Format: "text", Verbosity: 1, Output: &got})
		require.NoError(t, err)

		logger.V(1).Info("something")

		assert.True(t, strings.HasPrefix(got.String(), "time="))
		assert.Contains(t, got.String(), "level=DEBUG")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New(Config{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestAddFlags(t *testing.T) {
	fs := pflag.NewFlagSet("testing", pflag.ContinueOnError)
	var cfg Config
	AddFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"-v", "2", "--log-format", "json"}))
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, "json", cfg.Format)
}
