// Package logr builds the process logger: a logr.Logger backed by a slog
// handler.
package logr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

const (
	DefaultFormat Format = "default"
	TextFormat    Format = "text"
	JSONFormat    Format = "json"
)

type (
	Config struct {
		Verbosity int
		Format    string
		// Output defaults to stdout.
		Output io.Writer
	}

	Format string
)

// AddFlags adds logging flags to the flagset. After the flagset is parsed
// the flags populate cfg.
func AddFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.IntVarP(&cfg.Verbosity, "verbosity", "v", 0, "Logging level")
	flags.StringVar(&cfg.Format, "log-format", string(DefaultFormat), "Logging format: default, text or json")
}

// New constructs a logger from the config.
func New(cfg Config) (logr.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level := toSlogLevel(cfg.Verbosity)

	var h slog.Handler
	switch Format(cfg.Format) {
	case DefaultFormat, "":
		h = &levelHandler{level: level, handler: slog.Default().Handler()}
	case TextFormat:
		h = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	case JSONFormat:
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	default:
		return logr.Logger{}, fmt.Errorf("unrecognised logging format: %s", cfg.Format)
	}
	return logr.FromSlogHandler(h), nil
}

// toSlogLevel converts a logr v-level to a slog level.
func toSlogLevel(verbosity int) slog.Level {
	if verbosity <= 0 {
		return slog.LevelInfo
	}
	return slog.Level(-4 - (verbosity - 1))
}

// levelHandler applies a minimum level to a handler that has none of its own,
// i.e. the slog default handler.
type levelHandler struct {
	level   slog.Leveler
	handler slog.Handler
}

func (h *levelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithGroup(name)}
}
