// Package log provides logging utilities.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/urn"
)

// Level is a level shared by all loggers built by this package.
var Level = new(slog.LevelVar)

// SetLevel parses the level name ("debug", "info", "warn", "error" or offsets like "info+2")
// and applies it to [Level].
func SetLevel(name string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return errtrace.Wrap(err)
	}
	Level.Set(lvl)
	return nil
}

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u *urn.URN) slog.Value {
		if u == nil {
			return slog.StringValue("")
		}
		return slog.GroupValue(
			slog.String("urn", u.String()),
			slog.String("nid", u.NID().String()),
			slog.String("nss", u.NSS().Unescaped()),
		)
	}),
	slogformatter.FormatByType(func(ps urn.Params) slog.Value {
		return slog.StringValue(ps.String())
	}),
)

// New returns a logger writing to w.
// The dev flag selects the colorized multi-line developer output.
func New(w io.Writer, dev bool) *slog.Logger {
	if dev {
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     Level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			Level:      Level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Def is a default logger.
var Def = New(os.Stderr, false)

// Dev is a developer logger.
var Dev = New(os.Stderr, true)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type stringValue[T ~string | ~[]byte] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T ~string | ~[]byte](v T) slog.LogValuer { return stringValue[T]{v} }
