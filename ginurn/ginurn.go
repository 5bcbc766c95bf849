// Package ginurn adapts URN validation to gin routes.
//
// Use [Param] as a route middleware to accept only well-formed URNs in a path parameter:
//
//	r.GET("/resources/:id", ginurn.Param("id"), func(c *gin.Context) {
//		u, _ := ginurn.FromContext(c)
//		c.String(http.StatusOK, u.String())
//	})
package ginurn

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"braces.dev/errtrace"
	"github.com/gin-gonic/gin"

	"github.com/ghettovoice/urn"
	"github.com/ghettovoice/urn/internal/log"
)

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination ../internal/testutil/urnmock/validator.go -package urnmock . Validator

// Validator turns a raw route value into a URN.
type Validator interface {
	Validate(ctx context.Context, raw string) (*urn.URN, error)
}

// ValidatorFunc is an adapter to use ordinary functions as a [Validator].
type ValidatorFunc func(ctx context.Context, raw string) (*urn.URN, error)

func (fn ValidatorFunc) Validate(ctx context.Context, raw string) (*urn.URN, error) {
	return errtrace.Wrap2(fn(ctx, raw))
}

// ModeValidator parses values with [urn.ParseWithMode].
type ModeValidator urn.Mode

func (v ModeValidator) Validate(_ context.Context, raw string) (*urn.URN, error) {
	return errtrace.Wrap2(urn.ParseWithMode(raw, urn.Mode(v)))
}

// IsWellFormedValue reports whether v is a string holding a well-formed URN in [urn.Unescaped] mode.
// Non-string and nil values are reported as not well-formed.
func IsWellFormedValue(v any) bool {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case *string:
		if v == nil {
			return false
		}
		s = *v
	default:
		return false
	}
	return urn.IsWellFormed(s, urn.Unescaped)
}

// routeValue returns the named route parameter, wildcard values lose the leading slash.
func routeValue(c *gin.Context, name string) string {
	return strings.TrimPrefix(c.Param(name), "/")
}

// Param returns a middleware that validates the named route parameter.
// A request with an invalid value is aborted with [http.StatusBadRequest],
// otherwise the parsed URN is stored in the context, see [FromContext].
func Param(name string, opts ...Option) gin.HandlerFunc {
	o := newOptions(opts)
	return func(c *gin.Context) {
		raw := routeValue(c, name)
		u, err := o.validator.Validate(c.Request.Context(), raw)
		if err != nil {
			o.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "route parameter is not a URN",
				slog.String("param", name),
				slog.Any("value", log.StringValue(raw)),
				slog.Any("error", err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"param": name,
			})
			return
		}

		o.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "route parameter accepted",
			slog.String("param", name),
			slog.Any("urn", u),
		)
		c.Set(o.key, u)
		c.Next()
	}
}

// Match returns a middleware that acts as a route constraint:
// a request whose named parameter is not a well-formed URN is aborted with [http.StatusNotFound].
func Match(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsWellFormedValue(routeValue(c, name)) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

// FromContext returns the URN stored by [Param] under [DefaultContextKey].
func FromContext(c *gin.Context) (*urn.URN, bool) {
	return FromContextKey(c, DefaultContextKey)
}

// FromContextKey returns the URN stored by [Param] under the key.
func FromContextKey(c *gin.Context, key string) (*urn.URN, bool) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	u, ok := v.(*urn.URN)
	return u, ok && u != nil
}
