// Package requestid carries a per-operation ULID through a context so the
// session guard and the HTTP client log and send the same ID.
package requestid

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type key struct{}

// New returns a fresh ULID string
func New() string {
	return ulid.Make().String()
}

// NewContext attaches id to ctx
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// FromContext returns the ID attached to ctx, or a fresh one
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(key{}).(string); ok && id != "" {
		return id
	}
	return New()
}
