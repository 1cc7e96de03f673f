// Package publish writes the dashboard snapshot to an external content
// store with optimistic concurrency: callers read the current revision and
// hand it back on write.
package publish

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrConflict is returned by Write when the stored revision no longer
// matches the one the caller read.
var ErrConflict = errors.New("publish: revision conflict")

type Target struct {
	Path   string
	Branch string
}

type Publisher interface {
	// Revision returns the current revision token of target. A missing
	// document is reported as found == false with a nil error.
	Revision(ctx context.Context, target Target) (revision string, found bool, err error)
	// Write replaces the document. An empty revision means create-only.
	Write(ctx context.Context, target Target, content []byte, message, revision string) (string, error)
}

// Nop skips publishing. Used when no publishing credentials are configured.
type Nop struct{}

func (Nop) Revision(ctx context.Context, target Target) (string, bool, error) {
	return "", false, nil
}

func (Nop) Write(ctx context.Context, target Target, content []byte, message, revision string) (string, error) {
	zerolog.Ctx(ctx).Warn().
		Str("path", target.Path).
		Int("bytes", len(content)).
		Msg("publishing credentials not configured, skipping push")
	return "", nil
}
