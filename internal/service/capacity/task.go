// Package capacity derives the logical capacity of a filesystem,
// either from a captured diagnostic report or by querying a live
// mount point through an external disk-usage command.
package capacity

import (
	"context"

	"github.com/stratalab/fscap/internal/domain/vo"
)

// Task is the readiness contract shared by all extraction tasks.
// Each observation is cheap and side-effect free; execution evaluates
// Impossible first and refuses to do any work when it is non-empty.
type Task interface {
	// Available reports whether the mechanism the task needs (a
	// parser, an external executable) exists in the environment at
	// all, independent of any particular filesystem.
	Available() bool

	// Unavailable returns a message naming the missing mechanism, or
	// "" when Available.
	Unavailable() string

	// Unready returns a message when the bound filesystem is not
	// currently in a state permitting the task (not mounted, no
	// captured report), or "".
	Unready() string

	// Unable returns a message when the task is structurally
	// impossible for the bound filesystem regardless of mount state,
	// or "".
	Unable() string
}

// SizeTask measures a filesystem's logical capacity.
type SizeTask interface {
	Task

	// Measure returns the filesystem's capacity. It fails with a
	// *domain.ExtractionError when the task is impossible or the
	// underlying data cannot be parsed.
	Measure(ctx context.Context) (vo.Size, error)
}

// Impossible returns the first applicable failure reason, checking
// Unavailable, then Unready, then Unable. An empty result means the
// task may proceed.
func Impossible(t Task) string {
	if msg := t.Unavailable(); msg != "" {
		return msg
	}
	if msg := t.Unready(); msg != "" {
		return msg
	}
	if msg := t.Unable(); msg != "" {
		return msg
	}
	return ""
}
