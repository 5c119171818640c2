package domain

import (
	"fmt"
	"strings"
)

// Kind identifies an on-disk filesystem format.
type Kind string

// Supported filesystem kinds
const (
	KindExt2     Kind = "ext2"
	KindExt3     Kind = "ext3"
	KindExt4     Kind = "ext4"
	KindJFS      Kind = "jfs"
	KindNTFS     Kind = "ntfs"
	KindReiserFS Kind = "reiserfs"
	KindXFS      Kind = "xfs"
	KindTmpFS    Kind = "tmpfs"
)

// allKinds lists every kind the agent knows how to measure.
var allKinds = []Kind{
	KindExt2, KindExt3, KindExt4,
	KindJFS, KindNTFS, KindReiserFS, KindXFS,
	KindTmpFS,
}

// ParseKind converts a configuration string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds returns all supported filesystem kinds.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// HasDiagnosticTool reports whether the kind has a format-specific
// introspection tool producing a structured diagnostic report. Kinds
// without one (tmpfs) are measured through a live mount-point query
// instead.
func (k Kind) HasDiagnosticTool() bool {
	return k != KindTmpFS
}

// String returns the kind name
func (k Kind) String() string {
	return string(k)
}
