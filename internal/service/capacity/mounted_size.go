package capacity

import (
	"context"
	"fmt"
	"strings"

	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/domain/vo"
	"github.com/stratalab/fscap/internal/port"
)

// dfHeader is the single header line df emits for a size-only,
// kibibyte-scaled report.
const dfHeader = "1K-blocks"

// MountedSize measures capacity for kinds without a structured
// diagnostic report by running df against the live mount point.
type MountedSize struct {
	fs   *domain.Filesystem
	df   port.Tool
	exec port.Executor
}

// Ensure MountedSize implements SizeTask
var _ SizeTask = (*MountedSize)(nil)

// NewMountedSize creates a MountedSize task bound to one filesystem.
func NewMountedSize(fs *domain.Filesystem, df port.Tool, exec port.Executor) *MountedSize {
	return &MountedSize{fs: fs, df: df, exec: exec}
}

// Available reports whether the df executable was located.
func (t *MountedSize) Available() bool {
	return t.df.Available()
}

// Unavailable names the df executable when it cannot be located.
func (t *MountedSize) Unavailable() string {
	if !t.df.Available() {
		return fmt.Sprintf("application %s is not available", t.df.Name())
	}
	return ""
}

// Unready reports when there is no live mount point to query.
func (t *MountedSize) Unready() string {
	if !t.fs.Mounted {
		return "filesystem is not mounted"
	}
	return ""
}

// Unable is always clear: beyond availability and readiness this path
// has no structurally impossible state.
func (t *MountedSize) Unable() string {
	return ""
}

// sizeCommand builds the df invocation for the mount point.
func (t *MountedSize) sizeCommand() ([]string, error) {
	path, err := t.df.Path()
	if err != nil {
		return nil, err
	}
	return []string{path, t.fs.Mountpoint, "--output=size"}, nil
}

// Measure runs df and parses its fixed two-line output.
func (t *MountedSize) Measure(ctx context.Context) (vo.Size, error) {
	if msg := Impossible(t); msg != "" {
		return vo.Size{}, domain.NewExtractionError(msg, nil)
	}

	argv, err := t.sizeCommand()
	if err != nil {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("application %s is not available", t.df.Name()), err)
	}

	status, out, err := t.exec.Run(ctx, argv)
	if err != nil {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("failed to execute command %v", argv), err)
	}
	if status != 0 {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("failed to execute command %v", argv), nil)
	}

	lines := splitLines(out)
	if len(lines) != 2 || strings.TrimSpace(lines[0]) != dfHeader {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("failed to parse output of command %v", argv), nil)
	}

	size, err := vo.ParseSize(strings.TrimSpace(lines[1]) + " KiB")
	if err != nil {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("failed to parse output of command %v", argv), err)
	}
	return size, nil
}
