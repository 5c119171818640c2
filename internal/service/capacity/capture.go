package capacity

import (
	"context"
	"fmt"

	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/port"
)

// captureTools names the introspection tool per filesystem kind.
var captureTools = map[domain.Kind]string{
	domain.KindExt2:     "dumpe2fs",
	domain.KindExt3:     "dumpe2fs",
	domain.KindExt4:     "dumpe2fs",
	domain.KindJFS:      "jfs_tune",
	domain.KindNTFS:     "ntfsinfo",
	domain.KindReiserFS: "debugreiserfs",
	domain.KindXFS:      "xfs_db",
}

// CaptureToolName returns the introspection tool for a kind, or false
// when the kind has none.
func CaptureToolName(kind domain.Kind) (string, bool) {
	name, ok := captureTools[kind]
	return name, ok
}

// captureArgv builds the introspection command for a kind. xfs_db is
// asked for exactly the superblock fields the size parser reads.
func captureArgv(kind domain.Kind, toolPath, device string) []string {
	switch kind {
	case domain.KindExt2, domain.KindExt3, domain.KindExt4:
		return []string{toolPath, "-h", device}
	case domain.KindJFS:
		return []string{toolPath, "-l", device}
	case domain.KindNTFS:
		return []string{toolPath, "-m", device}
	case domain.KindReiserFS:
		return []string{toolPath, device}
	case domain.KindXFS:
		return []string{toolPath, "-c", "sb 0", "-c", "p dblocks", "-c", "p blocksize", "-r", device}
	default:
		return nil
	}
}

// ReportCapture refreshes a filesystem's diagnostic report by running
// the format's introspection tool against its device.
type ReportCapture struct {
	fs   *domain.Filesystem
	tool port.Tool
	exec port.Executor
}

// Ensure ReportCapture implements Task
var _ Task = (*ReportCapture)(nil)

// NewReportCapture creates a ReportCapture task bound to one
// filesystem. Fails for kinds without an introspection tool.
func NewReportCapture(fs *domain.Filesystem, tools port.Toolbox, exec port.Executor) (*ReportCapture, error) {
	name, ok := CaptureToolName(fs.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no introspection tool", domain.ErrInvalidInput, fs.Kind)
	}
	return &ReportCapture{fs: fs, tool: tools.Tool(name), exec: exec}, nil
}

// Available reports whether the introspection tool was located.
func (t *ReportCapture) Available() bool {
	return t.tool.Available()
}

// Unavailable names the introspection tool when it cannot be located.
func (t *ReportCapture) Unavailable() string {
	if !t.tool.Available() {
		return fmt.Sprintf("application %s is not available", t.tool.Name())
	}
	return ""
}

// Unready reports when the filesystem has no device to introspect.
func (t *ReportCapture) Unready() string {
	if t.fs.Device == "" {
		return "filesystem has no device path"
	}
	return ""
}

// Unable is always clear: construction already rejected kinds without
// an introspection tool.
func (t *ReportCapture) Unable() string {
	return ""
}

// Capture runs the introspection tool and returns its report text.
// The caller decides whether to store it on the filesystem.
func (t *ReportCapture) Capture(ctx context.Context) (string, error) {
	if msg := Impossible(t); msg != "" {
		return "", domain.NewExtractionError(msg, nil)
	}

	path, err := t.tool.Path()
	if err != nil {
		return "", domain.NewExtractionError(
			fmt.Sprintf("application %s is not available", t.tool.Name()), err)
	}

	argv := captureArgv(t.fs.Kind, path, t.fs.Device)
	status, out, err := t.exec.Run(ctx, argv)
	if err != nil {
		return "", domain.NewExtractionError(
			fmt.Sprintf("failed to execute command %v", argv), err)
	}
	if status != 0 {
		return "", domain.NewExtractionError(
			fmt.Sprintf("failed to execute command %v", argv), nil)
	}
	return out, nil
}
