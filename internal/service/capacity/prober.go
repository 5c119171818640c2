package capacity

import (
	"context"

	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/domain/vo"
	"github.com/stratalab/fscap/internal/port"
)

// Prober binds the extraction tasks for one filesystem: a size task
// selected by kind, plus a report-capture task for kinds with an
// introspection tool. A Prober serves exactly one filesystem object
// and holds no state between calls.
type Prober struct {
	fs      *domain.Filesystem
	size    SizeTask
	capture *ReportCapture
}

// NewProber wires the right tasks for the filesystem's kind.
func NewProber(fs *domain.Filesystem, tools port.Toolbox, exec port.Executor) (*Prober, error) {
	p := &Prober{fs: fs}

	if fs.Kind.HasDiagnosticTool() {
		size, err := NewReportSize(fs)
		if err != nil {
			return nil, err
		}
		capture, err := NewReportCapture(fs, tools, exec)
		if err != nil {
			return nil, err
		}
		p.size = size
		p.capture = capture
	} else {
		p.size = NewMountedSize(fs, tools.Tool("df"), exec)
	}

	return p, nil
}

// SizeTask returns the size task the prober selected.
func (p *Prober) SizeTask() SizeTask {
	return p.size
}

// Probe measures the filesystem's capacity. When the kind has an
// introspection tool and a capture is currently possible, the
// diagnostic report is refreshed first; otherwise any previously
// captured report is used as-is.
func (p *Prober) Probe(ctx context.Context) (vo.Size, error) {
	if p.capture != nil && Impossible(p.capture) == "" {
		report, err := p.capture.Capture(ctx)
		if err != nil {
			return vo.Size{}, err
		}
		p.fs.SetDiagnosticReport(report)
	}
	return p.size.Measure(ctx)
}
