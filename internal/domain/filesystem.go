package domain

import (
	"time"
)

// Filesystem represents one filesystem the agent watches. The
// diagnostic report is owned by this object: the capture task writes
// it, the size-extraction task only reads it. Absence of a report is
// a valid, checkable state distinct from an empty report.
type Filesystem struct {
	ID         int64
	Device     string
	Mountpoint string
	Kind       Kind
	Mounted    bool
	LastScanAt *time.Time
	LastError  string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	report    string
	hasReport bool
}

// NewFilesystem creates a Filesystem with no captured diagnostic report.
func NewFilesystem(device, mountpoint string, kind Kind) (*Filesystem, error) {
	if mountpoint == "" {
		return nil, ErrInvalidInput
	}
	if device == "" && kind.HasDiagnosticTool() {
		return nil, ErrInvalidInput
	}
	now := time.Now()
	return &Filesystem{
		Device:     device,
		Mountpoint: mountpoint,
		Kind:       kind,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// DiagnosticReport returns the captured report text and whether one
// has been captured at all.
func (f *Filesystem) DiagnosticReport() (string, bool) {
	return f.report, f.hasReport
}

// SetDiagnosticReport records freshly captured diagnostic text.
func (f *Filesystem) SetDiagnosticReport(text string) {
	f.report = text
	f.hasReport = true
	f.UpdatedAt = time.Now()
}

// ClearDiagnosticReport discards any captured report.
func (f *Filesystem) ClearDiagnosticReport() {
	f.report = ""
	f.hasReport = false
	f.UpdatedAt = time.Now()
}

// SetMounted updates the live mount state.
func (f *Filesystem) SetMounted(mounted bool, mountpoint string) {
	f.Mounted = mounted
	if mounted && mountpoint != "" {
		f.Mountpoint = mountpoint
	}
	f.UpdatedAt = time.Now()
}

// RecordScan notes the outcome of a scan sweep over this filesystem.
func (f *Filesystem) RecordScan(at time.Time, scanErr error) {
	f.LastScanAt = &at
	if scanErr != nil {
		f.LastError = scanErr.Error()
	} else {
		f.LastError = ""
	}
	f.UpdatedAt = time.Now()
}
