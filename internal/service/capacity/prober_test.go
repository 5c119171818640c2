package capacity

import (
	"context"
	"testing"

	"github.com/stratalab/fscap/internal/domain"
)

func TestProber_ProbeRefreshesReport(t *testing.T) {
	fs := newTestFS(t, domain.KindExt4, "")
	exec := &fakeExecutor{stdout: "Block count: 262144\nBlock size: 4096\n"}

	p, err := NewProber(fs, newFakeToolbox("dumpe2fs"), exec)
	if err != nil {
		t.Fatalf("NewProber() error: %v", err)
	}

	size, err := p.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error: %v", err)
	}
	if want := int64(262144) * 4096; size.Bytes() != want {
		t.Errorf("Probe() = %d bytes, want %d", size.Bytes(), want)
	}

	if _, ok := fs.DiagnosticReport(); !ok {
		t.Error("Probe() should store the captured report on the filesystem")
	}
}

func TestProber_ProbeUsesExistingReportWhenToolMissing(t *testing.T) {
	fs := newTestFS(t, domain.KindXFS, "blocksize = 4096\ndblocks = 131072\n")
	exec := &fakeExecutor{}

	// xfs_db is absent, so capture is skipped and the previously
	// captured report is parsed as-is.
	p, err := NewProber(fs, newFakeToolbox(), exec)
	if err != nil {
		t.Fatalf("NewProber() error: %v", err)
	}

	size, err := p.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error: %v", err)
	}
	if want := int64(4096) * 131072; size.Bytes() != want {
		t.Errorf("Probe() = %d bytes, want %d", size.Bytes(), want)
	}
	if len(exec.calls) != 0 {
		t.Error("no process should run when the introspection tool is missing")
	}
}

func TestProber_TmpFSUsesMountedSize(t *testing.T) {
	fs := newTmpFS(t, true)
	exec := &fakeExecutor{stdout: "1K-blocks\n2048\n"}

	p, err := NewProber(fs, newFakeToolbox("df"), exec)
	if err != nil {
		t.Fatalf("NewProber() error: %v", err)
	}

	if _, ok := p.SizeTask().(*MountedSize); !ok {
		t.Fatalf("SizeTask() = %T, want *MountedSize", p.SizeTask())
	}

	size, err := p.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe() error: %v", err)
	}
	if want := int64(2048) * 1024; size.Bytes() != want {
		t.Errorf("Probe() = %d bytes, want %d", size.Bytes(), want)
	}
}

func TestProber_CaptureFailureAborts(t *testing.T) {
	fs := newTestFS(t, domain.KindExt4, "Block count: 1\nBlock size: 4096\n")
	exec := &fakeExecutor{status: 8}

	p, err := NewProber(fs, newFakeToolbox("dumpe2fs"), exec)
	if err != nil {
		t.Fatalf("NewProber() error: %v", err)
	}

	_, err = p.Probe(context.Background())
	if err == nil {
		t.Fatal("Probe() should surface the capture failure")
	}
	if !domain.IsExtractionError(err) {
		t.Errorf("error should be an ExtractionError, got %T", err)
	}
}
