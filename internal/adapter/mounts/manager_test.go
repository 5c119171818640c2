package mounts

import (
	"strings"
	"testing"

	"github.com/stratalab/fscap/internal/port"
)

const sampleMountTable = `/dev/sda1 / ext4 rw,relatime 0 0
/dev/sdb1 /data/my\040disk xfs rw,noatime 0 0
tmpfs /tmp tmpfs rw,nosuid,nodev 0 0
proc /proc proc rw 0 0
malformed-line
`

func TestParseMountTable(t *testing.T) {
	entries, err := parseMountTable(strings.NewReader(sampleMountTable))
	if err != nil {
		t.Fatalf("parseMountTable() error: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	want := []port.MountEntry{
		{Device: "/dev/sda1", Mountpoint: "/", Kind: "ext4"},
		{Device: "/dev/sdb1", Mountpoint: "/data/my disk", Kind: "xfs"},
		{Device: "tmpfs", Mountpoint: "/tmp", Kind: "tmpfs"},
		{Device: "proc", Mountpoint: "/proc", Kind: "proc"},
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestResolveEntry(t *testing.T) {
	entries, err := parseMountTable(strings.NewReader(sampleMountTable))
	if err != nil {
		t.Fatalf("parseMountTable() error: %v", err)
	}

	tests := []struct {
		name       string
		device     string
		mountpoint string
		wantMount  string
	}{
		{"match by device", "/dev/sda1", "/ignored", "/"},
		{"escaped path match", "/dev/sdb1", "", "/data/my disk"},
		{"virtual fs by mountpoint", "", "/tmp", "/tmp"},
		{"not mounted", "/dev/sdz9", "", ""},
		{"virtual fs not mounted", "", "/run/absent", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEntry(entries, tt.device, tt.mountpoint)
			if tt.wantMount == "" {
				if got != nil {
					t.Errorf("resolveEntry() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("resolveEntry() = nil, want a match")
			}
			if got.Mountpoint != tt.wantMount {
				t.Errorf("Mountpoint = %q, want %q", got.Mountpoint, tt.wantMount)
			}
		})
	}
}

func TestUnescapeMountPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", "/data/plain", "/data/plain"},
		{"space", `/data/my\040disk`, "/data/my disk"},
		{"tab", `/data/a\011b`, "/data/a\tb"},
		{"trailing backslash kept", `/data/odd\`, `/data/odd\`},
		{"invalid octal kept", `/data/x\9zz`, `/data/x\9zz`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unescapeMountPath(tt.input); got != tt.want {
				t.Errorf("unescapeMountPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
