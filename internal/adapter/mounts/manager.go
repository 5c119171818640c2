package mounts

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/stratalab/fscap/internal/port"
)

// Manager resolves mount state from the host's mount table. The table
// is re-read on every call: mount changes are not observable through
// file notification, so there is nothing worth caching.
type Manager struct{}

// Ensure Manager implements port.MountTable
var _ port.MountTable = (*Manager)(nil)

// NewManager creates a new mount table Manager
func NewManager() *Manager {
	return &Manager{}
}

// Resolve finds the mount entry for a filesystem, matching by device
// or, for virtual filesystems without one, by mountpoint. Returns nil
// when the filesystem is not mounted.
func (m *Manager) Resolve(device, mountpoint string) (*port.MountEntry, error) {
	entries, err := m.Entries()
	if err != nil {
		return nil, err
	}
	return resolveEntry(entries, device, mountpoint), nil
}

func resolveEntry(entries []port.MountEntry, device, mountpoint string) *port.MountEntry {
	for i := range entries {
		e := &entries[i]
		if device != "" && e.Device == device {
			return e
		}
		if device == "" && e.Mountpoint == mountpoint {
			return e
		}
	}
	return nil
}

// parseMountTable reads mount table rows in /proc/self/mounts format:
// device mountpoint fstype options dump pass.
func parseMountTable(r io.Reader) ([]port.MountEntry, error) {
	var entries []port.MountEntry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		entries = append(entries, port.MountEntry{
			Device:     unescapeMountPath(fields[0]),
			Mountpoint: unescapeMountPath(fields[1]),
			Kind:       fields[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// unescapeMountPath decodes the octal escapes (\040 for space, \011
// for tab, ...) the kernel uses in mount table paths.
func unescapeMountPath(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
