//go:build linux

package mounts

import (
	"fmt"
	"os"

	"github.com/stratalab/fscap/internal/port"
)

const mountTablePath = "/proc/self/mounts"

// Entries returns the current mount table
func (m *Manager) Entries() ([]port.MountEntry, error) {
	f, err := os.Open(mountTablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open mount table: %w", err)
	}
	defer f.Close()

	return parseMountTable(f)
}
