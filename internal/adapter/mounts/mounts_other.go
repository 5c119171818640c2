//go:build !linux

package mounts

import (
	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/port"
)

// Entries returns the current mount table
func (m *Manager) Entries() ([]port.MountEntry, error) {
	return nil, domain.ErrUnsupportedHost
}
