//go:build windows

package mounts

import (
	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/port"
)

// Usage returns disk usage statistics for a mounted path
func (m *Manager) Usage(mountpoint string) (*port.DiskUsage, error) {
	return nil, domain.ErrUnsupportedHost
}
