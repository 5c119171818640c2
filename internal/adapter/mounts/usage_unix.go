//go:build !windows
// +build !windows

package mounts

import (
	"fmt"
	"syscall"

	"github.com/stratalab/fscap/internal/port"
)

// Usage returns disk usage statistics for a mounted path
func (m *Manager) Usage(mountpoint string) (*port.DiskUsage, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(mountpoint, &stat); err != nil {
		return nil, fmt.Errorf("failed to get disk stats for %s: %w", mountpoint, err)
	}

	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	used := total - free

	usage := &port.DiskUsage{
		Total: total,
		Used:  used,
		Free:  free,
	}
	if total > 0 {
		usage.UsedPct = float64(used) / float64(total) * 100
	}
	return usage, nil
}
