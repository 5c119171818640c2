package domain

import (
	"time"
)

// Snapshot is one capacity measurement of one filesystem, taken
// during one scan sweep. CapacityBytes is the logical capacity
// derived by the extraction core; the statfs figures are recorded
// alongside it (when the filesystem was mounted) so operators can
// cross-check logical capacity against kernel-reported usage.
type Snapshot struct {
	ID            int64
	FilesystemID  int64
	ScanID        string
	CapacityBytes int64
	TotalBytes    *int64
	UsedBytes     *int64
	FreeBytes     *int64
	TakenAt       time.Time
}

// AgentStats summarizes the agent's stored state for the debug endpoint.
type AgentStats struct {
	Filesystems        int64      `json:"filesystems"`
	MountedFilesystems int64      `json:"mounted_filesystems"`
	Snapshots          int64      `json:"snapshots"`
	TotalCapacityBytes int64      `json:"total_capacity_bytes"`
	LastScanAt         *time.Time `json:"last_scan_at,omitempty"`
}
