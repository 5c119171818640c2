package port

// DiskUsage represents disk usage statistics for a mounted filesystem
type DiskUsage struct {
	Total   uint64  // Total disk space in bytes
	Used    uint64  // Used disk space in bytes
	Free    uint64  // Free disk space in bytes
	UsedPct float64 // Used percentage (0-100)
}

// MountEntry is one row of the host's mount table
type MountEntry struct {
	Device     string
	Mountpoint string
	Kind       string
}

// MountTable exposes the host's current mount state
type MountTable interface {
	// Entries returns the current mount table
	Entries() ([]MountEntry, error)

	// Resolve finds the mount entry for a filesystem, matching by
	// device or, for virtual filesystems without one, by mountpoint.
	// Returns nil when the filesystem is not mounted.
	Resolve(device, mountpoint string) (*MountEntry, error)

	// Usage returns disk usage statistics for a mounted path
	Usage(mountpoint string) (*DiskUsage, error)
}
