package port

import (
	"time"

	"github.com/stratalab/fscap/internal/domain"
)

// FilesystemRepository persists the watched filesystems
type FilesystemRepository interface {
	// UpsertFilesystem inserts or updates by (device, mountpoint),
	// setting fs.ID
	UpsertFilesystem(fs *domain.Filesystem) error

	// GetFilesystem retrieves a filesystem by ID; (nil, nil) when absent
	GetFilesystem(id int64) (*domain.Filesystem, error)

	// ListFilesystems returns all known filesystems
	ListFilesystems() ([]*domain.Filesystem, error)

	// SetScanResult records mount state and the outcome of the last scan
	SetScanResult(id int64, mounted bool, scanErr string, at time.Time) error
}

// SnapshotRepository persists capacity snapshots
type SnapshotRepository interface {
	// RecordSnapshot stores a new snapshot, setting snap.ID
	RecordSnapshot(snap *domain.Snapshot) error

	// LatestSnapshot returns the newest snapshot for a filesystem;
	// (nil, nil) when none exists
	LatestSnapshot(filesystemID int64) (*domain.Snapshot, error)

	// SnapshotHistory returns up to limit snapshots for a filesystem,
	// newest first
	SnapshotHistory(filesystemID int64, limit int) ([]*domain.Snapshot, error)

	// DeleteSnapshotsBefore removes snapshots taken before cutoff and
	// returns the number deleted
	DeleteSnapshotsBefore(cutoff time.Time) (int, error)
}

// StatsRepository reports aggregate agent statistics
type StatsRepository interface {
	// GetAgentStats returns stored-state statistics
	GetAgentStats() (*domain.AgentStats, error)
}

// Store combines all repositories over one database
type Store interface {
	FilesystemRepository
	SnapshotRepository
	StatsRepository

	// Ping checks database connectivity
	Ping() error

	// Close closes the database
	Close() error
}
