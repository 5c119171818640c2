package sqlite

import (
	"database/sql"
	"time"

	"github.com/stratalab/fscap/internal/domain"
)

// GetAgentStats returns stored-state statistics
func (s *Store) GetAgentStats() (*domain.AgentStats, error) {
	stats := &domain.AgentStats{}

	err := s.db.QueryRow("SELECT COUNT(*) FROM filesystems").Scan(&stats.Filesystems)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM filesystems WHERE mounted = TRUE").Scan(&stats.MountedFilesystems)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM capacity_snapshots").Scan(&stats.Snapshots)
	if err != nil {
		return nil, err
	}

	// Sum of the latest capacity per filesystem.
	var total sql.NullInt64
	err = s.db.QueryRow(`
		SELECT SUM(capacity_bytes) FROM capacity_snapshots
		WHERE id IN (
			SELECT MAX(id) FROM capacity_snapshots GROUP BY filesystem_id
		)
	`).Scan(&total)
	if err != nil {
		return nil, err
	}
	stats.TotalCapacityBytes = total.Int64

	// Plain column select keeps the driver's timestamp decoding.
	var lastScan time.Time
	err = s.db.QueryRow(`
		SELECT last_scan_at FROM filesystems
		WHERE last_scan_at IS NOT NULL
		ORDER BY last_scan_at DESC
		LIMIT 1
	`).Scan(&lastScan)
	switch {
	case err == sql.ErrNoRows:
		// No scan has completed yet.
	case err != nil:
		return nil, err
	default:
		stats.LastScanAt = &lastScan
	}

	return stats, nil
}
