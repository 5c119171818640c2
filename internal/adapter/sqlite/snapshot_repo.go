package sqlite

import (
	"database/sql"
	"time"

	"github.com/stratalab/fscap/internal/domain"
)

// RecordSnapshot stores a new snapshot, setting snap.ID
func (s *Store) RecordSnapshot(snap *domain.Snapshot) error {
	query := `
		INSERT INTO capacity_snapshots (
			filesystem_id, scan_id, capacity_bytes,
			total_bytes, used_bytes, free_bytes, taken_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(
		query,
		snap.FilesystemID, snap.ScanID, snap.CapacityBytes,
		nullInt64(snap.TotalBytes), nullInt64(snap.UsedBytes), nullInt64(snap.FreeBytes),
		snap.TakenAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	snap.ID = id
	return nil
}

// LatestSnapshot returns the newest snapshot for a filesystem;
// (nil, nil) when none exists
func (s *Store) LatestSnapshot(filesystemID int64) (*domain.Snapshot, error) {
	query := `
		SELECT id, filesystem_id, scan_id, capacity_bytes,
			   total_bytes, used_bytes, free_bytes, taken_at
		FROM capacity_snapshots
		WHERE filesystem_id = ?
		ORDER BY taken_at DESC, id DESC
		LIMIT 1
	`
	return s.scanSnapshot(s.db.QueryRow(query, filesystemID))
}

// SnapshotHistory returns up to limit snapshots for a filesystem, newest first
func (s *Store) SnapshotHistory(filesystemID int64, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, filesystem_id, scan_id, capacity_bytes,
			   total_bytes, used_bytes, free_bytes, taken_at
		FROM capacity_snapshots
		WHERE filesystem_id = ?
		ORDER BY taken_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, filesystemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*domain.Snapshot
	for rows.Next() {
		snap, err := s.scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteSnapshotsBefore removes snapshots taken before cutoff and
// returns the number deleted
func (s *Store) DeleteSnapshotsBefore(cutoff time.Time) (int, error) {
	result, err := s.db.Exec("DELETE FROM capacity_snapshots WHERE taken_at < ?", cutoff)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Store) scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	var total, used, free sql.NullInt64

	err := row.Scan(
		&snap.ID, &snap.FilesystemID, &snap.ScanID, &snap.CapacityBytes,
		&total, &used, &free, &snap.TakenAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if total.Valid {
		snap.TotalBytes = &total.Int64
	}
	if used.Valid {
		snap.UsedBytes = &used.Int64
	}
	if free.Valid {
		snap.FreeBytes = &free.Int64
	}
	return snap, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
