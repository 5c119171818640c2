package sqlite

import (
	"database/sql"
	"time"

	"github.com/stratalab/fscap/internal/domain"
)

// UpsertFilesystem inserts or updates by (device, mountpoint), setting fs.ID
func (s *Store) UpsertFilesystem(fs *domain.Filesystem) error {
	query := `
		INSERT INTO filesystems (device, mountpoint, kind, mounted, last_error)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (device, mountpoint) DO UPDATE SET
			kind = excluded.kind,
			mounted = excluded.mounted,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(query, fs.Device, fs.Mountpoint, fs.Kind.String(), fs.Mounted, fs.LastError); err != nil {
		return err
	}

	// LastInsertId is unreliable for upserts; read the row id back.
	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM filesystems WHERE device = ? AND mountpoint = ?",
		fs.Device, fs.Mountpoint,
	).Scan(&id)
	if err != nil {
		return err
	}

	fs.ID = id
	return nil
}

// GetFilesystem retrieves a filesystem by ID; (nil, nil) when absent
func (s *Store) GetFilesystem(id int64) (*domain.Filesystem, error) {
	query := `
		SELECT id, device, mountpoint, kind, mounted, last_scan_at, last_error, created_at, updated_at
		FROM filesystems
		WHERE id = ?
	`
	return s.scanFilesystem(s.db.QueryRow(query, id))
}

// ListFilesystems returns all known filesystems
func (s *Store) ListFilesystems() ([]*domain.Filesystem, error) {
	query := `
		SELECT id, device, mountpoint, kind, mounted, last_scan_at, last_error, created_at, updated_at
		FROM filesystems
		ORDER BY device, mountpoint
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Filesystem
	for rows.Next() {
		fs, err := s.scanFilesystem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, fs)
	}
	return list, rows.Err()
}

// SetScanResult records mount state and the outcome of the last scan
func (s *Store) SetScanResult(id int64, mounted bool, scanErr string, at time.Time) error {
	query := `
		UPDATE filesystems
		SET mounted = ?, last_scan_at = ?, last_error = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := s.db.Exec(query, mounted, at, scanErr, id)
	return err
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanFilesystem(row rowScanner) (*domain.Filesystem, error) {
	fs := &domain.Filesystem{}
	var kind string
	var lastScan sql.NullTime

	err := row.Scan(
		&fs.ID, &fs.Device, &fs.Mountpoint, &kind, &fs.Mounted,
		&lastScan, &fs.LastError, &fs.CreatedAt, &fs.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	fs.Kind = domain.Kind(kind)
	if lastScan.Valid {
		t := lastScan.Time
		fs.LastScanAt = &t
	}
	return fs, nil
}
