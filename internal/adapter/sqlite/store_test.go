package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stratalab/fscap/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "fscap.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func upsertTestFS(t *testing.T, store *Store, device, mountpoint string, kind domain.Kind) *domain.Filesystem {
	t.Helper()
	fs, err := domain.NewFilesystem(device, mountpoint, kind)
	if err != nil {
		t.Fatalf("NewFilesystem() error: %v", err)
	}
	if err := store.UpsertFilesystem(fs); err != nil {
		t.Fatalf("UpsertFilesystem() error: %v", err)
	}
	if fs.ID == 0 {
		t.Fatal("UpsertFilesystem() did not set ID")
	}
	return fs
}

func TestStore_UpsertFilesystem(t *testing.T) {
	store := openTestStore(t)

	fs := upsertTestFS(t, store, "/dev/sda1", "/", domain.KindExt4)

	// Upserting the same (device, mountpoint) keeps the same row.
	again, err := domain.NewFilesystem("/dev/sda1", "/", domain.KindExt3)
	if err != nil {
		t.Fatalf("NewFilesystem() error: %v", err)
	}
	if err := store.UpsertFilesystem(again); err != nil {
		t.Fatalf("second UpsertFilesystem() error: %v", err)
	}
	if again.ID != fs.ID {
		t.Errorf("upsert created a new row: id %d, want %d", again.ID, fs.ID)
	}

	got, err := store.GetFilesystem(fs.ID)
	if err != nil {
		t.Fatalf("GetFilesystem() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetFilesystem() = nil")
	}
	if got.Kind != domain.KindExt3 {
		t.Errorf("Kind = %s, want ext3 after upsert", got.Kind)
	}

	missing, err := store.GetFilesystem(9999)
	if err != nil {
		t.Fatalf("GetFilesystem(missing) error: %v", err)
	}
	if missing != nil {
		t.Errorf("GetFilesystem(missing) = %+v, want nil", missing)
	}
}

func TestStore_ListFilesystems(t *testing.T) {
	store := openTestStore(t)

	upsertTestFS(t, store, "/dev/sda1", "/", domain.KindExt4)
	upsertTestFS(t, store, "/dev/sdb1", "/data", domain.KindXFS)
	upsertTestFS(t, store, "", "/tmp", domain.KindTmpFS)

	list, err := store.ListFilesystems()
	if err != nil {
		t.Fatalf("ListFilesystems() error: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("got %d filesystems, want 3", len(list))
	}
}

func TestStore_SetScanResult(t *testing.T) {
	store := openTestStore(t)
	fs := upsertTestFS(t, store, "/dev/sda1", "/", domain.KindExt4)

	at := time.Now().UTC().Truncate(time.Second)
	if err := store.SetScanResult(fs.ID, true, "probe failed", at); err != nil {
		t.Fatalf("SetScanResult() error: %v", err)
	}

	got, err := store.GetFilesystem(fs.ID)
	if err != nil {
		t.Fatalf("GetFilesystem() error: %v", err)
	}
	if !got.Mounted {
		t.Error("Mounted should be true")
	}
	if got.LastError != "probe failed" {
		t.Errorf("LastError = %q, want %q", got.LastError, "probe failed")
	}
	if got.LastScanAt == nil {
		t.Fatal("LastScanAt should be set")
	}
}

func TestStore_Snapshots(t *testing.T) {
	store := openTestStore(t)
	fs := upsertTestFS(t, store, "/dev/sda1", "/", domain.KindExt4)

	total := int64(2_000_000_000)
	used := int64(500_000_000)
	free := total - used

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		snap := &domain.Snapshot{
			FilesystemID:  fs.ID,
			ScanID:        "scan-1",
			CapacityBytes: int64(1_073_741_824 + i),
			TakenAt:       base.Add(time.Duration(i) * time.Minute),
		}
		if i == 4 {
			snap.TotalBytes = &total
			snap.UsedBytes = &used
			snap.FreeBytes = &free
		}
		if err := store.RecordSnapshot(snap); err != nil {
			t.Fatalf("RecordSnapshot() #%d error: %v", i, err)
		}
		if snap.ID == 0 {
			t.Fatal("RecordSnapshot() did not set ID")
		}
	}

	latest, err := store.LatestSnapshot(fs.ID)
	if err != nil {
		t.Fatalf("LatestSnapshot() error: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestSnapshot() = nil")
	}
	if latest.CapacityBytes != 1_073_741_828 {
		t.Errorf("latest CapacityBytes = %d, want %d", latest.CapacityBytes, 1_073_741_828)
	}
	if latest.TotalBytes == nil || *latest.TotalBytes != total {
		t.Errorf("TotalBytes = %v, want %d", latest.TotalBytes, total)
	}

	history, err := store.SnapshotHistory(fs.ID, 3)
	if err != nil {
		t.Fatalf("SnapshotHistory() error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].CapacityBytes < history[1].CapacityBytes {
		t.Error("history should be newest first")
	}

	none, err := store.LatestSnapshot(9999)
	if err != nil {
		t.Fatalf("LatestSnapshot(missing) error: %v", err)
	}
	if none != nil {
		t.Errorf("LatestSnapshot(missing) = %+v, want nil", none)
	}
}

func TestStore_DeleteSnapshotsBefore(t *testing.T) {
	store := openTestStore(t)
	fs := upsertTestFS(t, store, "/dev/sda1", "/", domain.KindExt4)

	now := time.Now().UTC()
	for _, age := range []time.Duration{48 * time.Hour, 30 * time.Hour, time.Hour} {
		snap := &domain.Snapshot{
			FilesystemID:  fs.ID,
			ScanID:        "scan-1",
			CapacityBytes: 4096,
			TakenAt:       now.Add(-age),
		}
		if err := store.RecordSnapshot(snap); err != nil {
			t.Fatalf("RecordSnapshot() error: %v", err)
		}
	}

	deleted, err := store.DeleteSnapshotsBefore(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("DeleteSnapshotsBefore() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	history, err := store.SnapshotHistory(fs.ID, 10)
	if err != nil {
		t.Fatalf("SnapshotHistory() error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("remaining snapshots = %d, want 1", len(history))
	}
}

func TestStore_GetAgentStats(t *testing.T) {
	store := openTestStore(t)

	a := upsertTestFS(t, store, "/dev/sda1", "/", domain.KindExt4)
	b := upsertTestFS(t, store, "/dev/sdb1", "/data", domain.KindXFS)

	now := time.Now().UTC()
	if err := store.SetScanResult(a.ID, true, "", now); err != nil {
		t.Fatalf("SetScanResult() error: %v", err)
	}

	for fsID, capacities := range map[int64][]int64{
		a.ID: {100, 200},
		b.ID: {300},
	} {
		for i, c := range capacities {
			snap := &domain.Snapshot{
				FilesystemID:  fsID,
				ScanID:        "scan-1",
				CapacityBytes: c,
				TakenAt:       now.Add(time.Duration(i) * time.Minute),
			}
			if err := store.RecordSnapshot(snap); err != nil {
				t.Fatalf("RecordSnapshot() error: %v", err)
			}
		}
	}

	stats, err := store.GetAgentStats()
	if err != nil {
		t.Fatalf("GetAgentStats() error: %v", err)
	}
	if stats.Filesystems != 2 {
		t.Errorf("Filesystems = %d, want 2", stats.Filesystems)
	}
	if stats.MountedFilesystems != 1 {
		t.Errorf("MountedFilesystems = %d, want 1", stats.MountedFilesystems)
	}
	if stats.Snapshots != 3 {
		t.Errorf("Snapshots = %d, want 3", stats.Snapshots)
	}
	// Latest per filesystem: 200 + 300.
	if stats.TotalCapacityBytes != 500 {
		t.Errorf("TotalCapacityBytes = %d, want 500", stats.TotalCapacityBytes)
	}
	if stats.LastScanAt == nil {
		t.Error("LastScanAt should be set")
	}
}
