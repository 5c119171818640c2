package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/port"
)

// CapacityHandler serves the capacity API
type CapacityHandler struct {
	store  port.Store
	logger *zap.Logger
}

// NewCapacityHandler creates a new CapacityHandler
func NewCapacityHandler(store port.Store, logger *zap.Logger) *CapacityHandler {
	return &CapacityHandler{
		store:  store,
		logger: logger,
	}
}

// filesystemResponse is one filesystem with its latest snapshot
type filesystemResponse struct {
	ID         int64             `json:"id"`
	Device     string            `json:"device"`
	Mountpoint string            `json:"mountpoint"`
	Kind       string            `json:"kind"`
	Mounted    bool              `json:"mounted"`
	LastScanAt *time.Time        `json:"last_scan_at,omitempty"`
	LastError  string            `json:"last_error,omitempty"`
	Capacity   *snapshotResponse `json:"capacity,omitempty"`
}

// snapshotResponse is one capacity snapshot
type snapshotResponse struct {
	ScanID        string    `json:"scan_id"`
	CapacityBytes int64     `json:"capacity_bytes"`
	Capacity      string    `json:"capacity"`
	TotalBytes    *int64    `json:"total_bytes,omitempty"`
	UsedBytes     *int64    `json:"used_bytes,omitempty"`
	FreeBytes     *int64    `json:"free_bytes,omitempty"`
	TakenAt       time.Time `json:"taken_at"`
}

func newSnapshotResponse(snap *domain.Snapshot) *snapshotResponse {
	return &snapshotResponse{
		ScanID:        snap.ScanID,
		CapacityBytes: snap.CapacityBytes,
		Capacity:      humanize.IBytes(uint64(snap.CapacityBytes)),
		TotalBytes:    snap.TotalBytes,
		UsedBytes:     snap.UsedBytes,
		FreeBytes:     snap.FreeBytes,
		TakenAt:       snap.TakenAt,
	}
}

// HandleList handles GET /api/filesystems
func (h *CapacityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filesystems, err := h.store.ListFilesystems()
	if err != nil {
		h.logger.Error("failed to list filesystems", zap.Error(err))
		http.Error(w, "Failed to list filesystems", http.StatusInternalServerError)
		return
	}

	response := make([]filesystemResponse, 0, len(filesystems))
	for _, fs := range filesystems {
		item := filesystemResponse{
			ID:         fs.ID,
			Device:     fs.Device,
			Mountpoint: fs.Mountpoint,
			Kind:       fs.Kind.String(),
			Mounted:    fs.Mounted,
			LastScanAt: fs.LastScanAt,
			LastError:  fs.LastError,
		}

		latest, err := h.store.LatestSnapshot(fs.ID)
		if err != nil {
			h.logger.Error("failed to load latest snapshot",
				zap.Int64("filesystem_id", fs.ID), zap.Error(err))
			http.Error(w, "Failed to load snapshots", http.StatusInternalServerError)
			return
		}
		if latest != nil {
			item.Capacity = newSnapshotResponse(latest)
		}

		response = append(response, item)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleHistory handles GET /api/filesystems/{id}/history
func (h *CapacityHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path shape: /api/filesystems/{id}/history
	rest := strings.TrimPrefix(r.URL.Path, "/api/filesystems/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "history" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "Invalid filesystem id", http.StatusBadRequest)
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	fs, err := h.store.GetFilesystem(id)
	if err != nil {
		h.logger.Error("failed to load filesystem", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "Failed to load filesystem", http.StatusInternalServerError)
		return
	}
	if fs == nil {
		http.Error(w, "Filesystem not found", http.StatusNotFound)
		return
	}

	history, err := h.store.SnapshotHistory(id, limit)
	if err != nil {
		h.logger.Error("failed to load snapshot history", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	response := make([]*snapshotResponse, 0, len(history))
	for _, snap := range history {
		response = append(response, newSnapshotResponse(snap))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
