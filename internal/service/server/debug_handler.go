package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/port"
)

// DebugHandler handles debug endpoint requests
type DebugHandler struct {
	store  port.Store
	logger *zap.Logger
}

// NewDebugHandler creates a new DebugHandler
func NewDebugHandler(store port.Store, logger *zap.Logger) *DebugHandler {
	return &DebugHandler{
		store:  store,
		logger: logger,
	}
}

// HandleStats handles debug statistics requests
func (h *DebugHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.store.GetAgentStats()
	if err != nil {
		h.logger.Error("failed to get agent stats", zap.Error(err))
		http.Error(w, "Failed to get agent stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
