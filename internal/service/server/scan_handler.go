package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/port"
	"github.com/stratalab/fscap/internal/util/ratelimiter"
)

// ScanHandler triggers out-of-band scan sweeps
type ScanHandler struct {
	scanner port.Scanner
	limiter *ratelimiter.Limiter
	logger  *zap.Logger
}

// NewScanHandler creates a new ScanHandler. Triggers are limited to
// one per interval.
func NewScanHandler(scanner port.Scanner, interval time.Duration, logger *zap.Logger) *ScanHandler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ScanHandler{
		scanner: scanner,
		limiter: ratelimiter.New(interval),
		logger:  logger,
	}
}

// HandleScan handles POST /api/scan
func (h *ScanHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	allowed, wait := h.limiter.Allow()
	if !allowed {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(wait.Seconds())+1))
		http.Error(w, "Scan already requested recently", http.StatusTooManyRequests)
		return
	}

	if err := h.scanner.TriggerScan(r.Context()); err != nil {
		h.logger.Error("failed to trigger scan", zap.Error(err))
		http.Error(w, "Failed to trigger scan", http.StatusInternalServerError)
		return
	}

	h.logger.Info("scan triggered", zap.String("remote_addr", r.RemoteAddr))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "scan requested"})
}
