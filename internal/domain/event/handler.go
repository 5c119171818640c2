package event

import (
	"go.uber.org/zap"
)

// LoggingHandler surfaces scan and capacity events through the
// structured log. Capacity changes are always logged at Info so they
// survive a production log level.
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// HandledEvents returns the event names this handler handles
func (h *LoggingHandler) HandledEvents() []string {
	return []string{ScanCompleted{}.EventName(), CapacityChanged{}.EventName()}
}

// Handle processes the event
func (h *LoggingHandler) Handle(e DomainEvent) error {
	switch ev := e.(type) {
	case ScanCompleted:
		h.logger.Info("scan completed",
			zap.String("scan_id", ev.ScanID),
			zap.Int("scanned", ev.Scanned),
			zap.Int("failed", ev.Failed),
			zap.Duration("duration", ev.Duration))
	case CapacityChanged:
		h.logger.Info("filesystem capacity changed",
			zap.String("device", ev.Device),
			zap.String("mountpoint", ev.Mountpoint),
			zap.String("kind", ev.Kind),
			zap.Int64("previous_bytes", ev.PreviousBytes),
			zap.Int64("current_bytes", ev.CurrentBytes))
	}
	return nil
}
