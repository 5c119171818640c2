package event

import (
	"time"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	// EventName returns the name of the event
	EventName() string
	// OccurredAt returns when the event occurred
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// ScanCompleted is raised when a scan sweep over all configured
// filesystems finishes.
type ScanCompleted struct {
	BaseEvent
	ScanID   string
	Scanned  int
	Failed   int
	Duration time.Duration
}

// EventName returns the event name
func (e ScanCompleted) EventName() string {
	return "scan.completed"
}

// NewScanCompleted creates a new ScanCompleted event
func NewScanCompleted(scanID string, scanned, failed int, duration time.Duration) ScanCompleted {
	return ScanCompleted{
		BaseEvent: BaseEvent{Timestamp: time.Now()},
		ScanID:    scanID,
		Scanned:   scanned,
		Failed:    failed,
		Duration:  duration,
	}
}

// CapacityChanged is raised when a filesystem's measured capacity
// differs from its previous snapshot.
type CapacityChanged struct {
	BaseEvent
	Device        string
	Mountpoint    string
	Kind          string
	PreviousBytes int64
	CurrentBytes  int64
}

// EventName returns the event name
func (e CapacityChanged) EventName() string {
	return "capacity.changed"
}

// NewCapacityChanged creates a new CapacityChanged event
func NewCapacityChanged(device, mountpoint, kind string, previous, current int64) CapacityChanged {
	return CapacityChanged{
		BaseEvent:     BaseEvent{Timestamp: time.Now()},
		Device:        device,
		Mountpoint:    mountpoint,
		Kind:          kind,
		PreviousBytes: previous,
		CurrentBytes:  current,
	}
}
