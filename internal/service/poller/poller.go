package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/domain/event"
	"github.com/stratalab/fscap/internal/port"
	"github.com/stratalab/fscap/internal/service/capacity"
)

// Config contains poller configuration
type Config struct {
	// Interval is how often a scan sweep runs
	Interval time.Duration

	// ProbeTimeout bounds one filesystem probe, including any
	// external commands it spawns
	ProbeTimeout time.Duration
}

// DefaultConfig returns default poller configuration
func DefaultConfig() *Config {
	return &Config{
		Interval:     5 * time.Minute,
		ProbeTimeout: 30 * time.Second,
	}
}

// Service periodically sweeps the configured filesystems, measures
// each one's capacity and records a snapshot. One sweep goroutine
// touches the filesystem objects; nothing else mutates them while the
// service runs.
type Service struct {
	config      *Config
	filesystems []*domain.Filesystem
	store       port.Store
	mounts      port.MountTable
	tools       port.Toolbox
	exec        port.Executor
	dispatcher  event.EventDispatcher
	logger      *zap.Logger

	trigger chan struct{}

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Ensure Service implements port.Scanner
var _ port.Scanner = (*Service)(nil)

// New creates a new poller Service
func New(cfg *Config, filesystems []*domain.Filesystem, store port.Store, mounts port.MountTable,
	tools port.Toolbox, exec port.Executor, dispatcher event.EventDispatcher, logger *zap.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = 30 * time.Second
	}
	if dispatcher == nil {
		dispatcher = event.NewNullDispatcher()
	}

	return &Service{
		config:      cfg,
		filesystems: filesystems,
		store:       store,
		mounts:      mounts,
		tools:       tools,
		exec:        exec,
		dispatcher:  dispatcher,
		logger:      logger,
		trigger:     make(chan struct{}, 1),
	}
}

// Start starts the poller and blocks until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("poller already running")
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.logger.Info("poller started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("probe_timeout", s.config.ProbeTimeout),
		zap.Int("filesystems", len(s.filesystems)))

	s.wg.Add(1)
	go s.pollLoop(ctx)

	<-ctx.Done()
	s.wg.Wait()
	s.logger.Info("poller stopped")
	return nil
}

// Stop stops the poller
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
}

// TriggerScan requests an immediate out-of-band sweep
func (s *Service) TriggerScan(_ context.Context) error {
	select {
	case s.trigger <- struct{}{}:
	default:
		// A sweep request is already pending.
	}
	return nil
}

// pollLoop runs an initial sweep, then sweeps on the interval or on
// an explicit trigger
func (s *Service) pollLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.trigger:
			s.sweep(ctx)
		}
	}
}

// sweep measures every configured filesystem once. A failing
// filesystem is logged and recorded but never aborts the sweep.
func (s *Service) sweep(ctx context.Context) {
	scanID := uuid.NewString()
	start := time.Now()
	failed := 0

	for _, fs := range s.filesystems {
		if ctx.Err() != nil {
			return
		}
		if err := s.scanOne(ctx, scanID, fs); err != nil {
			failed++
			s.logger.Warn("filesystem scan failed",
				zap.String("scan_id", scanID),
				zap.String("device", fs.Device),
				zap.String("mountpoint", fs.Mountpoint),
				zap.String("kind", fs.Kind.String()),
				zap.Error(err))
		}
	}

	duration := time.Since(start)
	s.dispatcher.Dispatch(event.NewScanCompleted(scanID, len(s.filesystems), failed, duration))
	s.logger.Debug("sweep finished",
		zap.String("scan_id", scanID),
		zap.Int("scanned", len(s.filesystems)),
		zap.Int("failed", failed),
		zap.Duration("duration", duration))
}

// scanOne refreshes one filesystem's mount state, measures its
// capacity and records a snapshot
func (s *Service) scanOne(ctx context.Context, scanID string, fs *domain.Filesystem) error {
	now := time.Now().UTC()

	entry, err := s.mounts.Resolve(fs.Device, fs.Mountpoint)
	if err != nil {
		s.recordScanError(fs, now, err)
		return fmt.Errorf("failed to resolve mount state: %w", err)
	}
	if entry != nil {
		fs.SetMounted(true, entry.Mountpoint)
	} else {
		fs.SetMounted(false, "")
	}

	prober, err := capacity.NewProber(fs, s.tools, s.exec)
	if err != nil {
		s.recordScanError(fs, now, err)
		return err
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.config.ProbeTimeout)
	size, err := prober.Probe(probeCtx)
	cancel()
	if err != nil {
		s.recordScanError(fs, now, err)
		return err
	}

	snap := &domain.Snapshot{
		FilesystemID:  fs.ID,
		ScanID:        scanID,
		CapacityBytes: size.Bytes(),
		TakenAt:       now,
	}
	if fs.Mounted {
		if usage, err := s.mounts.Usage(fs.Mountpoint); err != nil {
			s.logger.Warn("failed to read disk usage",
				zap.String("mountpoint", fs.Mountpoint), zap.Error(err))
		} else {
			total, used, free := int64(usage.Total), int64(usage.Used), int64(usage.Free)
			snap.TotalBytes = &total
			snap.UsedBytes = &used
			snap.FreeBytes = &free
		}
	}

	previous, err := s.store.LatestSnapshot(fs.ID)
	if err != nil {
		s.logger.Warn("failed to load previous snapshot", zap.Error(err))
	}

	if err := s.store.RecordSnapshot(snap); err != nil {
		s.recordScanError(fs, now, err)
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	if err := s.store.SetScanResult(fs.ID, fs.Mounted, "", now); err != nil {
		return fmt.Errorf("failed to record scan result: %w", err)
	}
	fs.RecordScan(now, nil)

	if previous != nil && previous.CapacityBytes != snap.CapacityBytes {
		s.dispatcher.Dispatch(event.NewCapacityChanged(
			fs.Device, fs.Mountpoint, fs.Kind.String(),
			previous.CapacityBytes, snap.CapacityBytes))
	}

	s.logger.Debug("filesystem measured",
		zap.String("scan_id", scanID),
		zap.String("device", fs.Device),
		zap.String("mountpoint", fs.Mountpoint),
		zap.Int64("capacity_bytes", snap.CapacityBytes))
	return nil
}

func (s *Service) recordScanError(fs *domain.Filesystem, at time.Time, scanErr error) {
	fs.RecordScan(at, scanErr)
	if fs.ID == 0 {
		return
	}
	if err := s.store.SetScanResult(fs.ID, fs.Mounted, scanErr.Error(), at); err != nil {
		s.logger.Error("failed to record scan error", zap.Error(err))
	}
}
