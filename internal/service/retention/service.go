package retention

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stratalab/fscap/internal/port"
)

// Config contains retention service configuration
type Config struct {
	// MaxAge is how long snapshots are kept
	MaxAge time.Duration

	// PruneInterval is how often old snapshots are pruned
	PruneInterval time.Duration
}

// DefaultConfig returns default retention configuration
func DefaultConfig() *Config {
	return &Config{
		MaxAge:        30 * 24 * time.Hour,
		PruneInterval: time.Hour,
	}
}

// Service periodically prunes capacity snapshots older than the
// configured maximum age
type Service struct {
	config    *Config
	snapshots port.SnapshotRepository
	logger    *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new retention Service
func New(cfg *Config, snapshots port.SnapshotRepository, logger *zap.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 30 * 24 * time.Hour
	}
	if cfg.PruneInterval == 0 {
		cfg.PruneInterval = time.Hour
	}

	return &Service{
		config:    cfg,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Start starts the retention service and blocks until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("retention service already running")
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.logger.Info("retention service started",
		zap.Duration("max_age", s.config.MaxAge),
		zap.Duration("prune_interval", s.config.PruneInterval))

	s.wg.Add(1)
	go s.pruneLoop(ctx)

	<-ctx.Done()
	s.wg.Wait()
	s.logger.Info("retention service stopped")
	return nil
}

// Stop stops the retention service
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
}

// pruneLoop prunes on the configured interval
func (s *Service) pruneLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune()
		}
	}
}

// prune deletes snapshots past the retention window
func (s *Service) prune() {
	cutoff := time.Now().UTC().Add(-s.config.MaxAge)
	deleted, err := s.snapshots.DeleteSnapshotsBefore(cutoff)
	if err != nil {
		s.logger.Error("failed to prune old snapshots", zap.Error(err))
	} else if deleted > 0 {
		s.logger.Info("pruned old snapshots",
			zap.Int("count", deleted),
			zap.Time("cutoff", cutoff))
	}
}
