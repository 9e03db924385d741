package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/session"
)

// HousekeepingService periodically purges expired sessions so the session
// table does not grow without bound.
type HousekeepingService struct {
	Sessions *session.Manager
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to ten minutes when not positive.
func NewHousekeepingService(sessions *session.Manager, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &HousekeepingService{
		Sessions: sessions,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup runs one sweep and returns how many sessions it removed.
func (s *HousekeepingService) cleanup() int {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()

	n, err := s.Sessions.Purge(ctx)
	if err != nil {
		s.Logger.Error("failed to purge expired sessions", "error", err)
		return 0
	}
	s.Logger.Debug("purged expired sessions", "count", n)
	return n
}

// RunOnce performs a single sweep synchronously and returns the number of
// sessions removed.
func (s *HousekeepingService) RunOnce() int { return s.cleanup() }
