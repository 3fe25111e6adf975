package service

import (
	"context"
	"time"

	"hotel-management-backend/pkg/logger"
)

// SweepService runs the periodic stale-booking sweep in the background.
// Each tick releases occupied rooms whose check-out date has passed.
type SweepService struct {
	roomService *RoomService
	interval    time.Duration
}

func NewSweepService(roomService *RoomService, interval time.Duration) *SweepService {
	return &SweepService{
		roomService: roomService,
		interval:    interval,
	}
}

// Start begins the background sweep loop. It blocks until ctx is
// cancelled, so callers run it in its own goroutine.
func (w *SweepService) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Get().Infof("Booking sweep started - running every %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("Booking sweep stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// RunNow triggers a single sweep outside the schedule.
func (w *SweepService) RunNow(ctx context.Context) (*SweepResult, error) {
	return w.roomService.ExpireStaleBookings(ctx, time.Now().UTC())
}

func (w *SweepService) runOnce(ctx context.Context) {
	result, err := w.roomService.ExpireStaleBookings(ctx, time.Now().UTC())
	if err != nil {
		logger.Get().Errorf("Booking sweep failed: %v", err)
		return
	}
	if len(result.Expired) > 0 || len(result.Failed) > 0 {
		logger.Get().Infof("Booking sweep expired %d room(s), %d failure(s)", len(result.Expired), len(result.Failed))
	}
}
