package worker

import (
	"context"
	"time"

	"github.com/KadakWNL/crowd-connect/internal/service"

	"github.com/sirupsen/logrus"
)

// EventPurgeWorker periodically removes events whose start has passed.
// The read path already filters expired rows, so the sweep is storage hygiene
// rather than correctness; attendance rows cascade with each delete.
type EventPurgeWorker struct {
	eventService service.EventService
	interval     time.Duration
}

func NewEventPurgeWorker(eventService service.EventService, interval time.Duration) *EventPurgeWorker {
	return &EventPurgeWorker{
		eventService: eventService,
		interval:     interval,
	}
}

func (w *EventPurgeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Event purge worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Event purge worker stopped")
			return
		case <-ticker.C:
			w.purgeExpiredEvents(ctx)
		}
	}
}

func (w *EventPurgeWorker) purgeExpiredEvents(ctx context.Context) {
	purged, err := w.eventService.PurgeExpired(ctx)
	if err != nil {
		logrus.Errorf("Failed to purge expired events: %v", err)
		return
	}

	if purged > 0 {
		logrus.Infof("Expired events purge completed: %d removed", purged)
	}
}
