package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is done.
func Every(ctx context.Context, log *slog.Logger, interval time.Duration, name string, task Task) {
	if log == nil {
		log = slog.Default()
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		if err := task(ctx); err != nil {
			log.Warn("scheduled_task_failed", slog.String("task", name), slog.String("error", err.Error()))
		}
	}

	go run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
