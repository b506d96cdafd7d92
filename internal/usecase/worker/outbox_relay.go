package worker

import (
	"context"
	"log/slog"
	"time"

	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/shared"
)

const maxRetryDelay = 5 * time.Minute

type Publisher interface {
	Publish(ctx context.Context, topic, kind string, payload []byte) error
}

type RelayStats struct {
	Sent   int
	Failed int
}

// OutboxRelay forwards queued notification jobs to the broker.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	cfg       config.BrokerConfig
	logger    *slog.Logger

	runner loopRunner
}

func NewOutboxRelay(
	uow shared.UnitOfWork,
	publisher Publisher,
	clock clock.Clock,
	cfg config.BrokerConfig,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

func (r *OutboxRelay) Start() {
	r.runner.start(r.cfg.RelayInterval, r.tick)
	r.logger.Info("outbox relay started", "interval", r.cfg.RelayInterval.String())
}

// Stop waits for the in-flight batch, or gives up when ctx expires.
func (r *OutboxRelay) Stop(ctx context.Context) error {
	if err := r.runner.stop(ctx); err != nil {
		return err
	}
	r.logger.Info("outbox relay stopped")
	return nil
}

func (r *OutboxRelay) tick(ctx context.Context) {
	stats, err := r.RunOnce(ctx)
	if err != nil {
		r.logger.Error("outbox relay batch failed", "error", err.Error())
		return
	}
	if stats.Sent > 0 || stats.Failed > 0 {
		r.logger.Info("outbox relay batch", "sent", stats.Sent, "failed", stats.Failed)
	}
}

// RunOnce claims one batch of due jobs and publishes them. Claimed rows stay
// locked until the batch commits, so parallel relays never send a job twice.
func (r *OutboxRelay) RunOnce(ctx context.Context) (RelayStats, error) {
	var stats RelayStats
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stats = RelayStats{}
		now := r.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, now, r.cfg.RelayBatch)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			pubErr := r.publisher.Publish(ctx, job.Topic, job.Kind, job.Payload)
			if pubErr == nil {
				if err := tx.Notifications().MarkSent(ctx, job.ID, now); err != nil {
					return err
				}
				stats.Sent++
				continue
			}

			attempts := job.Attempts + 1
			giveUp := attempts >= r.cfg.MaxAttempts
			next := now.Add(retryDelay(r.cfg.RelayInterval, attempts))
			if err := tx.Notifications().MarkFailedAttempt(ctx, job.ID, pubErr.Error(), next, giveUp); err != nil {
				return err
			}
			stats.Failed++

			r.logger.Warn("notification publish failed",
				"job_id", job.ID.String(),
				"kind", job.Kind,
				"attempts", attempts,
				"gave_up", giveUp,
				"error", pubErr.Error())
		}
		return nil
	})
	return stats, err
}

func retryDelay(base time.Duration, attempts int) time.Duration {
	if attempts > 16 {
		return maxRetryDelay
	}
	d := base * time.Duration(1<<attempts)
	if d <= 0 || d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}
