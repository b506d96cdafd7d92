package worker

import (
	"context"
	"log/slog"
	"time"

	"cineapp/internal/pkg/clock"
	"cineapp/internal/pkg/config"
	"cineapp/internal/usecase/shared"
)

// IdempotencySweeper deletes expired idempotency keys. It runs whether or not
// a broker is configured.
const defaultSweepInterval = time.Minute

type IdempotencySweeper struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	cfg    config.IdempotencyConfig
	logger *slog.Logger

	runner loopRunner
}

func NewIdempotencySweeper(
	uow shared.UnitOfWork,
	clock clock.Clock,
	cfg config.IdempotencyConfig,
	logger *slog.Logger,
) *IdempotencySweeper {
	return &IdempotencySweeper{
		uow:    uow,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *IdempotencySweeper) Start() {
	interval := s.cfg.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	s.runner.start(interval, s.tick)
	s.logger.Info("idempotency sweeper started", "interval", interval.String())
}

func (s *IdempotencySweeper) Stop(ctx context.Context) error {
	return s.runner.stop(ctx)
}

func (s *IdempotencySweeper) tick(ctx context.Context) {
	n, err := s.SweepOnce(ctx)
	if err != nil {
		s.logger.Error("idempotency sweep failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.logger.Info("expired idempotency keys removed", "count", n)
	}
}

func (s *IdempotencySweeper) SweepOnce(ctx context.Context) (int64, error) {
	var removed int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, s.clock.Now())
		removed = n
		return err
	})
	return removed, err
}
