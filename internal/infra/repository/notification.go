package repository

import (
	"context"
	"time"

	"cineapp/internal/infra"
	"cineapp/internal/infra/db"
	"cineapp/internal/pkg/pgconv"
	"cineapp/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'queued')`

	claimDueNotificationJobsSQL = `
SELECT id, kind, topic, payload, run_at, attempts, status, last_error
FROM notification_jobs
WHERE status = 'queued' AND run_at <= $1
ORDER BY run_at, seq
LIMIT $2
FOR UPDATE SKIP LOCKED`

	markNotificationJobSentSQL = `
UPDATE notification_jobs
SET status = 'sent', attempts = attempts + 1, last_error = NULL, updated_at = $2
WHERE id = $1`

	markNotificationJobAttemptSQL = `
UPDATE notification_jobs
SET attempts = attempts + 1, last_error = $2, run_at = $3, status = $4, updated_at = now()
WHERE id = $1`
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, insertNotificationJobSQL, kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.db.Query(ctx, claimDueNotificationJobsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var (
			job     shared.NotificationJob
			lastErr pgtype.Text
		)
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &job.RunAt, &job.Attempts, &job.Status, &lastErr); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.LastError = pgconv.StringPtrFromPgtype(lastErr)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	if _, err := r.db.Exec(ctx, markNotificationJobSentSQL, id, now); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailedAttempt(ctx context.Context, id uuid.UUID, lastError string, nextRunAt time.Time, giveUp bool) error {
	status := shared.NotificationStatusQueued
	if giveUp {
		status = shared.NotificationStatusFailed
	}
	if _, err := r.db.Exec(ctx, markNotificationJobAttemptSQL, id, lastError, nextRunAt, status); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
