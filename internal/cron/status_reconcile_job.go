package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/bidhaus/bidhaus-backend/pkg/logger"
)

// statusReconciler is the repo slice the job needs.
type statusReconciler interface {
	ReconcileStatuses(ctx context.Context, now time.Time) (int64, error)
}

// StatusReconcileJob rewrites the stored auction status column to match the
// clock-derived phase. Reads never depend on the stored value, so the job is
// purely a freshness pass for reporting and ad-hoc queries, and running it
// twice in a row is a no-op.
type StatusReconcileJob struct {
	repo statusReconciler
	logg *logger.Logger
	now  func() time.Time
}

// NewStatusReconcileJob builds the reconcile job.
func NewStatusReconcileJob(repo statusReconciler, logg *logger.Logger, now func() time.Time) (*StatusReconcileJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("auction repository is required")
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &StatusReconcileJob{repo: repo, logg: logg, now: now}, nil
}

// Name identifies the job in logs and metrics.
func (j *StatusReconcileJob) Name() string {
	return "auction_status_reconcile"
}

// Run performs one reconcile pass.
func (j *StatusReconcileJob) Run(ctx context.Context) error {
	touched, err := j.repo.ReconcileStatuses(ctx, j.now())
	if err != nil {
		return fmt.Errorf("reconcile auction statuses: %w", err)
	}
	if j.logg != nil {
		ctx = j.logg.WithField(ctx, "rows_touched", touched)
		j.logg.Info(ctx, "auction statuses reconciled")
	}
	return nil
}
