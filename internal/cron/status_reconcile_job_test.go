package cron

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStatusReconciler struct {
	touched int64
	err     error
	calls   []time.Time
}

func (f *fakeStatusReconciler) ReconcileStatuses(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, now)
	return f.touched, f.err
}

func TestStatusReconcileJobRun(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reconciler := &fakeStatusReconciler{touched: 4}

	job, err := NewStatusReconcileJob(reconciler, nil, func() time.Time { return fixed })
	if err != nil {
		t.Fatalf("NewStatusReconcileJob: %v", err)
	}
	if job.Name() != "auction_status_reconcile" {
		t.Fatalf("unexpected job name %q", job.Name())
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(reconciler.calls) != 1 || !reconciler.calls[0].Equal(fixed) {
		t.Fatalf("expected one call with the injected clock, got %v", reconciler.calls)
	}
}

func TestStatusReconcileJobRunError(t *testing.T) {
	wantErr := errors.New("db down")
	reconciler := &fakeStatusReconciler{err: wantErr}

	job, err := NewStatusReconcileJob(reconciler, nil, nil)
	if err != nil {
		t.Fatalf("NewStatusReconcileJob: %v", err)
	}

	if err := job.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped reconcile error, got %v", err)
	}
}

func TestNewStatusReconcileJobRequiresRepo(t *testing.T) {
	if _, err := NewStatusReconcileJob(nil, nil, nil); err == nil {
		t.Fatal("nil repository must be rejected")
	}
}
