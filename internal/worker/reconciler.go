package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/edumart/edumart/internal/adapter/payment"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/usecase"
)

// PlatformFacade exposes the subset of application functionality required by the worker.
type PlatformFacade interface {
	StalePurchases(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error)
	SessionByID(ctx context.Context, id string) (*model.CheckoutSession, error)
	ConfirmPayment(ctx context.Context, sessionID string, outcome usecase.Outcome) error
}

// Reconciler sweeps stale pending purchases and settles them against the
// gateway's view of their sessions. Webhooks remain the primary signal;
// the sweep covers lost deliveries.
type Reconciler struct {
	facade       PlatformFacade
	pollInterval time.Duration
	maxAge       time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Purchase
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade PlatformFacade, pollInterval, maxAge time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		maxAge:       maxAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Purchase, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	purchases, err := r.facade.StalePurchases(ctx, r.maxAge, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale purchases failed", slog.String("error", err.Error()))
		return
	}
	for _, purchase := range purchases {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- purchase:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case purchase, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, purchase)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, purchase model.Purchase) {
	session, err := r.facade.SessionByID(ctx, purchase.SessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			// The gateway forgot the session; the purchase can never settle.
			r.settle(ctx, purchase, usecase.OutcomeFailure)
			return
		}
		var tooMany payment.TooManyRequestsError
		if errors.As(err, &tooMany) {
			r.logger.Warn("gateway rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			r.backoff(ctx, tooMany.RetryAfter)
			return
		}
		r.logger.Error("session lookup failed",
			slog.String("session_id", purchase.SessionID),
			slog.String("error", err.Error()),
		)
		return
	}

	switch {
	case session.Paid:
		r.settle(ctx, purchase, usecase.OutcomeSuccess)
	case session.Status == model.SessionStatusExpired:
		r.settle(ctx, purchase, usecase.OutcomeFailure)
	default:
		// Still open; the next sweep will look again.
	}
}

// backoff pauses the worker for the gateway's requested interval but
// stays responsive to shutdown.
func (r *Reconciler) backoff(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (r *Reconciler) settle(ctx context.Context, purchase model.Purchase, outcome usecase.Outcome) {
	if err := r.facade.ConfirmPayment(ctx, purchase.SessionID, outcome); err != nil {
		r.logger.Error("reconcile confirm failed",
			slog.Int64("purchase_id", purchase.ID),
			slog.String("outcome", string(outcome)),
			slog.String("error", err.Error()),
		)
		return
	}
	r.logger.Info("reconciled stale purchase",
		slog.Int64("purchase_id", purchase.ID),
		slog.String("outcome", string(outcome)),
	)
}
