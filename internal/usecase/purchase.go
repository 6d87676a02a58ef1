package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/edumart/edumart/internal/adapter/payment"
	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/domain/repository"
)

// Outcome is the result a payment notification reports for a session.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// PurchaseConfig carries checkout parameters shared by all sessions.
type PurchaseConfig struct {
	Currency    string
	RedirectURL string
}

// PurchaseUseCase drives the purchase lifecycle: checkout initiation,
// webhook confirmation and enrollment materialization.
type PurchaseUseCase struct {
	courses     repository.CourseRepository
	purchases   repository.PurchaseRepository
	enrollments *EnrollmentUseCase
	gateway     payment.Client
	logger      *slog.Logger
	cfg         PurchaseConfig
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(
	courses repository.CourseRepository,
	purchases repository.PurchaseRepository,
	enrollments *EnrollmentUseCase,
	gateway payment.Client,
	logger *slog.Logger,
	cfg PurchaseConfig,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		courses:     courses,
		purchases:   purchases,
		enrollments: enrollments,
		gateway:     gateway,
		logger:      logger,
		cfg:         cfg,
	}
}

// Initiate starts a checkout for the course. Repeated calls converge:
// an enrolled user gets a short-circuit answer, an open attempt gets the
// existing session back, and concurrent first calls agree on one session.
func (u *PurchaseUseCase) Initiate(ctx context.Context, userID string, courseID int64) (*model.CheckoutIntent, error) {
	course, err := u.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := u.isEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return &model.CheckoutIntent{AlreadyEnrolled: true, Course: course}, nil
	}

	pending, err := u.purchases.GetPending(ctx, userID, courseID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if pending != nil {
		intent, reusable, err := u.reuseSession(ctx, pending, course)
		if err != nil {
			return nil, err
		}
		if reusable {
			return intent, nil
		}
	}

	session, err := u.gateway.CreateSession(ctx, payment.SessionParams{
		Amount:      course.Price,
		Currency:    u.cfg.Currency,
		ProductName: course.Title,
		SuccessURL:  u.cfg.RedirectURL,
		CancelURL:   u.cfg.RedirectURL,
		Metadata: map[string]string{
			"user_id":   userID,
			"course_id": strconv.FormatInt(courseID, 10),
		},
	})
	if err != nil {
		u.logger.Error("checkout session creation failed",
			slog.String("user_id", userID),
			slog.Int64("course_id", courseID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}

	purchase, created, err := u.purchases.CreatePending(ctx, userID, courseID, course.Price, session.ID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		// Lost the race to a winner who already went terminal: the pending
		// row vanished before we could re-read it. Either the winner
		// completed, in which case the user is enrolled now, or it failed
		// and a fresh attempt is in order. Our session expires unused.
		enrolled, err := u.isEnrolled(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if enrolled {
			return &model.CheckoutIntent{AlreadyEnrolled: true, Course: course}, nil
		}
		return u.Initiate(ctx, userID, courseID)
	}
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the initiate race: hand back the winner's session and let
		// ours expire unused at the gateway.
		return u.winnerIntent(ctx, purchase, course)
	}

	return &model.CheckoutIntent{SessionURL: session.URL, Course: course}, nil
}

// Confirm applies a payment outcome for the session. It is safe to call
// any number of times with the same arguments: transitions are
// conditional and enrollment is idempotent.
func (u *PurchaseUseCase) Confirm(ctx context.Context, sessionID string, outcome Outcome) error {
	purchase, err := u.purchases.GetBySessionID(ctx, sessionID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		u.logger.Warn("confirm for unknown session", slog.String("session_id", sessionID))
		return domainErrors.ErrUnknownSession
	}
	if err != nil {
		return err
	}

	if purchase.Status.Terminal() {
		if purchase.Status == model.PurchaseStatusCompleted && outcome == OutcomeSuccess {
			// Redelivery after a crash between transition and enrollment:
			// finish the enrollment side.
			return u.enrollments.Enroll(ctx, purchase.UserID, purchase.CourseID)
		}
		u.logger.Info("ignoring confirm for terminal purchase",
			slog.Int64("purchase_id", purchase.ID),
			slog.String("status", string(purchase.Status)),
			slog.String("outcome", string(outcome)),
		)
		return nil
	}

	switch outcome {
	case OutcomeSuccess:
		moved, err := u.purchases.Transition(ctx, purchase.ID, model.PurchaseStatusPending, model.PurchaseStatusCompleted)
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// Another purchase row for the same user and course already
			// completed; retire this one and make sure the enrollment holds.
			if _, err := u.purchases.Transition(ctx, purchase.ID, model.PurchaseStatusPending, model.PurchaseStatusFailed); err != nil {
				return err
			}
			return u.enrollments.Enroll(ctx, purchase.UserID, purchase.CourseID)
		}
		if err != nil {
			return err
		}
		if !moved {
			// Lost to a concurrent confirm; re-read and let the terminal
			// branch decide whether the re-drive rule applies.
			return u.Confirm(ctx, sessionID, outcome)
		}
		return u.enrollments.Enroll(ctx, purchase.UserID, purchase.CourseID)
	case OutcomeFailure:
		if _, err := u.purchases.Transition(ctx, purchase.ID, model.PurchaseStatusPending, model.PurchaseStatusFailed); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: outcome %q", domainErrors.ErrValidation, outcome)
	}
}

// Refund moves a completed purchase to refunded. Enrollment is left in
// place; revocation is a separate administrative concern.
func (u *PurchaseUseCase) Refund(ctx context.Context, purchaseID int64) error {
	moved, err := u.purchases.Transition(ctx, purchaseID, model.PurchaseStatusCompleted, model.PurchaseStatusRefunded)
	if err != nil {
		return err
	}
	if !moved {
		return domainErrors.ErrInvalidTransition
	}
	return nil
}

// SelectStalePending exposes reconciliation batches for the worker.
func (u *PurchaseUseCase) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	return u.purchases.SelectStalePending(ctx, olderThan, limit)
}

func (u *PurchaseUseCase) isEnrolled(ctx context.Context, userID string, courseID int64) (bool, error) {
	completed, err := u.purchases.HasCompleted(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	if completed {
		return true, nil
	}
	return u.enrollments.IsEnrolled(ctx, userID, courseID)
}

// reuseSession returns the open session of an earlier attempt. A session
// the gateway expired or forgot fails the stale purchase and signals the
// caller to start over.
func (u *PurchaseUseCase) reuseSession(ctx context.Context, pending *model.Purchase, course *model.Course) (*model.CheckoutIntent, bool, error) {
	session, err := u.gateway.GetSession(ctx, pending.SessionID)
	if errors.Is(err, payment.ErrSessionNotFound) {
		if _, err := u.purchases.Transition(ctx, pending.ID, model.PurchaseStatusPending, model.PurchaseStatusFailed); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}

	switch session.Status {
	case model.SessionStatusExpired:
		if _, err := u.purchases.Transition(ctx, pending.ID, model.PurchaseStatusPending, model.PurchaseStatusFailed); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	case model.SessionStatusComplete:
		// Webhook is lagging; drive confirmation from here.
		if err := u.Confirm(ctx, pending.SessionID, OutcomeSuccess); err != nil {
			return nil, false, err
		}
		return &model.CheckoutIntent{AlreadyEnrolled: true, Course: course}, true, nil
	default:
		return &model.CheckoutIntent{SessionURL: session.URL, Pending: true, Course: course}, true, nil
	}
}

func (u *PurchaseUseCase) winnerIntent(ctx context.Context, winner *model.Purchase, course *model.Course) (*model.CheckoutIntent, error) {
	session, err := u.gateway.GetSession(ctx, winner.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	return &model.CheckoutIntent{SessionURL: session.URL, Pending: true, Course: course}, nil
}
