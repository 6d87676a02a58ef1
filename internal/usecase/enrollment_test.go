package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
)

type progressEnrollmentRepository struct {
	stubEnrollmentRepository
	updateProgressFn func(context.Context, string, int64, int) error
	getProgressFn    func(context.Context, string, int64) (int, error)
}

func (s progressEnrollmentRepository) UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error {
	return s.updateProgressFn(ctx, userID, courseID, progress)
}

func (s progressEnrollmentRepository) GetProgress(ctx context.Context, userID string, courseID int64) (int, error) {
	return s.getProgressFn(ctx, userID, courseID)
}

func TestEnrollmentUpdateProgressValidatesRange(t *testing.T) {
	uc := NewEnrollmentUseCase(progressEnrollmentRepository{updateProgressFn: func(context.Context, string, int64, int) error {
		t.Fatal("out-of-range progress must not reach the store")
		return nil
	}})

	for _, progress := range []int{-1, 101} {
		if err := uc.UpdateProgress(context.Background(), "user_1", 10, progress); !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("expected ErrValidation for progress %d, got %v", progress, err)
		}
	}
}

func TestEnrollmentUpdateProgressNotEnrolled(t *testing.T) {
	uc := NewEnrollmentUseCase(progressEnrollmentRepository{updateProgressFn: func(context.Context, string, int64, int) error {
		return domainErrors.ErrNotEnrolled
	}})

	if err := uc.UpdateProgress(context.Background(), "user_1", 10, 50); !errors.Is(err, domainErrors.ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestEnrollmentProgressRoundTrip(t *testing.T) {
	var stored int
	uc := NewEnrollmentUseCase(progressEnrollmentRepository{
		updateProgressFn: func(_ context.Context, _ string, _ int64, progress int) error {
			stored = progress
			return nil
		},
		getProgressFn: func(context.Context, string, int64) (int, error) {
			return stored, nil
		},
	})

	if err := uc.UpdateProgress(context.Background(), "user_1", 10, 75); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	progress, err := uc.Progress(context.Background(), "user_1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress != 75 {
		t.Fatalf("expected 75, got %d", progress)
	}
}
