package dto

import "github.com/edumart/edumart/internal/domain/model"

// PurchaseRequest starts a checkout for a course.
type PurchaseRequest struct {
	CourseID int64 `json:"courseId"`
}

// CheckoutResponse is the result of a checkout initiation. SessionURL is
// empty when the caller is already enrolled.
type CheckoutResponse struct {
	AlreadyEnrolled bool   `json:"alreadyEnrolled"`
	Pending         bool   `json:"pending"`
	SessionURL      string `json:"sessionUrl,omitempty"`
}

// NewCheckoutResponse maps a checkout intent to its API shape.
func NewCheckoutResponse(intent *model.CheckoutIntent) CheckoutResponse {
	return CheckoutResponse{
		AlreadyEnrolled: intent.AlreadyEnrolled,
		Pending:         intent.Pending,
		SessionURL:      intent.SessionURL,
	}
}
