package model

// SessionStatus describes the state of a gateway-hosted checkout session.
type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)

// CheckoutSession mirrors the payment gateway representation of a
// hosted checkout flow.
type CheckoutSession struct {
	ID          string
	URL         string
	Status      SessionStatus
	Paid        bool
	AmountTotal int64
	Currency    string
	Metadata    map[string]string
}

// CheckoutIntent is the result of initiating a purchase. Exactly one of
// AlreadyEnrolled or SessionURL is meaningful; Pending marks a reused
// session from an earlier attempt.
type CheckoutIntent struct {
	AlreadyEnrolled bool
	Pending         bool
	SessionURL      string
	Course          *Course
}
