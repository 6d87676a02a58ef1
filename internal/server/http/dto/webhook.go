package dto

import "strings"

// IdentityEvent is an identity-provider webhook delivery.
type IdentityEvent struct {
	Type string           `json:"type"`
	Data IdentityUserData `json:"data"`
}

// IdentityUserData mirrors the provider's user object.
type IdentityUserData struct {
	ID             string           `json:"id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	ImageURL       string           `json:"image_url"`
	EmailAddresses []IdentityEmail  `json:"email_addresses"`
	PublicMetadata IdentityMetadata `json:"public_metadata"`
}

// IdentityEmail is one address attached to a provider user.
type IdentityEmail struct {
	EmailAddress string `json:"email_address"`
}

// IdentityMetadata carries platform fields stored at the provider.
type IdentityMetadata struct {
	Role string `json:"role"`
}

// FullName joins the provider name parts.
func (d IdentityUserData) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
}

// PrimaryEmail returns the first address, if any.
func (d IdentityUserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// PaymentEvent is a payment-gateway webhook delivery. Only the session
// reference is read from it; session state is fetched from the gateway.
type PaymentEvent struct {
	Type string           `json:"type"`
	Data PaymentEventData `json:"data"`
}

// PaymentEventData wraps the event object.
type PaymentEventData struct {
	Object PaymentSessionRef `json:"object"`
}

// PaymentSessionRef identifies the checkout session the event concerns.
type PaymentSessionRef struct {
	ID string `json:"id"`
}
