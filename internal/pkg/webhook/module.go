package webhook

import (
	"github.com/edumart/edumart/internal/config"
	"go.uber.org/fx"
)

// Module provides webhook verifiers for both inbound channels.
var Module = fx.Provide(newIdentityVerifier, newPaymentVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
}

func newIdentityVerifier(p verifierParams) *IdentityVerifier {
	return NewIdentityVerifier(p.Config.IdentityWebhookSecret, DefaultTolerance)
}

func newPaymentVerifier(p verifierParams) *PaymentVerifier {
	return NewPaymentVerifier(p.Config.PaymentWebhookSecret, DefaultTolerance)
}
