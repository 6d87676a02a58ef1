package usecase

import (
	"go.uber.org/fx"

	"github.com/edumart/edumart/internal/config"
)

func newPurchaseConfig(cfg *config.Config) PurchaseConfig {
	return PurchaseConfig{
		Currency:    cfg.Currency,
		RedirectURL: cfg.CheckoutRedirectURL,
	}
}

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newPurchaseConfig,
	NewUserUseCase,
	NewCourseUseCase,
	NewEnrollmentUseCase,
	NewPurchaseUseCase,
)
