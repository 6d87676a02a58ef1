package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/edumart/edumart/internal/config"
)

func newClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	return NewHTTPClient(cfg.GatewayAddress, cfg.GatewaySecretKey, logger)
}

var Module = fx.Module("payment",
	fx.Provide(newClient),
)
