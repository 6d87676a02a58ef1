package di

import (
	"github.com/edumart/edumart/internal/adapter/payment"
	"github.com/edumart/edumart/internal/app"
	"github.com/edumart/edumart/internal/config"
	"github.com/edumart/edumart/internal/logger"
	"github.com/edumart/edumart/internal/pkg/auth"
	"github.com/edumart/edumart/internal/pkg/webhook"
	"github.com/edumart/edumart/internal/server/http/handlers"
	"github.com/edumart/edumart/internal/server/http/router"
	"github.com/edumart/edumart/internal/storage/postgres"
	"github.com/edumart/edumart/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		webhook.Module,
		postgres.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(f *app.PlatformFacade) handlers.PlatformFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
