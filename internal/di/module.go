package di

import (
	"go.uber.org/fx"

	"github.com/opticart/checkout/internal/adapter/location"
	"github.com/opticart/checkout/internal/adapter/orderapi"
	"github.com/opticart/checkout/internal/app"
	"github.com/opticart/checkout/internal/config"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/logger"
	"github.com/opticart/checkout/internal/server/http/handlers"
	"github.com/opticart/checkout/internal/server/http/router"
	"github.com/opticart/checkout/internal/storage/postgres"
	"github.com/opticart/checkout/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		orderapi.Module,
		location.Module,
		gateway.Module,
		usecase.Module,
		fx.Provide(func(client orderapi.Client) usecase.OrderService { return client }),
		fx.Provide(func(facade *app.CheckoutFacade) handlers.CheckoutFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
