package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/opticart/checkout/internal/config"
	"github.com/opticart/checkout/internal/gateway"
)

// Module provides the checkout orchestrator to the fx container.
var Module = fx.Provide(newCheckoutUseCase)

type checkoutParams struct {
	fx.In

	Orders OrderService
	Loader gateway.Loader
	Gate   gateway.Gateway
	Config *config.Config
	Logger *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Orders, p.Loader, p.Gate, p.Config.GatewayThemeColor, p.Logger)
}
