package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/opticart/checkout/internal/config"
)

// Module wires the gateway loader and callback bridge for fx graphs.
var Module = fx.Options(
	fx.Provide(newLoader),
	fx.Provide(NewCallbackBridge),
	fx.Provide(func(b *CallbackBridge) Gateway { return b }),
)

type loaderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newLoader(p loaderParams) (Loader, error) {
	return NewScriptLoader(p.Config.GatewayScriptURL, p.Logger)
}
