package orderapi

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/opticart/checkout/internal/config"
)

// Module exposes the order api client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.OrderAPIAddress, p.Logger)
}
