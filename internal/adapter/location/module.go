package location

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/opticart/checkout/internal/config"
)

// Module exposes the location lookup implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Lookup, error) {
	return NewHTTPClient(p.Config.LocationAPIAddress, p.Logger)
}
