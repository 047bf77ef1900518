package router

import "go.uber.org/fx"

// Module registers router construction for the fx runtime.
var Module = fx.Provide(Setup)
