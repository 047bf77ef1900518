package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/opticart/checkout/internal/adapter/location"
	"github.com/opticart/checkout/internal/config"
	"github.com/opticart/checkout/internal/document"
	"github.com/opticart/checkout/internal/domain/repository"
	"github.com/opticart/checkout/internal/gateway"
	"github.com/opticart/checkout/internal/usecase"
	"github.com/opticart/checkout/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newCheckoutFacade,
		newHTTPServer,
		newDocumentEmitter,
		newInvoiceEmitter,
		func(e *worker.InvoiceEmitter) InvoiceQueue { return e },
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Ctx      context.Context
	Checkout *usecase.CheckoutUseCase
	Bridge   *gateway.CallbackBridge
	Journal  repository.AttemptJournal
	Invoices InvoiceQueue
	Lookup   location.Lookup
	Config   *config.Config
	Logger   *slog.Logger
}

func newCheckoutFacade(p facadeParams) *CheckoutFacade {
	return NewCheckoutFacade(
		p.Ctx,
		p.Checkout,
		p.Bridge,
		p.Journal,
		p.Invoices,
		p.Lookup,
		p.Config.GatewayWaitTimeout,
		p.Config.FormDebounce,
		p.Logger,
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

func newDocumentEmitter(cfg *config.Config) (document.Emitter, error) {
	return document.NewFileEmitter(cfg.InvoiceDir)
}

type emitterParams struct {
	fx.In

	Sink   document.Emitter
	Config *config.Config
	Logger *slog.Logger
}

func newInvoiceEmitter(p emitterParams) *worker.InvoiceEmitter {
	return worker.NewInvoiceEmitter(p.Sink, p.Config.InvoiceWorkerPool, 0, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Emitter    *worker.InvoiceEmitter
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting opticart checkout", slog.String("addr", p.Server.Addr))
			p.Emitter.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Emitter.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("opticart checkout stopped")
			return nil
		},
	})
}
