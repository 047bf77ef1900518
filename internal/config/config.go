package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	OrderAPIAddress    string
	LocationAPIAddress string
	GatewayScriptURL   string
	GatewayThemeColor  string
	GatewayWaitTimeout time.Duration
	FormDebounce       time.Duration
	InvoiceDir         string
	InvoiceWorkerPool  int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultGatewayScriptURL   = "https://checkout.razorpay.com/v1/checkout.js"
	defaultGatewayThemeColor  = "#10847e"
	defaultGatewayWaitTimeout = 15 * time.Minute
	defaultFormDebounce       = 400 * time.Millisecond
	defaultInvoiceDir         = "invoices"
	defaultInvoiceWorkerPool  = 2
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		OrderAPIAddress:    getString(lookup, "ORDER_API_ADDRESS", ""),
		LocationAPIAddress: getString(lookup, "LOCATION_API_ADDRESS", ""),
		GatewayScriptURL:   getString(lookup, "GATEWAY_SCRIPT_URL", defaultGatewayScriptURL),
		GatewayThemeColor:  getString(lookup, "GATEWAY_THEME_COLOR", defaultGatewayThemeColor),
		GatewayWaitTimeout: getDuration(lookup, "GATEWAY_WAIT_TIMEOUT", defaultGatewayWaitTimeout),
		FormDebounce:       getDuration(lookup, "FORM_DEBOUNCE", defaultFormDebounce),
		InvoiceDir:         getString(lookup, "INVOICE_DIR", defaultInvoiceDir),
		InvoiceWorkerPool:  getInt(lookup, "INVOICE_WORKER_POOL", defaultInvoiceWorkerPool),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("opticart-checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		waitTimeoutStr     = cfg.GatewayWaitTimeout.String()
		debounceStr        = cfg.FormDebounce.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.OrderAPIAddress, "b", cfg.OrderAPIAddress, "Order backend base URL")
	fs.StringVar(&cfg.LocationAPIAddress, "l", cfg.LocationAPIAddress, "Location lookup base URL")
	fs.StringVar(&cfg.GatewayScriptURL, "gateway-script", cfg.GatewayScriptURL, "Payment gateway client script URL")
	fs.StringVar(&cfg.GatewayThemeColor, "gateway-theme", cfg.GatewayThemeColor, "Payment gateway UI theme color")
	fs.StringVar(&waitTimeoutStr, "gateway-wait", waitTimeoutStr, "Maximum wait for a gateway callback")
	fs.StringVar(&debounceStr, "form-debounce", debounceStr, "Postal-code lookup debounce window")
	fs.StringVar(&cfg.InvoiceDir, "invoice-dir", cfg.InvoiceDir, "Directory for generated invoice artifacts")
	fs.IntVar(&cfg.InvoiceWorkerPool, "invoice-pool", cfg.InvoiceWorkerPool, "Number of concurrent invoice workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayWaitTimeout, err = time.ParseDuration(waitTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway wait timeout: %w", err)
	}

	if cfg.FormDebounce, err = time.ParseDuration(debounceStr); err != nil {
		return nil, fmt.Errorf("invalid form debounce: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.GatewayWaitTimeout <= 0 {
		cfg.GatewayWaitTimeout = defaultGatewayWaitTimeout
	}

	if cfg.FormDebounce <= 0 {
		cfg.FormDebounce = defaultFormDebounce
	}

	if cfg.InvoiceWorkerPool <= 0 {
		cfg.InvoiceWorkerPool = defaultInvoiceWorkerPool
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.OrderAPIAddress == "" {
		return nil, fmt.Errorf("order backend address must be provided")
	}

	if cfg.LocationAPIAddress == "" {
		return nil, fmt.Errorf("location lookup address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
