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
	RunAddress            string
	DatabaseURI           string
	GatewayAddress        string
	GatewaySecretKey      string
	PaymentWebhookSecret  string
	IdentityWebhookSecret string
	AuthSecret            string
	Currency              string
	CheckoutRedirectURL   string
	ReconcileInterval     time.Duration
	PendingMaxAge         time.Duration
	WorkerPoolSize        int
	ReconcileBatch        int
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultAuthSecret        = "change-me-in-production"
	defaultCurrency          = "usd"
	defaultReconcileInterval = time.Minute
	defaultPendingMaxAge     = 30 * time.Minute
	defaultWorkerPoolSize    = 4
	defaultReconcileBatch    = 32
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:        getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		GatewaySecretKey:      getString(lookup, "PAYMENT_GATEWAY_SECRET_KEY", ""),
		PaymentWebhookSecret:  getString(lookup, "PAYMENT_WEBHOOK_SECRET", ""),
		IdentityWebhookSecret: getString(lookup, "IDENTITY_WEBHOOK_SECRET", ""),
		AuthSecret:            getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		Currency:              getString(lookup, "CURRENCY", defaultCurrency),
		CheckoutRedirectURL:   getString(lookup, "CHECKOUT_REDIRECT_URL", ""),
		ReconcileInterval:     getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		PendingMaxAge:         getDuration(lookup, "PENDING_MAX_AGE", defaultPendingMaxAge),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ReconcileBatch:        getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatch),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("edumart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		pendingMaxAgeStr     = cfg.PendingMaxAge.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewaySecretKey, "gateway-key", cfg.GatewaySecretKey, "Payment gateway API secret key")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for verifying identity tokens")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Checkout currency code")
	fs.StringVar(&cfg.CheckoutRedirectURL, "redirect-url", cfg.CheckoutRedirectURL, "Frontend base URL for checkout redirects")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between pending purchase sweeps")
	fs.StringVar(&pendingMaxAgeStr, "pending-max-age", pendingMaxAgeStr, "Age after which a pending purchase is reconciled")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum purchases per reconcile batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.PendingMaxAge, err = time.ParseDuration(pendingMaxAgeStr); err != nil {
		return nil, fmt.Errorf("invalid pending max age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	secretFiles := map[string]*string{
		"AUTH_SECRET_FILE":             &cfg.AuthSecret,
		"PAYMENT_GATEWAY_SECRET_FILE":  &cfg.GatewaySecretKey,
		"PAYMENT_WEBHOOK_SECRET_FILE":  &cfg.PaymentWebhookSecret,
		"IDENTITY_WEBHOOK_SECRET_FILE": &cfg.IdentityWebhookSecret,
	}
	for env, dst := range secretFiles {
		secretFile, ok := lookup(env)
		if !ok || secretFile == "" {
			continue
		}
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read secret file %s: %w", env, err)
		}
		*dst = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.PendingMaxAge <= 0 {
		cfg.PendingMaxAge = defaultPendingMaxAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
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
