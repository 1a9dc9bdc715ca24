package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/utils"
)

// Provider opens a fresh MySQL connection per logical operation. Every
// acquisition resolves the host name first, then retries the dial a bounded
// number of times with a delay between attempts.
type Provider struct {
	host           string
	dsn            string
	tlsEnabled     bool
	connectTimeout time.Duration

	resolver Resolver
	opener   Opener
	clock    Clock
	retry    RetryPolicy
}

// Option customizes a Provider.
type Option func(*Provider)

// WithResolver replaces the DNS resolver.
func WithResolver(r Resolver) Option {
	return func(p *Provider) { p.resolver = r }
}

// WithOpener replaces the function that creates database handles.
func WithOpener(o Opener) Option {
	return func(p *Provider) { p.opener = o }
}

// WithClock replaces the clock used to wait between attempts.
func WithClock(c Clock) Option {
	return func(p *Provider) { p.clock = c }
}

// WithRetryPolicy replaces the retry policy derived from configuration.
func WithRetryPolicy(rp RetryPolicy) Option {
	return func(p *Provider) { p.retry = rp }
}

// NewProvider builds a provider from the database settings. The trust anchor
// is resolved once here; a missing certificate downgrades to a plain
// connection with a warning rather than failing.
func NewProvider(cfg *config.DatabaseSettings, opts ...Option) (*Provider, error) {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = constants.DBConnectTimeout
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = constants.DefaultDBMaxAttempts
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = constants.DBRetryDelay
	}

	p := &Provider{
		host:           cfg.Host,
		connectTimeout: connectTimeout,
		resolver:       net.DefaultResolver,
		opener:         mysqlOpener,
		clock:          realClock{},
		retry: RetryPolicy{
			MaxAttempts: maxAttempts,
			Delay:       FixedDelay(retryDelay),
		},
	}
	for _, opt := range opts {
		opt(p)
	}

	tlsName := ""
	if caPath := resolveTrustAnchor(cfg.SSLCA, cfg.FallbackCA); caPath != "" {
		name, err := registerTrustAnchor(caPath, cfg.Host)
		if err != nil {
			return nil, err
		}
		tlsName = name
	}
	p.tlsEnabled = tlsName != ""
	p.dsn = buildDSN(cfg, connectTimeout, tlsName)

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Bool("tls", p.tlsEnabled).
		Int("max_attempts", p.retry.MaxAttempts).
		Msg("Database provider configured")

	return p, nil
}

// buildDSN formats the driver DSN. The host name is kept as-is so that TLS
// verification matches the certificate.
func buildDSN(cfg *config.DatabaseSettings, timeout time.Duration, tlsName string) string {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Address()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	// Dial timeout only; queries are bounded by the caller's context.
	mc.Timeout = timeout
	if tlsName != "" {
		mc.TLSConfig = tlsName
	}
	return mc.FormatDSN()
}

// TLSEnabled reports whether connections verify the server certificate.
func (p *Provider) TLSEnabled() bool {
	return p.tlsEnabled
}

// Acquire returns a live connection or a connection error once every attempt
// has failed. A name resolution failure is reported immediately.
func (p *Provider) Acquire(ctx context.Context) (*Conn, error) {
	if _, err := p.resolver.LookupHost(ctx, p.host); err != nil {
		log.Error().Err(err).Str("host", p.host).Msg("Failed to resolve database host")
		return nil, utils.NewConnectionError(fmt.Errorf("failed to resolve database host %q: %w", p.host, err))
	}

	var lastErr error
	for attempt := 1; attempt <= p.retry.MaxAttempts; attempt++ {
		conn, err := p.dial(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info().Int("attempt", attempt).Msg("Database connection established after retry")
			}
			return conn, nil
		}
		lastErr = err

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", p.retry.MaxAttempts).
			Msg("Database connection attempt failed")

		if attempt == p.retry.MaxAttempts {
			break
		}
		if err := p.clock.Sleep(ctx, p.retry.Delay(attempt)); err != nil {
			return nil, utils.NewConnectionError(fmt.Errorf("connection retry interrupted: %w", err))
		}
	}

	log.Error().Err(lastErr).Int("attempts", p.retry.MaxAttempts).Msg("Database unreachable")
	return nil, utils.NewConnectionError(fmt.Errorf("database unreachable after %d attempts: %w", p.retry.MaxAttempts, lastErr))
}

// dial opens a handle and proves it with a ping bounded by the connect timeout.
func (p *Provider) dial(ctx context.Context) (*Conn, error) {
	db, err := p.opener(p.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn := newConn(db)

	pingCtx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// HealthCheck acquires a connection, runs a trivial query, and releases it.
func (p *Provider) HealthCheck(ctx context.Context) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.HealthCheck(ctx)
}
