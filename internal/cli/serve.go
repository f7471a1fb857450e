package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/automata/pkg/adapters/file"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	mcpAdapter "github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/session"
)

// service bundles what the server commands share.
type service struct {
	manager  *session.Manager
	registry *prometheus.Registry
	close    func()
}

// newService wires loader, report store, locks and metrics from cfg.
func newService(cfg Config, logger *slog.Logger) (*service, error) {
	var loader ports.DefinitionLoader
	if cfg.Loam {
		l, err := loamAdapter.Open(cfg.Machines)
		if err != nil {
			return nil, err
		}
		loader = l
	} else {
		loader = file.NewLoader(cfg.Machines)
	}

	svc := &service{
		registry: prometheus.NewRegistry(),
		close:    func() {},
	}
	metrics := observability.NewMetrics(svc.registry)
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithMaxSteps(cfg.MaxSteps),
		session.WithLifecycleHooks(metrics.Hooks()),
		session.WithLifecycleHooks(observability.LogHooks(logger)),
	}

	var store ports.ReportStore
	switch {
	case cfg.Redis.Addr != "":
		var redisOpts []redis.Option
		prefix := redis.DefaultPrefix
		if cfg.Redis.Prefix != "" {
			prefix = cfg.Redis.Prefix
			redisOpts = append(redisOpts, redis.WithPrefix(prefix))
		}
		if cfg.Redis.TTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(cfg.Redis.TTL))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisOpts...)
		opts = append(opts, session.WithLocker(redis.NewLocker(rs.Client(), prefix)))
		svc.close = func() { _ = rs.Close() }
		store = rs
		logger.Info("using redis report store", "addr", cfg.Redis.Addr, "prefix", prefix)
	case cfg.Reports.Dir != "":
		store = file.NewStore(cfg.Reports.Dir)
		logger.Info("using file report store", "dir", cfg.Reports.Dir)
	default:
		store = memory.NewStore()
	}

	mws, err := reportMiddlewares(cfg.Reports)
	if err != nil {
		svc.close()
		return nil, err
	}
	store = middleware.Chain(store, mws...)

	svc.manager = session.NewManager(loader, store, opts...)
	return svc, nil
}

func reportMiddlewares(cfg ReportsConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(cfg.Redact)
		if err != nil {
			return nil, fmt.Errorf("reports.redact: %w", err)
		}
		mws = append(mws, mw)
	}
	if cfg.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("reports.encryption_key: %w", err)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, fmt.Errorf("reports.encryption_key: %w", err)
		}
		mws = append(mws, mw)
	}
	return mws, nil
}

// Serve runs the HTTP API until ctx is cancelled or a signal arrives.
func Serve(ctx context.Context, global GlobalOptions, cfg Config) error {
	logger, closeLog, err := createLogger(global)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.close()

	handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if cfg.HTTP.Metrics {
		handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(svc.registry))
	}
	handler, err := httpAdapter.NewHandler(svc.manager, handlerOpts...)
	if err != nil {
		return err
	}

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()
	return httpAdapter.ListenAndServe(signals.Context(), cfg.HTTP.Addr, handler, logger)
}

// ServeMCP runs the MCP server on the configured transport.
func ServeMCP(ctx context.Context, global GlobalOptions, cfg Config) error {
	logger, closeLog, err := createLogger(global)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.close()

	server := mcpAdapter.NewServer(svc.manager, mcpAdapter.WithLogger(logger))
	switch cfg.MCP.Transport {
	case "", "stdio":
		return server.ServeStdio()
	case "sse":
		signals := runner.NewSignalManager(ctx)
		defer signals.Stop()
		return server.ServeSSE(signals.Context(), cfg.MCP.Addr, cfg.MCP.BaseURL)
	default:
		return fmt.Errorf("unknown mcp transport %q", cfg.MCP.Transport)
	}
}
