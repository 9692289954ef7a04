package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/simple-dns/internal/dns/common/clock"
	"github.com/haukened/simple-dns/internal/dns/common/log"
	"github.com/haukened/simple-dns/internal/dns/config"
	"github.com/haukened/simple-dns/internal/dns/domain"
	"github.com/haukened/simple-dns/internal/dns/gateways/authority"
	"github.com/haukened/simple-dns/internal/dns/gateways/transport"
	"github.com/haukened/simple-dns/internal/dns/repos/catalog"
	"github.com/haukened/simple-dns/internal/dns/repos/zone"
	"github.com/haukened/simple-dns/internal/dns/services/resolver"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "simple-dnsd"
)

// Application holds all the components of the DNS server
type Application struct {
	config    *config.AppConfig
	catalog   *catalog.Catalog
	transport resolver.ServerTransport
	resolver  *resolver.Resolver
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":         appName,
		"version":     version,
		"env":         cfg.Env,
		"log_level":   cfg.LogLevel,
		"config_file": cfg.ConfigFile,
		"forwarders":  cfg.ForwardServers,
	}, "Starting simple-dns server")

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	// Build application with all dependencies
	app, err := buildApplication(ctx, cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "simple-dns server stopped gracefully")
}

// buildApplication loads the zone document, compiles the catalog and wires the
// resolver to the configured transport on the document's bind address.
func buildApplication(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	doc, err := zone.LoadConfig(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone configuration: %w", err)
	}

	cat, err := buildCatalog(ctx, cfg, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble catalog: %w", err)
	}

	tr, err := transport.NewTransport(transport.TransportType(cfg.Transport), doc.Bind, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	res := resolver.NewResolver(resolver.ResolverOptions{
		Catalog:   cat,
		Clock:     clock.RealClock{},
		Logger:    logger,
		Transport: tr,
	})

	return &Application{
		config:    cfg,
		catalog:   cat,
		transport: tr,
		resolver:  res,
	}, nil
}

// buildCatalog assembles the catalog within the configured startup timeout.
func buildCatalog(ctx context.Context, cfg *config.AppConfig, doc domain.ZoneConfig) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StartupTimeout)
	defer cancel()

	return catalog.Assemble(ctx, doc, catalog.Options{
		Zone: zone.Options{SOA: cfg.SOA()},
		Forward: authority.ForwardOptions{
			Servers:  cfg.ForwardServers,
			Timeout:  cfg.ForwardTimeout,
			Net:      cfg.ForwardNet,
			Parallel: cfg.ForwardParallel,
		},
		RouteCacheSize: cfg.RouteCacheSize,
	})
}

// Run starts the DNS server and blocks until context is cancelled
func (app *Application) Run(ctx context.Context) error {
	if err := app.resolver.Start(ctx); err != nil {
		return fmt.Errorf("failed to start DNS transport: %w", err)
	}

	log.Info(map[string]any{
		"address": app.transport.Address(),
		"zones":   app.catalog.Origins(),
	}, "DNS server started")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")

	if err := app.resolver.Stop(); err != nil {
		log.Warn(map[string]any{"error": err}, "Error during transport shutdown")
	}

	hits, misses, evictions := app.catalog.RouteStats()
	log.Info(map[string]any{
		"route_hits":      hits,
		"route_misses":    misses,
		"route_evictions": evictions,
	}, "Graceful shutdown completed")
	return nil
}
