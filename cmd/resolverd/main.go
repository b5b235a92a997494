package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/api/middleware"
	"github.com/feral-file/token-resolver/internal/api/server"
	"github.com/feral-file/token-resolver/internal/breaker"
	"github.com/feral-file/token-resolver/internal/cache"
	"github.com/feral-file/token-resolver/internal/config"
	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/logger"
	"github.com/feral-file/token-resolver/internal/messaging"
	"github.com/feral-file/token-resolver/internal/providers"
	"github.com/feral-file/token-resolver/internal/providers/coingecko"
	"github.com/feral-file/token-resolver/internal/providers/dexscreener"
	"github.com/feral-file/token-resolver/internal/providers/etherscan"
	"github.com/feral-file/token-resolver/internal/providers/oneinch"
	"github.com/feral-file/token-resolver/internal/ratelimit"
	"github.com/feral-file/token-resolver/internal/registry"
	"github.com/feral-file/token-resolver/internal/resolver"
	"github.com/feral-file/token-resolver/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadResolverConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "resolverd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting token resolver service")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Adapters shared across components
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Providers.CallTimeout, adapter.DefaultRetryConfig())

	// Message broker is optional
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = messaging.NewPublisher(messaging.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS not configured, token events will not be published")
	}

	// Upstream provider clients, tried in this order
	prices := cache.NewPriceCache(cfg.Cache.PriceTTL, clock)
	dexClient := dexscreener.NewClient(httpClient, jsonAdapter, clock, prices, cfg.Providers.DexScreener.APIURL)
	etherscanKeys := make(map[domain.ChainID]string, len(cfg.Providers.EtherscanKeys))
	for name, key := range cfg.Providers.EtherscanKeys {
		etherscanKeys[domain.ChainID(name)] = key
	}
	chain := []providers.Client{
		coingecko.NewClient(httpClient, jsonAdapter, cfg.Providers.CoinGecko.APIURL, cfg.Providers.CoinGecko.APIKey),
		oneinch.NewClient(httpClient, jsonAdapter, cfg.Providers.OneInch.APIURL, cfg.Providers.OneInch.APIKey),
		etherscan.NewClient(httpClient, jsonAdapter, etherscanKeys),
		dexClient,
	}

	limiter := ratelimit.NewManager(map[string]int{
		coingecko.ProviderName:   cfg.Providers.CoinGecko.RequestsPerMinute,
		oneinch.ProviderName:     cfg.Providers.OneInch.RequestsPerMinute,
		etherscan.ProviderName:   cfg.Providers.Etherscan.RequestsPerMinute,
		dexscreener.ProviderName: cfg.Providers.DexScreener.RequestsPerMinute,
	}, ratelimit.DefaultRequestsPerMinute, clock)

	breakers := breaker.NewSet(cfg.Providers.BreakerThreshold, cfg.Providers.BreakerCooldown, clock)

	resolverService := resolver.New(resolver.Config{
		CacheTTL:    cfg.Cache.ContractTTL,
		CallTimeout: cfg.Providers.CallTimeout,
	}, dataStore, chain, limiter, breakers, publisher, clock)

	tokenRegistry := registry.New(dexClient, publisher, clock, cfg.Registry.VerifyWorkers)
	defer tokenRegistry.Stop()

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, resolverService, tokenRegistry, dexClient, dataStore)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "server"))
	}
}
