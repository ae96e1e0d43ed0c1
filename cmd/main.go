package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpchandler "github.com/dtroode/xcard-server/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/xcard-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/xcard-server/internal/api/grpc/server"
	httphandler "github.com/dtroode/xcard-server/internal/api/http/handler"
	httprouter "github.com/dtroode/xcard-server/internal/api/http/router"
	httpserver "github.com/dtroode/xcard-server/internal/api/http/server"
	"github.com/dtroode/xcard-server/internal/config"
	"github.com/dtroode/xcard-server/internal/logger"
	"github.com/dtroode/xcard-server/internal/model"
	"github.com/dtroode/xcard-server/internal/profile/mock"
	"github.com/dtroode/xcard-server/internal/profile/twitter"
	"github.com/dtroode/xcard-server/internal/repository/postgres"
	"github.com/dtroode/xcard-server/internal/repository/sqlite"
	"github.com/dtroode/xcard-server/internal/server"
	"github.com/dtroode/xcard-server/internal/service"
	storage "github.com/dtroode/xcard-server/internal/storage/minio"
	"github.com/dtroode/xcard-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.CardTokenTTL)

	registryService := service.NewRegistry(store, tokenManager, cfg.Database.TxTimeout, logger)
	if _, err := registryService.InitStore(ctx); err != nil {
		logger.Fatal("failed to initialize card counter", "error", err)
	}

	profileService := service.NewProfileResolver(
		cfg.Twitter.ClientID != "" && cfg.Twitter.ClientSecret != "",
		logger,
		twitter.NewClient(cfg.Twitter.BaseURL, cfg.Twitter.BearerToken, cfg.Twitter.Timeout),
		mock.NewGenerator(),
	)

	var cardImageService httphandler.CardImageService
	if cfg.Storage.Enabled {
		storageClient, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		cardImageService = service.NewCardImage(store, tokenManager, storageClient, cfg.HTTP.MaxImageBytes, logger)
	}

	health := grpchandler.NewHealth(store, cfg.GRPC.HealthInterval, logger)
	go health.Run(ctx)

	servers := []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{
			srv: httpserver.NewHTTPServer(
				httprouter.New(registryService, profileService, cardImageService, logger).Register(),
				fmt.Sprintf(":%s", cfg.HTTP.Port),
				cfg.HTTP.ReadTimeout,
			),
			sl: server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName),
		},
		{
			srv: grpcserver.NewGRPCServer(
				grpcrouter.New(registryService, health, logger).Register(),
				fmt.Sprintf(":%s", cfg.GRPC.Port),
			),
			sl: server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName),
		},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStore opens the card store selected by cfg.Driver and returns its closer.
func openStore(ctx context.Context, cfg config.Database) (model.CardStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewCardRepository(conn.DB), conn.Close, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
