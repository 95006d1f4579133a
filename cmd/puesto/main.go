package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/puesto-lab/puesto/internal/catalog"
	corecfg "github.com/puesto-lab/puesto/internal/core/config"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/puesto-lab/puesto/internal/core/storage/memory"
	"github.com/puesto-lab/puesto/internal/core/storage/xlsx"
	"github.com/puesto-lab/puesto/internal/eventos"
	"github.com/puesto-lab/puesto/internal/projection"
	"github.com/puesto-lab/puesto/internal/server"
	"github.com/puesto-lab/puesto/internal/ventas"
	"github.com/shopspring/decimal"
)

// ledgerStore is what the services need from the storage driver.
type ledgerStore interface {
	storage.TableStore
	storage.HealthChecker
}

func main() {
	configPath := flag.String("config", "puesto.yaml", "Path to configuration file")
	envPath := flag.String("env", ".env", "Path to dotenv file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath, *envPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Storage
	store, err := openStore(cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	for _, table := range storage.AllTables {
		if err := store.Ensure(ctx, table); err != nil {
			slog.Error("Failed to create table", "table", table, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Storage ready", "driver", cfg.Storage.Driver, "data_dir", cfg.Storage.DataDir)

	images, err := catalog.NewImageStore(cfg.Storage.UploadsDir)
	if err != nil {
		slog.Error("Failed to initialize uploads dir", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Services
	catalogSvc := catalog.NewService(store, images)
	eventosSvc := eventos.NewService(store)
	ventasSvc := ventas.NewService(store, ventas.Options{
		DefaultScopeLabel: cfg.Ledger.DefaultScopeLabel,
		DefaultScopeDate:  cfg.Ledger.DefaultScopeDate,
	})
	projectionSvc := projection.NewService(store, cfg.Ledger.TopProducts)

	// 4. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, server.Options{
		Mode:             cfg.Server.Mode,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxBodySizeMB:    cfg.Server.MaxBodySizeMB,
		UploadsDir:       images.Dir(),
	})
	catalogSvc.RegisterRoutes(srv.Engine)
	eventosSvc.RegisterRoutes(srv.Engine)
	ventasSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// Signal handler -> triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func openStore(cfg corecfg.StorageConfig) (ledgerStore, error) {
	switch cfg.Driver {
	case corecfg.DriverMemory:
		return memory.NewStore(), nil
	case corecfg.DriverXLSX:
		return xlsx.NewStore(cfg.DataDir, cfg.Sheet)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
