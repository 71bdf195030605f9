package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/config"
	httpapi "github.com/garyjia/payroll-report/internal/interfaces/http"
	"github.com/garyjia/payroll-report/internal/parser"
	"github.com/garyjia/payroll-report/internal/report"
	"github.com/garyjia/payroll-report/internal/service"
	"github.com/garyjia/payroll-report/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	registry, err := report.NewDefaultRegistry(report.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to register report generators", zap.Error(err))
	}
	reportService := service.NewReportService(parser.NewParser(logger), registry, logger)

	server, err := httpapi.NewServer(httpapi.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}, reportService, logger)
	if err != nil {
		logger.Fatal("Failed to create HTTP server", zap.Error(err))
	}

	logger.Info("Starting payroll report server",
		zap.String("version", "1.0.0"),
		zap.String("address", server.Address()),
		zap.Strings("report_types", registry.Types()))

	// Serve until SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("Server exited successfully")
}
