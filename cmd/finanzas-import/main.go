package main

import (
	"context"
	"flag"
	"os"
	"time"

	"finanzas/internal/backend"
	"finanzas/internal/cli"
	"finanzas/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	var filePath string
	flag.StringVar(&filePath, "file", "", "path to the xlsx file to import")
	flag.Parse()

	if filePath == "" {
		logger.Error("Missing -file argument")
		flag.Usage()
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	}()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	amqpClient := backend.NewAMQPClient(backendCfg, logger.Logger)

	txService := services.NewTransactionService(result.Store, amqpClient)
	defer txService.Close()
	importService := services.NewImportService(txService)

	f, err := os.Open(filePath)
	if err != nil {
		logger.Error("Cannot open import file", "error", err, "path", filePath)
		os.Exit(1)
	}
	defer f.Close()

	saved, err := importService.ImportWorkbook(ctx, f)
	if err != nil {
		logger.Error("Import failed", "error", err, "path", filePath)
		os.Exit(1)
	}

	logger.Info("Import completed",
		"path", filePath,
		"imported", len(saved),
		"backend", cfg.DataBackend)
}
