package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finanzas/internal/cli"
	"finanzas/internal/core"
	"finanzas/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	var (
		fromFlag string
		toFlag   string
		outDir   string
	)
	flag.StringVar(&fromFlag, "from", "", "range start, YYYY-MM-DD (default: open)")
	flag.StringVar(&toFlag, "to", "", "range end, YYYY-MM-DD (default: today)")
	flag.StringVar(&outDir, "out", ".", "output directory for the report files")
	flag.Parse()

	from := core.NewDate(1900, 1, 1)
	to := core.Today()
	var err error
	if fromFlag != "" {
		if from, err = core.ParseISO(fromFlag); err != nil {
			logger.Error("Invalid -from date", "value", fromFlag)
			os.Exit(2)
		}
	}
	if toFlag != "" {
		if to, err = core.ParseISO(toFlag); err != nil {
			logger.Error("Invalid -to date", "value", toFlag)
			os.Exit(2)
		}
	}

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	}()

	txService := services.NewTransactionService(result.Store, nil)
	reportService := services.NewReportService(txService)

	exported, err := reportService.ExportBoth(ctx, from, to)
	if err != nil {
		logger.Error("Report export failed", "error", err)
		os.Exit(1)
	}

	base := fmt.Sprintf("reporte_%s_%s", from.ISO(), to.ISO())
	pdfPath := filepath.Join(outDir, base+".pdf")
	xlsxPath := filepath.Join(outDir, base+".xlsx")

	if err := os.WriteFile(pdfPath, exported.PDF, 0o644); err != nil {
		logger.Error("Cannot write PDF report", "error", err, "path", pdfPath)
		os.Exit(1)
	}
	if err := os.WriteFile(xlsxPath, exported.XLSX, 0o644); err != nil {
		logger.Error("Cannot write xlsx report", "error", err, "path", xlsxPath)
		os.Exit(1)
	}

	logger.Info("Reports written",
		"pdf", pdfPath,
		"xlsx", xlsxPath)
}
