package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/invoicekit/invoice-summary/internal/common"
	"github.com/invoicekit/invoice-summary/internal/export"
	"github.com/invoicekit/invoice-summary/internal/extract"
	"github.com/invoicekit/invoice-summary/internal/pdftext"
	"github.com/invoicekit/invoice-summary/internal/pipeline"
	"github.com/invoicekit/invoice-summary/internal/server"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	var text extract.TextExtractor
	switch cfg.PDF.Extractor {
	case common.ExtractorPdftotext:
		text = pdftext.NewPdftotext(cfg.PDF.PdftotextBin, logger)
	default:
		text = pdftext.NewReader(logger)
	}

	proc := pipeline.NewProcessor(text, logger)
	exp := export.NewService(logger)
	srv := server.New(proc, exp, cfg.Upload, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr, "extractor", cfg.PDF.Extractor)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
