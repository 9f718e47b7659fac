package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/ridwanfathin/gst-invoice-service/docs"
	"github.com/ridwanfathin/gst-invoice-service/internal/bootstrap"
	"github.com/ridwanfathin/gst-invoice-service/internal/config"
	"github.com/ridwanfathin/gst-invoice-service/internal/handler"
	"github.com/ridwanfathin/gst-invoice-service/internal/logging"
	"github.com/ridwanfathin/gst-invoice-service/internal/metrics"
	"github.com/ridwanfathin/gst-invoice-service/internal/server"
	"github.com/ridwanfathin/gst-invoice-service/internal/service"
)

// @title GST Invoice Service API
// @version 1.0
// @description Builds GST invoices: totals preview, PDF generation and company header defaults.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)

	if err := handler.RegisterValidators(); err != nil {
		logger.Fatal().Err(err).Msg("failed to register request validators")
	}

	// The renderer self check must pass before the service accepts traffic
	renderer, err := bootstrap.NewRenderer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("pdf renderer failed its startup check")
	}

	ctx := context.Background()

	companies, closeCompanies, err := bootstrap.OpenCompanyRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise company repository")
	}
	defer closeCompanies()

	logos, err := bootstrap.OpenLogoStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise logo storage")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(cfg.MetricsNamespace, registry)

	invoiceService := service.NewInvoiceService(service.InvoiceServiceConfig{
		Renderer:   renderer,
		Companies:  companies,
		Logos:      logos,
		Metrics:    m,
		Logger:     logger.With().Str("component", "invoice_service").Logger(),
		MaxWorkers: cfg.MaxWorkers,
	})
	companyService := service.NewCompanyService(companies, logos, cfg.MaxLogoBytes,
		logger.With().Str("component", "company_service").Logger())

	appServer := server.NewServer(cfg, server.Options{
		Logger:   logger,
		Metrics:  m,
		Gatherer: registry,
		Handlers: []server.RouteRegistrar{
			handler.NewInvoiceHandler(invoiceService, cfg.MaxLogoBytes),
			handler.NewCompanyHandler(companyService, cfg.MaxLogoBytes),
		},
	})

	// Start server (blocking call)
	if err := appServer.Start(); err != nil {
		logger.Error().Err(err).Msg("server error")
		closeCompanies()
		os.Exit(1)
	}

	logger.Info().Msg("server shutdown complete")
}
