package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridwanfathin/gst-invoice-service/internal/document"
	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/metrics"
	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
	"github.com/ridwanfathin/gst-invoice-service/internal/storage"
)

// Renderer lays out a computed invoice as a document
type Renderer interface {
	Render(company domain.CompanyInfo, meta domain.InvoiceMeta, breakdown domain.TotalsBreakdown, tax domain.TaxConfig, logo []byte) (*document.Document, error)
}

// GeneratedInvoice is a rendered invoice together with the figures printed on it
type GeneratedInvoice struct {
	Company   domain.CompanyInfo
	Meta      domain.InvoiceMeta
	Breakdown domain.TotalsBreakdown
	Document  *document.Document
}

// InvoiceService defines the invoice operations exposed over HTTP and the CLI
type InvoiceService interface {
	NewInvoiceNumber() string
	Totals(draft *domain.InvoiceDraft) domain.TotalsBreakdown
	Generate(ctx context.Context, draft *domain.InvoiceDraft, logo []byte) (*GeneratedInvoice, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	renderer   Renderer
	companies  repository.CompanyRepository
	logos      storage.LogoStore
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	workerPool chan struct{}
	now        func() time.Time
}

// InvoiceServiceConfig wires the invoice service. Companies, Logos and
// Metrics are optional.
type InvoiceServiceConfig struct {
	Renderer   Renderer
	Companies  repository.CompanyRepository
	Logos      storage.LogoStore
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	MaxWorkers int
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(cfg InvoiceServiceConfig) *InvoiceServiceImpl {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	return &InvoiceServiceImpl{
		renderer:   cfg.Renderer,
		companies:  cfg.Companies,
		logos:      cfg.Logos,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		workerPool: make(chan struct{}, cfg.MaxWorkers),
		now:        time.Now,
	}
}

// NewInvoiceNumber returns a default invoice number for the current time
func (s *InvoiceServiceImpl) NewInvoiceNumber() string {
	return domain.NewInvoiceNumber(s.now())
}

// Totals computes the breakdown for the draft
func (s *InvoiceServiceImpl) Totals(draft *domain.InvoiceDraft) domain.TotalsBreakdown {
	return draft.Totals()
}

// Generate fills company defaults from the referenced profile, computes
// totals and renders the PDF. A supplied logo wins over the profile logo.
func (s *InvoiceServiceImpl) Generate(ctx context.Context, draft *domain.InvoiceDraft, logo []byte) (*GeneratedInvoice, error) {
	// Acquire worker from pool
	select {
	case s.workerPool <- struct{}{}:
		defer func() {
			<-s.workerPool
		}()
	case <-ctx.Done():
		return nil, &ServiceError{
			Op:  "acquire_worker",
			Err: ctx.Err(),
		}
	}

	company := draft.Company
	if draft.CompanyID != "" {
		if s.companies == nil {
			return nil, &ServiceError{Op: "load_company_profile", Err: repository.ErrProfileNotFound}
		}
		profile, err := s.companies.GetProfile(ctx, draft.CompanyID)
		if err != nil {
			return nil, &ServiceError{Op: "load_company_profile", Err: err}
		}
		company = profile.ApplyTo(company)
		if len(logo) == 0 && profile.LogoKey != "" {
			logo = s.profileLogo(ctx, profile)
		}
	}

	breakdown := draft.Totals()

	start := time.Now()
	doc, err := s.renderer.Render(company, draft.Meta, breakdown, draft.Tax, logo)
	s.metrics.ObserveRender(pagesOf(doc), len(logo) > 0, doc != nil && doc.LogoEmbedded, time.Since(start), err)
	if err != nil {
		return nil, &ServiceError{Op: "render_invoice", Err: err}
	}

	s.logger.Info().
		Str("invoice_number", draft.Meta.Number).
		Int("lines", len(breakdown.Lines)).
		Int("pages", doc.Pages).
		Bool("logo", doc.LogoEmbedded).
		Str("grand_total", breakdown.GrandTotal.StringFixed(domain.MoneyPlaces)).
		Msg("invoice rendered")

	return &GeneratedInvoice{
		Company:   company,
		Meta:      draft.Meta,
		Breakdown: breakdown,
		Document:  doc,
	}, nil
}

// profileLogo loads the stored logo. Failures only cost the logo.
func (s *InvoiceServiceImpl) profileLogo(ctx context.Context, profile *domain.CompanyProfile) []byte {
	if s.logos == nil {
		return nil
	}
	data, err := s.logos.Get(ctx, profile.LogoKey)
	if err != nil {
		evt := s.logger.Warn()
		if errors.Is(err, storage.ErrLogoNotFound) {
			evt = s.logger.Info()
		}
		evt.Err(err).
			Str("company_id", profile.ID).
			Str("logo_key", profile.LogoKey).
			Msg("profile logo unavailable, rendering without it")
		return nil
	}
	return data
}

func pagesOf(doc *document.Document) int {
	if doc == nil {
		return 0
	}
	return doc.Pages
}
