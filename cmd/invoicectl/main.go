// Command invoicectl computes totals and renders invoice PDFs from JSON
// files without running the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ridwanfathin/gst-invoice-service/internal/bootstrap"
	"github.com/ridwanfathin/gst-invoice-service/internal/config"
	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/logging"
	"github.com/ridwanfathin/gst-invoice-service/internal/model"
	"github.com/ridwanfathin/gst-invoice-service/internal/service"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "invoicectl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicectl",
		Usage: "GST invoice tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:   "number",
				Usage:  "print a fresh invoice number",
				Action: numberAction,
			},
			{
				Name:   "totals",
				Usage:  "compute invoice totals and print them as JSON",
				Flags:  []cli.Flag{inputFlag()},
				Action: totalsAction,
			},
			{
				Name:  "render",
				Usage: "render an invoice PDF",
				Flags: []cli.Flag{
					inputFlag(),
					&cli.StringFlag{Name: "logo", Aliases: []string{"l"}, Usage: "logo image file"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default <invoice number>.pdf)"},
					&cli.BoolFlag{Name: "profiles", Usage: "resolve company_id against the configured profile store"},
				},
				Action: renderAction,
			},
		},
	}
}

func inputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "invoice request JSON file, - for stdin",
		Required: true,
	}
}

func numberAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, domain.NewInvoiceNumber(time.Now()))
	return err
}

func totalsAction(c *cli.Context) error {
	draft, err := readDraft(c.String("input"), c.App.Reader)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(model.NewTotalsResponse(draft.Totals(), draft.Tax))
}

func renderAction(c *cli.Context) error {
	cfg := config.FromEnv()
	logger := logging.NewWithWriter(c.App.ErrWriter, "pretty", c.String("log-level"))

	draft, err := readDraft(c.String("input"), c.App.Reader)
	if err != nil {
		return err
	}

	var logo []byte
	if path := c.String("logo"); path != "" {
		logo, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read logo: %w", err)
		}
	}

	renderer, err := bootstrap.NewRenderer(cfg, logger)
	if err != nil {
		return err
	}

	svcCfg := service.InvoiceServiceConfig{
		Renderer:   renderer,
		Logger:     logger,
		MaxWorkers: 1,
	}
	if c.Bool("profiles") {
		companies, closeCompanies, err := bootstrap.OpenCompanyRepository(c.Context, cfg, logger)
		if err != nil {
			return err
		}
		defer closeCompanies()
		logos, err := bootstrap.OpenLogoStore(cfg, logger)
		if err != nil {
			return err
		}
		svcCfg.Companies = companies
		svcCfg.Logos = logos
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := service.NewInvoiceService(svcCfg).Generate(ctx, draft, logo)
	if err != nil {
		return err
	}

	path := c.String("out")
	if path == "" {
		path = out.Meta.Number + ".pdf"
	}
	if err := os.WriteFile(path, out.Document.Content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info().
		Str("file", filepath.Clean(path)).
		Int("pages", out.Document.Pages).
		Str("grand_total", out.Breakdown.GrandTotal.StringFixed(domain.MoneyPlaces)).
		Msg("invoice written")
	_, err = fmt.Fprintln(c.App.Writer, path)
	return err
}

func readDraft(path string, stdin io.Reader) (*domain.InvoiceDraft, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice: %w", err)
	}

	var req model.InvoiceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid invoice JSON: %w", err)
	}
	return req.ToDomain(time.Now())
}

