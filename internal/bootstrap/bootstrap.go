// Package bootstrap builds the long-lived collaborators shared by the HTTP
// server and the command line tool from a Config.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ridwanfathin/gst-invoice-service/internal/config"
	"github.com/ridwanfathin/gst-invoice-service/internal/database"
	"github.com/ridwanfathin/gst-invoice-service/internal/document"
	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
	"github.com/ridwanfathin/gst-invoice-service/internal/storage"
)

// NewRenderer builds the PDF renderer. An error means the renderer failed
// its self check and the process should not start.
func NewRenderer(cfg *config.Config, logger zerolog.Logger) (*document.Renderer, error) {
	return document.NewRenderer(document.Options{
		FontPath:     cfg.FontPath,
		BoldFontPath: cfg.BoldFontPath,
		CourtesyLine: cfg.CourtesyLine,
		Compress:     cfg.PDFCompress,
		Logger:       logger.With().Str("component", "renderer").Logger(),
	})
}

// OpenCompanyRepository returns the PostgreSQL repository when
// POSTGRES_DB_URL is set and the JSON file repository otherwise. The
// returned func releases the database pool.
func OpenCompanyRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.CompanyRepository, func(), error) {
	if cfg.UsePostgres() {
		db, err := database.NewPostgresDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info().Msg("company profiles stored in PostgreSQL")
		return repository.NewPostgresCompanyRepository(db.GetPool()), db.Close, nil
	}

	repo, err := repository.NewFileRepository(cfg.ProfileDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("dir", cfg.ProfileDir).Msg("company profiles stored on disk")
	return repo, func() {}, nil
}

// OpenLogoStore returns the S3 store when credentials are configured and the
// disk store otherwise, wrapped in a read-through cache.
func OpenLogoStore(cfg *config.Config, logger zerolog.Logger) (storage.LogoStore, error) {
	var (
		store storage.LogoStore
		err   error
	)

	if cfg.UseS3() {
		store, err = storage.NewS3LogoStore(&storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("logos stored in S3")
	} else {
		store, err = storage.NewDiskLogoStore(cfg.LogoDir)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("dir", cfg.LogoDir).Msg("logos stored on disk")
	}

	if cfg.LogoCacheTTL <= 0 {
		return store, nil
	}
	return storage.NewCachedLogoStore(store, cfg.LogoCacheTTL), nil
}
