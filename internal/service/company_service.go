package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/imageutil"
	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
	"github.com/ridwanfathin/gst-invoice-service/internal/storage"
)

// logoUploadMaxDimension bounds stored logos; the renderer never draws them
// larger than a few hundred pixels.
const logoUploadMaxDimension = 1024

// CompanyService manages company header defaults and their logos
type CompanyService interface {
	GetProfile(ctx context.Context, id string) (*domain.CompanyProfile, error)
	SaveProfile(ctx context.Context, id string, company domain.CompanyInfo) (*domain.CompanyProfile, error)
	UploadLogo(ctx context.Context, id string, logo []byte) (*domain.CompanyProfile, error)
}

// CompanyServiceImpl implements the CompanyService interface
type CompanyServiceImpl struct {
	repository   repository.CompanyRepository
	logos        storage.LogoStore
	maxLogoBytes int64
	logger       zerolog.Logger
	newID        func() string
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(repo repository.CompanyRepository, logos storage.LogoStore, maxLogoBytes int64, logger zerolog.Logger) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		repository:   repo,
		logos:        logos,
		maxLogoBytes: maxLogoBytes,
		logger:       logger,
		newID:        uuid.NewString,
	}
}

// GetProfile returns the stored profile
func (s *CompanyServiceImpl) GetProfile(ctx context.Context, id string) (*domain.CompanyProfile, error) {
	profile, err := s.repository.GetProfile(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "get_profile", Err: err}
	}
	return profile, nil
}

// SaveProfile creates or replaces the header fields, keeping any logo
func (s *CompanyServiceImpl) SaveProfile(ctx context.Context, id string, company domain.CompanyInfo) (*domain.CompanyProfile, error) {
	profile, err := s.loadOrNew(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "save_profile", Err: err}
	}

	profile.Company = domain.CompanyInfo{
		Name:    strings.TrimSpace(company.Name),
		Email:   strings.TrimSpace(company.Email),
		Phone:   strings.TrimSpace(company.Phone),
		Address: strings.TrimRight(company.Address, " \r\n"),
	}

	if err := s.repository.UpsertProfile(ctx, profile); err != nil {
		return nil, &ServiceError{Op: "save_profile", Err: err}
	}
	return profile, nil
}

// UploadLogo validates and downsizes the image, stores it under a fresh key
// and points the profile at it. Creates the profile when missing.
func (s *CompanyServiceImpl) UploadLogo(ctx context.Context, id string, logo []byte) (*domain.CompanyProfile, error) {
	if s.logos == nil {
		return nil, &ServiceError{Op: "upload_logo", Err: fmt.Errorf("logo storage is not configured")}
	}
	if len(logo) == 0 {
		return nil, &ServiceError{Op: "upload_logo", Err: fmt.Errorf("%w: empty upload", ErrInvalidLogo)}
	}
	if s.maxLogoBytes > 0 && int64(len(logo)) > s.maxLogoBytes {
		return nil, &ServiceError{Op: "upload_logo", Err: ErrLogoTooLarge}
	}
	if err := repository.ValidateProfileID(id); err != nil {
		return nil, &ServiceError{Op: "upload_logo", Err: err}
	}

	resized, err := imageutil.ResizeImageReader(bytes.NewReader(logo), &imageutil.ResizeConfig{
		MaxDimension: logoUploadMaxDimension,
		OutputFormat: "png",
	})
	if err != nil {
		return nil, &ServiceError{Op: "upload_logo", Err: fmt.Errorf("%w: %w", ErrInvalidLogo, err)}
	}

	profile, err := s.loadOrNew(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "upload_logo", Err: err}
	}

	key := storage.LogoKey(id, s.newID())
	if err := s.logos.Put(ctx, key, resized, "image/png"); err != nil {
		return nil, &ServiceError{Op: "upload_logo", Err: err}
	}

	previous := profile.LogoKey
	profile.LogoKey = key
	if err := s.repository.UpsertProfile(ctx, profile); err != nil {
		s.removeLogo(ctx, id, key)
		return nil, &ServiceError{Op: "upload_logo", Err: err}
	}

	if previous != "" && previous != key {
		s.removeLogo(ctx, id, previous)
	}

	s.logger.Info().
		Str("company_id", id).
		Str("logo_key", key).
		Str("previous_logo_key", previous).
		Int("bytes", len(resized)).
		Msg("company logo stored")

	return profile, nil
}

// removeLogo deletes an object no profile points at any more. Failures
// leave an orphan behind and are only logged.
func (s *CompanyServiceImpl) removeLogo(ctx context.Context, id, key string) {
	if err := s.logos.Delete(ctx, key); err != nil {
		s.logger.Warn().
			Err(err).
			Str("company_id", id).
			Str("logo_key", key).
			Msg("failed to delete unused company logo")
	}
}

func (s *CompanyServiceImpl) loadOrNew(ctx context.Context, id string) (*domain.CompanyProfile, error) {
	profile, err := s.repository.GetProfile(ctx, id)
	if err == nil {
		return profile, nil
	}
	if isNotFound(err) {
		return &domain.CompanyProfile{ID: id}, nil
	}
	return nil, err
}
