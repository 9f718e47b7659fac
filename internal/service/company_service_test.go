package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/imageutil"
	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
)

func jpegLogo(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newCompanyService(companies *memoryCompanies, logos *memoryLogos) *CompanyServiceImpl {
	svc := NewCompanyService(companies, logos, 1<<20, zerolog.Nop())
	svc.newID = func() string { return "fixed" }
	return svc
}

func TestCompanyService_SaveProfileKeepsLogo(t *testing.T) {
	companies := newMemoryCompanies(domain.CompanyProfile{ID: "acme", LogoKey: "logos/acme/old.png"})
	svc := newCompanyService(companies, newMemoryLogos())

	profile, err := svc.SaveProfile(context.Background(), "acme", domain.CompanyInfo{Name: "  Acme  ", Address: "Pune\n"})
	require.NoError(t, err)

	assert.Equal(t, "Acme", profile.Company.Name)
	assert.Equal(t, "Pune", profile.Company.Address)
	assert.Equal(t, "logos/acme/old.png", profile.LogoKey)
}

func TestCompanyService_GetProfileNotFound(t *testing.T) {
	svc := newCompanyService(newMemoryCompanies(), newMemoryLogos())

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestCompanyService_UploadLogo(t *testing.T) {
	companies := newMemoryCompanies()
	logos := newMemoryLogos()
	svc := newCompanyService(companies, logos)

	profile, err := svc.UploadLogo(context.Background(), "acme", jpegLogo(t, 2048, 512))
	require.NoError(t, err)

	assert.Equal(t, "logos/acme/fixed.png", profile.LogoKey)
	stored := logos.objects[profile.LogoKey]
	require.NotEmpty(t, stored)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 256, cfg.Height)

	saved, err := companies.GetProfile(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, profile.LogoKey, saved.LogoKey)
}

func TestCompanyService_UploadLogoReplacesPreviousObject(t *testing.T) {
	companies := newMemoryCompanies()
	logos := newMemoryLogos()
	svc := newCompanyService(companies, logos)
	ctx := context.Background()

	ids := []string{"first", "second"}
	svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	_, err := svc.UploadLogo(ctx, "acme", jpegLogo(t, 8, 8))
	require.NoError(t, err)
	profile, err := svc.UploadLogo(ctx, "acme", jpegLogo(t, 16, 16))
	require.NoError(t, err)

	assert.Equal(t, "logos/acme/second.png", profile.LogoKey)
	assert.Equal(t, []string{"logos/acme/second.png"}, logos.keys())
}

func TestCompanyService_UploadLogoDeleteFailureIsNotFatal(t *testing.T) {
	companies := newMemoryCompanies(domain.CompanyProfile{ID: "acme", LogoKey: "logos/acme/old.png"})
	logos := newMemoryLogos()
	logos.objects["logos/acme/old.png"] = []byte("old")
	logos.deleteErr = errBoom
	svc := newCompanyService(companies, logos)

	profile, err := svc.UploadLogo(context.Background(), "acme", jpegLogo(t, 8, 8))
	require.NoError(t, err)
	assert.Equal(t, "logos/acme/fixed.png", profile.LogoKey)
}

func TestCompanyService_UploadLogoCleansUpWhenUpsertFails(t *testing.T) {
	companies := newMemoryCompanies()
	companies.upsertErr = errBoom
	logos := newMemoryLogos()
	svc := newCompanyService(companies, logos)

	_, err := svc.UploadLogo(context.Background(), "acme", jpegLogo(t, 8, 8))
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, logos.keys())
}

func TestCompanyService_UploadLogoRejectsBadInput(t *testing.T) {
	svc := newCompanyService(newMemoryCompanies(), newMemoryLogos())
	ctx := context.Background()

	_, err := svc.UploadLogo(ctx, "acme", nil)
	assert.ErrorIs(t, err, ErrInvalidLogo)

	_, err = svc.UploadLogo(ctx, "acme", []byte("plain text"))
	assert.ErrorIs(t, err, ErrInvalidLogo)

	_, err = svc.UploadLogo(ctx, "acme", make([]byte, 2<<20))
	assert.ErrorIs(t, err, ErrLogoTooLarge)

	_, err = svc.UploadLogo(ctx, "../acme", jpegLogo(t, 4, 4))
	assert.ErrorIs(t, err, repository.ErrInvalidProfileID)

	var huge bytes.Buffer
	require.NoError(t, png.Encode(&huge, image.NewGray(image.Rect(0, 0, 6000, 5000))))
	_, err = svc.UploadLogo(ctx, "acme", huge.Bytes())
	assert.ErrorIs(t, err, ErrInvalidLogo)
	assert.ErrorIs(t, err, imageutil.ErrImageTooLarge)
}

func TestCompanyService_RepositoryFailure(t *testing.T) {
	companies := newMemoryCompanies()
	companies.err = errBoom
	svc := newCompanyService(companies, newMemoryLogos())

	_, err := svc.SaveProfile(context.Background(), "acme", domain.CompanyInfo{Name: "A"})
	assert.ErrorIs(t, err, errBoom)
}
