package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/gst-invoice-service/internal/model"
	"github.com/ridwanfathin/gst-invoice-service/internal/service"
)

// CompanyHandler manages company header defaults
type CompanyHandler struct {
	service      service.CompanyService
	maxLogoBytes int64
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(svc service.CompanyService, maxLogoBytes int64) *CompanyHandler {
	if maxLogoBytes <= 0 {
		maxLogoBytes = 5 * 1024 * 1024
	}
	return &CompanyHandler{service: svc, maxLogoBytes: maxLogoBytes}
}

// RegisterRoutes registers the handler's routes with the given router group
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:id", h.GetProfile)
	rg.PUT("/companies/:id", h.SaveProfile)
	rg.PUT("/companies/:id/logo", h.UploadLogo)
}

// GetProfile handles GET /v1/companies/:id
// @Summary Get a company profile
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} model.CompanyProfileResponse
// @Failure 404 {object} model.ErrorResponse "Company profile not found"
// @Router /v1/companies/{id} [get]
func (h *CompanyHandler) GetProfile(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "failed_to_get_profile", err, ErrInternalServer)
		return
	}

	respondOK(c, model.NewCompanyProfileResponse(profile))
}

// SaveProfile handles PUT /v1/companies/:id
// @Summary Create or replace a company profile
// @Description Stores header defaults used when an invoice request references company_id
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param company body model.CompanyProfileRequest true "Company header"
// @Success 200 {object} model.CompanyProfileResponse
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Router /v1/companies/{id} [put]
func (h *CompanyHandler) SaveProfile(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	var req model.CompanyProfileRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrValidationFailure, buildValidationErrors(err)...)
		return
	}

	profile, err := h.service.SaveProfile(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		respondServiceError(c, "failed_to_save_profile", err, ErrInternalServer)
		return
	}

	respondOK(c, model.NewCompanyProfileResponse(profile))
}

// UploadLogo handles PUT /v1/companies/:id/logo
// @Summary Upload a company logo
// @Description Stores the logo used when an invoice request references company_id and supplies no logo
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Company ID"
// @Param logo formData file true "Logo image (PNG, JPEG, GIF or WebP)"
// @Success 200 {object} model.CompanyProfileResponse
// @Failure 400 {object} model.ErrorResponse "Missing file"
// @Failure 413 {object} model.ErrorResponse "Logo too large"
// @Failure 422 {object} model.ErrorResponse "Unsupported image"
// @Router /v1/companies/{id}/logo [put]
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID)
		return
	}

	data, err := readFormFile(c, "logo", h.maxLogoBytes)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			respondTooLarge(c, ErrFileTooLarge)
			return
		}
		respondBadRequest(c, ErrFileProcessing)
		return
	}
	if len(data) == 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("logo", "Logo image is required"))
		return
	}

	profile, err := h.service.UploadLogo(c.Request.Context(), id, data)
	if err != nil {
		respondServiceError(c, "failed_to_upload_logo", err, ErrInternalServer)
		return
	}

	respondOK(c, model.NewCompanyProfileResponse(profile))
}
