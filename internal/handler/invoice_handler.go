package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/model"
	"github.com/ridwanfathin/gst-invoice-service/internal/money"
	"github.com/ridwanfathin/gst-invoice-service/internal/service"
)

// InvoiceHandler serves totals previews and PDF generation
type InvoiceHandler struct {
	service      service.InvoiceService
	maxLogoBytes int64
	now          func() time.Time
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(svc service.InvoiceService, maxLogoBytes int64) *InvoiceHandler {
	if maxLogoBytes <= 0 {
		maxLogoBytes = 5 * 1024 * 1024 // 5MB default
	}
	return &InvoiceHandler{
		service:      svc,
		maxLogoBytes: maxLogoBytes,
		now:          time.Now,
	}
}

// RegisterRoutes registers the handler's routes with the given router group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices/number", h.NewInvoiceNumber)
	rg.GET("/gst-rates", h.ListGSTRates)
	rg.POST("/invoices/totals", h.PreviewTotals)
	rg.POST("/invoices/pdf", h.GeneratePDF)
}

// NewInvoiceNumber handles GET /v1/invoices/number
// @Summary Generate an invoice number
// @Description Returns a timestamp derived default invoice number (INV-YYYYMMDDHHMMSS)
// @Tags invoices
// @Produce json
// @Success 200 {object} model.InvoiceNumberResponse
// @Router /v1/invoices/number [get]
func (h *InvoiceHandler) NewInvoiceNumber(c *gin.Context) {
	respondOK(c, model.InvoiceNumberResponse{InvoiceNumber: h.service.NewInvoiceNumber()})
}

// ListGSTRates handles GET /v1/gst-rates
// @Summary List GST rates
// @Tags invoices
// @Produce json
// @Success 200 {object} model.GSTRatesResponse
// @Router /v1/gst-rates [get]
func (h *InvoiceHandler) ListGSTRates(c *gin.Context) {
	rates := domain.GSTRates()
	resp := model.GSTRatesResponse{Rates: make([]int, len(rates)), Default: int(domain.DefaultGSTRate)}
	for i, r := range rates {
		resp.Rates[i] = int(r)
	}
	respondOK(c, resp)
}

// PreviewTotals handles POST /v1/invoices/totals
// @Summary Preview invoice totals
// @Description Computes subtotal, discount, taxable value, GST (or CGST/SGST) and grand total
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.InvoiceRequest true "Invoice form"
// @Success 200 {object} model.TotalsResponse
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Router /v1/invoices/totals [post]
func (h *InvoiceHandler) PreviewTotals(c *gin.Context) {
	var req model.InvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput, buildValidationErrors(err)...)
		return
	}

	draft, err := req.ToDomain(h.now())
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	respondOK(c, model.NewTotalsResponse(h.service.Totals(draft), draft.Tax))
}

// GeneratePDF handles POST /v1/invoices/pdf
// @Summary Generate an invoice PDF
// @Description Accepts the invoice form as JSON, or as multipart with an "invoice" JSON field and an optional "logo" image
// @Tags invoices
// @Accept json
// @Accept multipart/form-data
// @Produce application/pdf
// @Param invoice body model.InvoiceRequest false "Invoice form (JSON requests)"
// @Param logo formData file false "Company logo (multipart requests)"
// @Success 200 {file} file "Invoice PDF"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Company profile not found"
// @Failure 413 {object} model.ErrorResponse "Logo too large"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/pdf [post]
func (h *InvoiceHandler) GeneratePDF(c *gin.Context) {
	var (
		req  model.InvoiceRequest
		logo []byte
	)

	if isMultipart(c) {
		raw := c.PostForm("invoice")
		if raw == "" {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail("invoice", "is required"))
			return
		}
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail("invoice", err.Error()))
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			respondBadRequest(c, ErrInvalidInput, buildValidationErrors(err)...)
			return
		}

		data, err := readFormFile(c, "logo", h.maxLogoBytes)
		if err != nil {
			if errors.Is(err, errFileTooLarge) {
				respondTooLarge(c, ErrFileTooLarge)
				return
			}
			logError(c, "failed_to_read_logo", err, map[string]interface{}{"error_type": "file_read_error"})
			respondBadRequest(c, ErrFileProcessing)
			return
		}
		logo = data
	} else if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput, buildValidationErrors(err)...)
		return
	}

	draft, err := req.ToDomain(h.now())
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	out, err := h.service.Generate(c.Request.Context(), draft, logo)
	if err != nil {
		respondServiceError(c, "failed_to_generate_invoice", err, ErrRenderFailed)
		return
	}

	setAttachment(c, out.Meta.Number+".pdf")
	c.Header("X-Invoice-Number", out.Meta.Number)
	c.Header("X-Invoice-Pages", strconv.Itoa(out.Document.Pages))
	c.Header("X-Invoice-Grand-Total", money.FormatAmount(out.Breakdown.GrandTotal))
	c.Header("X-Invoice-Logo-Embedded", strconv.FormatBool(out.Document.LogoEmbedded))
	c.Data(StatusOK, "application/pdf", out.Document.Content)
}
