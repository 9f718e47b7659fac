package model

import (
	"time"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

// ToDomain converts the DTO into header fields
func (c CompanyDTO) ToDomain() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

// CompanyProfileRequest replaces the header defaults of a company
type CompanyProfileRequest struct {
	Name    string `json:"name" binding:"required,max=200" example:"Fablaundry"`
	Email   string `json:"email" binding:"omitempty,email,max=200" example:"info@fablaundry.in"`
	Phone   string `json:"phone" binding:"max=50" example:"+91 80 1234 5678"`
	Address string `json:"address" binding:"max=1000" example:"12 MG Road\nBengaluru 560001"`
}

// ToDomain converts the request into header fields
func (r CompanyProfileRequest) ToDomain() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

// CompanyProfileResponse is a stored company profile
type CompanyProfileResponse struct {
	ID        string     `json:"id" example:"acme"`
	Company   CompanyDTO `json:"company"`
	HasLogo   bool       `json:"has_logo"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCompanyProfileResponse formats a profile for the API
func NewCompanyProfileResponse(p *domain.CompanyProfile) *CompanyProfileResponse {
	return &CompanyProfileResponse{
		ID: p.ID,
		Company: CompanyDTO{
			Name:    p.Company.Name,
			Email:   p.Company.Email,
			Phone:   p.Company.Phone,
			Address: p.Company.Address,
		},
		HasLogo:   p.LogoKey != "",
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
