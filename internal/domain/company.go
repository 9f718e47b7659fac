package domain

import "time"

// CompanyProfile stores the header defaults for an issuing company.
// It is not an invoice record; generated documents are never stored.
type CompanyProfile struct {
	ID        string      `json:"id"`
	Company   CompanyInfo `json:"company"`
	LogoKey   string      `json:"logo_key,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ApplyTo fills empty fields of info with the profile's values
func (p *CompanyProfile) ApplyTo(info CompanyInfo) CompanyInfo {
	if p == nil {
		return info
	}
	if info.Name == "" {
		info.Name = p.Company.Name
	}
	if info.Email == "" {
		info.Email = p.Company.Email
	}
	if info.Phone == "" {
		info.Phone = p.Company.Phone
	}
	if info.Address == "" {
		info.Address = p.Company.Address
	}
	return info
}
