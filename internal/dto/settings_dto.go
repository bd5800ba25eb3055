package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest: nil fields are left unchanged.
type UpdateSettingsRequest struct {
	VATRate          *decimal.Decimal `json:"vatRate"          validate:"omitempty,min=0,max=100"`
	AppName          *string          `json:"appName"          validate:"omitempty,min=1,max=60"`
	LogoURL          *string          `json:"logoUrl"          validate:"omitempty,url"`
	SelectedBranchID *string          `json:"selectedBranchId"`
}

type SettingsResponse struct {
	VATRate          decimal.Decimal `json:"vatRate"`
	AppName          string          `json:"appName"`
	LogoURL          string          `json:"logoUrl"`
	SelectedBranchID string          `json:"selectedBranchId"`
}
