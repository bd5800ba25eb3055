package model

import "github.com/shopspring/decimal"

// Settings are the shop-wide scalars kept next to the collections.
type Settings struct {
	VATRate          decimal.Decimal `json:"vatRate"          yaml:"vatRate"` // percent
	AppName          string          `json:"appName"          yaml:"appName"`
	LogoURL          string          `json:"logoUrl"          yaml:"logoUrl"`
	SelectedBranchID string          `json:"selectedBranchId" yaml:"selectedBranchId"`
}
