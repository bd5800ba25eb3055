package model

import "github.com/shopspring/decimal"

// UnknownProductName is shown for sale lines whose product has been deleted.
const UnknownProductName = "Unknown"

// Product is a catalogue entry. Sale lines snapshot its prices at checkout,
// so editing or deleting a product never rewrites transaction history.
type Product struct {
	ID           string          `json:"id"           yaml:"id"`
	Name         string          `json:"name"         yaml:"name"`
	Brand        string          `json:"brand"        yaml:"brand"`
	Category     string          `json:"category"     yaml:"category"`
	Size         string          `json:"size"         yaml:"size"`
	Color        string          `json:"color"        yaml:"color"`
	CostPrice    decimal.Decimal `json:"costPrice"    yaml:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice" yaml:"sellingPrice"`
	ImageURL     string          `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Category is a free-form product classification. Products reference it by name.
type Category struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
