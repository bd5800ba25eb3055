package dto

import "github.com/shopspring/decimal"

// ProductRequest is used for both create and update. The initial stock
// fields only apply on create.
type ProductRequest struct {
	Name            string          `json:"name"            validate:"required,min=1,max=120"`
	Brand           string          `json:"brand"           validate:"required,max=80"`
	Category        string          `json:"category"        validate:"required"`
	Size            string          `json:"size"            validate:"required,max=20"`
	Color           string          `json:"color"           validate:"max=60"`
	CostPrice       decimal.Decimal `json:"costPrice"       validate:"min=0"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"    validate:"min=0"`
	ImageURL        string          `json:"imageUrl"        validate:"omitempty,url"`
	InitialBranchID string          `json:"initialBranchId" validate:"required_with=InitialQuantity"`
	InitialQuantity int             `json:"initialQuantity" validate:"min=0"`
}

type ProductFilter struct {
	Search   string `form:"q"`
	Category string `form:"category"`
}

// ProductResponse carries the global stock next to the catalogue fields.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	TotalStock   int             `json:"totalStock"`
	BranchStock  *int            `json:"branchStock,omitempty"`
}

type BranchRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=80"`
	Location string `json:"location" validate:"max=120"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
}
