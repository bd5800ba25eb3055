package dto

import (
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	BranchID string `form:"branchId"`
	Type     string `form:"type" validate:"omitempty,oneof=SALE RETURN"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CartLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

// CheckoutRequest prices are taken from the catalogue, never from the client.
type CheckoutRequest struct {
	BranchID        string          `json:"branchId"`
	Items           []CartLine      `json:"items"           validate:"required,min=1,dive"`
	DiscountPercent decimal.Decimal `json:"discountPercent" validate:"min=0,max=100"`
	CustomerName    string          `json:"customerName"    validate:"max=120"`
	CustomerPhone   string          `json:"customerPhone"   validate:"max=40"`
	CustomerAddress string          `json:"customerAddress" validate:"max=240"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleLineResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type SaleResponse struct {
	ID              string             `json:"id"`
	BranchID        string             `json:"branchId"`
	BranchName      string             `json:"branchName"`
	Date            string             `json:"date"`
	Type            model.SaleType     `json:"type"`
	Items           []SaleLineResponse `json:"items"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	VAT             decimal.Decimal    `json:"vat"`
	Discount        decimal.Decimal    `json:"discount"`
	FinalAmount     decimal.Decimal    `json:"finalAmount"`
	IsReturned      bool               `json:"isReturned"`
	OriginalSaleID  string             `json:"originalSaleId,omitempty"`
	StockConflict   bool               `json:"stockConflict"`
	CustomerName    string             `json:"customerName,omitempty"`
	CustomerPhone   string             `json:"customerPhone,omitempty"`
	CustomerAddress string             `json:"customerAddress,omitempty"`
}
