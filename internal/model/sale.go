package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType distinguishes checkout records from return records.
type SaleType string

const (
	SaleTypeSale   SaleType = "SALE"
	SaleTypeReturn SaleType = "RETURN"
)

// SaleItem is a line of a transaction. Prices are snapshots taken at checkout.
type SaleItem struct {
	ProductID string          `json:"productId" yaml:"productId"`
	Quantity  int             `json:"quantity"  yaml:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`
	CostPrice decimal.Decimal `json:"costPrice" yaml:"costPrice"`
}

// Sale is an entry of the transaction log. A return is a separate RETURN
// record pointing at the original through OriginalSaleID; the original only
// gets IsReturned set.
type Sale struct {
	ID          string          `json:"id"          yaml:"id"`
	BranchID    string          `json:"branchId"    yaml:"branchId"`
	Date        time.Time       `json:"date"        yaml:"date"`
	Items       []SaleItem      `json:"items"       yaml:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount" yaml:"totalAmount"`
	VAT         decimal.Decimal `json:"vat"         yaml:"vat"`
	Discount    decimal.Decimal `json:"discount"    yaml:"discount"`
	FinalAmount decimal.Decimal `json:"finalAmount" yaml:"finalAmount"`
	Type        SaleType        `json:"type"        yaml:"type"`
	IsReturned  bool            `json:"isReturned,omitempty" yaml:"isReturned,omitempty"`

	// OriginalSaleID links a RETURN record to the SALE it reverses.
	OriginalSaleID string `json:"originalSaleId,omitempty" yaml:"originalSaleId,omitempty"`
	// StockConflict is set when checkout drove at least one stock cell below zero.
	StockConflict bool `json:"stockConflict,omitempty" yaml:"stockConflict,omitempty"`

	CustomerName    string `json:"customerName,omitempty"    yaml:"customerName,omitempty"`
	CustomerPhone   string `json:"customerPhone,omitempty"   yaml:"customerPhone,omitempty"`
	CustomerAddress string `json:"customerAddress,omitempty" yaml:"customerAddress,omitempty"`
}

// Clone returns a copy that shares no line slice with s.
func (s Sale) Clone() Sale {
	c := s
	c.Items = append([]SaleItem(nil), s.Items...)
	return c
}

// Cost is the snapshot cost of goods of the record (always positive).
func (s Sale) Cost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.CostPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Units is the number of pairs moved by the record.
func (s Sale) Units() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
