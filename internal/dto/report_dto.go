package dto

import "github.com/shopspring/decimal"

type ReportFilter struct {
	BranchID string `form:"branchId"`
}

// SummaryResponse is the dashboard's financial overview. Returns count as
// negative revenue and negative cost of goods.
type SummaryResponse struct {
	BranchID     string          `json:"branchId,omitempty"`
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	StockValue   decimal.Decimal `json:"stockValue"`
	StockUnits   int             `json:"stockUnits"`
	SalesCount   int             `json:"salesCount"`
	ReturnsCount int             `json:"returnsCount"`
}

type LowStockItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Brand       string `json:"brand"`
	BranchID    string `json:"branchId"`
	BranchName  string `json:"branchName"`
	Quantity    int    `json:"quantity"`
}

type CategorySalesItem struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Units    int             `json:"units"`
}

type DailySalesItem struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Amount decimal.Decimal `json:"amount"`
}

type ProductTotalItem struct {
	ProductID string         `json:"productId"`
	Name      string         `json:"name"`
	Brand     string         `json:"brand"`
	Total     int            `json:"total"`
	ByBranch  map[string]int `json:"byBranch"`
}
