package model

// StockItem is one cell of the stock ledger. The (ProductID, BranchID) pair is
// the real key; ID is only kept for display and persistence.
//
// Quantity may be negative: checkout never blocks overselling.
type StockItem struct {
	ID        string `json:"id"        yaml:"id"`
	ProductID string `json:"productId" yaml:"productId"`
	BranchID  string `json:"branchId"  yaml:"branchId"`
	Quantity  int    `json:"quantity"  yaml:"quantity"`
}
