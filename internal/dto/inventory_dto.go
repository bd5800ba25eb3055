package dto

type StockFilter struct {
	BranchID string `form:"branchId"`
}

type PurchaseEntryRequest struct {
	ProductID string `json:"productId" validate:"required"`
	BranchID  string `json:"branchId"  validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type TransferRequest struct {
	ProductID    string `json:"productId"    validate:"required"`
	FromBranchID string `json:"fromBranchId" validate:"required"`
	ToBranchID   string `json:"toBranchId"   validate:"required,nefield=FromBranchID"`
	Quantity     int    `json:"quantity"     validate:"required,min=1"`
}

// StockRowResponse is one cell of the stock table with display names resolved.
type StockRowResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	BranchID    string `json:"branchId"`
	BranchName  string `json:"branchName"`
	Quantity    int    `json:"quantity"`
}
