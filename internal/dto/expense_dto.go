package dto

import "github.com/shopspring/decimal"

type ExpenseFilter struct {
	BranchID string `form:"branchId"`
	Category string `form:"category"`
}

type ExpenseRequest struct {
	BranchID    string          `json:"branchId"`
	Category    string          `json:"category"    validate:"required,oneof=Conveyance Rent Electricity Snacks Utility Salary Miscellaneous"`
	Description string          `json:"description" validate:"required,max=240"`
	Amount      decimal.Decimal `json:"amount"      validate:"gt=0"`
	Date        string          `json:"date"        validate:"omitempty,datetime=2006-01-02"` // empty = today
}
