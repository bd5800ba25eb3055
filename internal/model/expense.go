package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseConveyance    ExpenseCategory = "Conveyance"
	ExpenseRent          ExpenseCategory = "Rent"
	ExpenseElectricity   ExpenseCategory = "Electricity"
	ExpenseSnacks        ExpenseCategory = "Snacks"
	ExpenseUtility       ExpenseCategory = "Utility"
	ExpenseSalary        ExpenseCategory = "Salary"
	ExpenseMiscellaneous ExpenseCategory = "Miscellaneous"
)

// ExpenseCategories lists the accepted categories in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseConveyance, ExpenseRent, ExpenseElectricity, ExpenseSnacks,
	ExpenseUtility, ExpenseSalary, ExpenseMiscellaneous,
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a branch cost. It never touches the stock ledger.
type Expense struct {
	ID          string          `json:"id"          yaml:"id"`
	BranchID    string          `json:"branchId"    yaml:"branchId"`
	Category    ExpenseCategory `json:"category"    yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount"      yaml:"amount"`
	Date        time.Time       `json:"date"        yaml:"date"`
}
