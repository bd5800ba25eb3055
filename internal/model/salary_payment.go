package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPayment records one monthly payroll disbursement. Every payment is
// mirrored by an Expense of category Salary.
type SalaryPayment struct {
	ID          string          `json:"id"          yaml:"id"`
	UserID      string          `json:"userId"      yaml:"userId"`
	BranchID    string          `json:"branchId"    yaml:"branchId"`
	BasicSalary decimal.Decimal `json:"basicSalary" yaml:"basicSalary"`
	Bonus       decimal.Decimal `json:"bonus"       yaml:"bonus"`
	Deduction   decimal.Decimal `json:"deduction"   yaml:"deduction"`
	Amount      decimal.Decimal `json:"amount"      yaml:"amount"` // net paid
	Month       string          `json:"month"       yaml:"month"`  // e.g. "October 2023"
	DatePaid    time.Time       `json:"datePaid"    yaml:"datePaid"`
	Note        string          `json:"note,omitempty" yaml:"note,omitempty"`
	Status      string          `json:"status"      yaml:"status"` // "Paid"
}
