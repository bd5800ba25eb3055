package dto

import "github.com/shopspring/decimal"

// ─── Staff ───────────────────────────────────────────────────────────────────

// CreateUserRequest: an empty password leaves the account on the default
// password (<username>123).
type CreateUserRequest struct {
	Username         string          `json:"username"         validate:"required,min=1,max=60"`
	Password         string          `json:"password"         validate:"omitempty,min=4"`
	FullName         string          `json:"fullName"         validate:"required,min=1,max=120"`
	RoleID           string          `json:"roleId"           validate:"required"`
	AssignedBranchID string          `json:"assignedBranchId"`
	PhoneNumber      string          `json:"phoneNumber"      validate:"max=40"`
	BaseSalary       decimal.Decimal `json:"baseSalary"       validate:"min=0"`
	JoiningDate      string          `json:"joiningDate"      validate:"omitempty,datetime=2006-01-02"`
}

// UpdateUserRequest: nil fields are left unchanged.
type UpdateUserRequest struct {
	Username         *string          `json:"username"         validate:"omitempty,min=1,max=60"`
	Password         *string          `json:"password"         validate:"omitempty,min=4"`
	FullName         *string          `json:"fullName"         validate:"omitempty,min=1,max=120"`
	RoleID           *string          `json:"roleId"`
	AssignedBranchID *string          `json:"assignedBranchId"`
	PhoneNumber      *string          `json:"phoneNumber"      validate:"omitempty,max=40"`
	BaseSalary       *decimal.Decimal `json:"baseSalary"       validate:"omitempty,min=0"`
	JoiningDate      *string          `json:"joiningDate"      validate:"omitempty,datetime=2006-01-02"`
	Status           *string          `json:"status"           validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type StaffRoleRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=60"`
	AccessLevel string `json:"accessLevel" validate:"required,oneof=ADMIN MANAGER SELLER"`
}

// ─── Payroll ─────────────────────────────────────────────────────────────────

type PayrollFilter struct {
	Month  string `form:"month"`
	UserID string `form:"userId"`
}

type ProcessSalaryRequest struct {
	UserID    string          `json:"userId"    validate:"required"`
	Month     string          `json:"month"     validate:"required,max=40"` // e.g. "October 2023"
	Bonus     decimal.Decimal `json:"bonus"     validate:"min=0"`
	Deduction decimal.Decimal `json:"deduction" validate:"min=0"`
	Note      string          `json:"note"      validate:"max=240"`
}

type SalaryPaymentResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	FullName    string          `json:"fullName"`
	BranchID    string          `json:"branchId"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deduction   decimal.Decimal `json:"deduction"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month"`
	DatePaid    string          `json:"datePaid"`
	Note        string          `json:"note,omitempty"`
	Status      string          `json:"status"`
	ExpenseID   string          `json:"expenseId,omitempty"`
}
