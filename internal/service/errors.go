package service

import "errors"

// Rejections returned by the services. Ledger rejections (ledger.Err*) are
// passed through unchanged.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBranchNotFound    = errors.New("branch not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("staff role not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrPaymentNotFound   = errors.New("salary payment not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrRoleInUse         = errors.New("staff role is assigned to employees")
	ErrBranchInUse       = errors.New("branch still holds stock")
	ErrWarehouseLocked   = errors.New("the warehouse branch cannot be deleted")
	ErrSelfDelete        = errors.New("you cannot delete your own account")
	ErrNoBaseSalary      = errors.New("employee has no base salary")
	ErrAlreadyPaid       = errors.New("salary already paid for this month")
	ErrNegativeNetPay    = errors.New("deduction exceeds salary and bonus")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrInactiveUser      = errors.New("account is inactive")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrInvalidInput      = errors.New("invalid input")
)
