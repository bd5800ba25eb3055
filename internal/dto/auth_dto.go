package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserResponse never carries the password hash.
type UserResponse struct {
	ID               string          `json:"id"`
	Username         string          `json:"username"`
	Role             string          `json:"role"`
	RoleID           string          `json:"roleId,omitempty"`
	RoleName         string          `json:"roleName,omitempty"`
	AssignedBranchID string          `json:"assignedBranchId,omitempty"`
	FullName         string          `json:"fullName"`
	PhoneNumber      string          `json:"phoneNumber,omitempty"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	JoiningDate      string          `json:"joiningDate"`
	Status           string          `json:"status"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int          `json:"expiresIn"` // seconds
	User         UserResponse `json:"user"`
	Capabilities []string     `json:"capabilities"`
}
