package model

import "github.com/shopspring/decimal"

// Role is the system access level of a user: "ADMIN" | "MANAGER" | "SELLER".
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleSeller  Role = "SELLER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleSeller
}

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// StaffRole is a job title mapped onto an access level.
type StaffRole struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	AccessLevel Role   `json:"accessLevel" yaml:"accessLevel"`
}

// User is both a login account and a payroll record.
// An empty PasswordHash means the account still uses the default password.
type User struct {
	ID               string          `json:"id"                         yaml:"id"`
	Username         string          `json:"username"                   yaml:"username"`
	PasswordHash     string          `json:"passwordHash,omitempty"     yaml:"passwordHash,omitempty"`
	Role             Role            `json:"role"                       yaml:"role"`
	RoleID           string          `json:"roleId,omitempty"           yaml:"roleId,omitempty"`
	AssignedBranchID string          `json:"assignedBranchId,omitempty" yaml:"assignedBranchId,omitempty"`
	FullName         string          `json:"fullName"                   yaml:"fullName"`
	PhoneNumber      string          `json:"phoneNumber,omitempty"      yaml:"phoneNumber,omitempty"`
	BaseSalary       decimal.Decimal `json:"baseSalary"                 yaml:"baseSalary"`
	JoiningDate      string          `json:"joiningDate"                yaml:"joiningDate"` // YYYY-MM-DD
	Status           UserStatus      `json:"status"                     yaml:"status"`
}
