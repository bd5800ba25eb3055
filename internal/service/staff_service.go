package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is lowered by tests.
var bcryptCost = 12

const paymentStatusPaid = "Paid"

// StaffService manages employees (who are also login accounts), staff roles
// and monthly payroll.
type StaffService interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor access.Principal, id string) error

	ListRoles(ctx context.Context) ([]model.StaffRole, error)
	CreateRole(ctx context.Context, req dto.StaffRoleRequest) (*model.StaffRole, error)
	UpdateRole(ctx context.Context, id string, req dto.StaffRoleRequest) (*model.StaffRole, error)
	DeleteRole(ctx context.Context, id string) error

	ProcessSalary(ctx context.Context, req dto.ProcessSalaryRequest) (*dto.SalaryPaymentResponse, error)
	ListPayments(ctx context.Context, filter dto.PayrollFilter) ([]dto.SalaryPaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.SalaryPaymentResponse, error)
}

type staffService struct{ ctrl *state.Controller }

func NewStaffService(ctrl *state.Controller) StaffService {
	return &staffService{ctrl: ctrl}
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func usernameTaken(st *state.AppState, username, exceptID string) bool {
	for _, u := range st.Users {
		if u.ID != exceptID && u.Username == username {
			return true
		}
	}
	return false
}

// placeUser applies the role's access level. Admins are never pinned to a
// branch; everybody else gets branchID or, failing that, the first branch.
func placeUser(st *state.AppState, u *model.User, role model.StaffRole, branchID string) error {
	u.RoleID = role.ID
	u.Role = role.AccessLevel
	if role.AccessLevel == model.RoleAdmin {
		u.AssignedBranchID = ""
		return nil
	}
	if branchID == "" {
		branchID = u.AssignedBranchID
	}
	if branchID == "" {
		branchID = st.FirstBranchID()
	}
	if _, ok := st.Branch(branchID); !ok {
		return ErrBranchNotFound
	}
	u.AssignedBranchID = branchID
	return nil
}

// ── Users ────────────────────────────────────────────────────────────────────

func (s *staffService) ListUsers(context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	s.ctrl.View(func(st *state.AppState) {
		out = make([]dto.UserResponse, len(st.Users))
		for i, u := range st.Users {
			out[i] = userToResponse(st, u)
		}
	})
	return out, nil
}

// CreateUser lower-cases the username and, without an explicit password,
// sets the default <username>123.
func (s *staffService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	joining := req.JoiningDate
	if joining == "" {
		joining = now().UTC().Format(time.DateOnly)
	}
	pw := req.Password
	if pw == "" {
		pw = username + "123"
	}
	// Hashed before taking the state lock.
	hash, err := hashPassword(pw)
	if err != nil {
		return nil, err
	}

	var resp dto.UserResponse
	err = s.ctrl.Update(ctx, func(st *state.AppState) error {
		if usernameTaken(st, username, "") {
			return ErrDuplicateUsername
		}
		role, ok := st.StaffRole(req.RoleID)
		if !ok {
			return ErrRoleNotFound
		}
		u := model.User{
			ID:           "u-" + strings.ToLower(newID()),
			Username:     username,
			PasswordHash: hash,
			FullName:     strings.TrimSpace(req.FullName),
			PhoneNumber:  req.PhoneNumber,
			BaseSalary:   req.BaseSalary,
			JoiningDate:  joining,
			Status:       model.UserActive,
		}
		if err := placeUser(st, &u, role, req.AssignedBranchID); err != nil {
			return err
		}
		st.Users = append(st.Users, u)
		resp = userToResponse(st, u)
		return nil
	}, state.EntryUsers)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *staffService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var hash string
	if req.Password != nil && *req.Password != "" {
		h, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var resp dto.UserResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		idx := -1
		for i := range st.Users {
			if st.Users[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrUserNotFound
		}
		// st.Users is only written once every check has passed.
		u := st.Users[idx]

		if req.Username != nil {
			name := strings.ToLower(strings.TrimSpace(*req.Username))
			if name == "" {
				return fmt.Errorf("%w: username is required", ErrInvalidInput)
			}
			if usernameTaken(st, name, id) {
				return ErrDuplicateUsername
			}
			u.Username = name
		}
		if req.FullName != nil {
			u.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.PhoneNumber != nil {
			u.PhoneNumber = *req.PhoneNumber
		}
		if req.BaseSalary != nil {
			u.BaseSalary = *req.BaseSalary
		}
		if req.JoiningDate != nil {
			u.JoiningDate = *req.JoiningDate
		}
		if req.Status != nil {
			u.Status = model.UserStatus(*req.Status)
		}
		if hash != "" {
			u.PasswordHash = hash
		}

		if req.RoleID != nil || req.AssignedBranchID != nil {
			role := model.StaffRole{ID: u.RoleID, AccessLevel: u.Role}
			if req.RoleID != nil {
				r, ok := st.StaffRole(*req.RoleID)
				if !ok {
					return ErrRoleNotFound
				}
				role = r
			}
			branchID := ""
			if req.AssignedBranchID != nil {
				branchID = *req.AssignedBranchID
			}
			if err := placeUser(st, &u, role, branchID); err != nil {
				return err
			}
		}

		st.Users[idx] = u
		resp = userToResponse(st, u)
		return nil
	}, state.EntryUsers)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *staffService) DeleteUser(ctx context.Context, actor access.Principal, id string) error {
	if id == actor.UserID {
		return ErrSelfDelete
	}
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		for i, u := range st.Users {
			if u.ID == id {
				st.Users = append(st.Users[:i:i], st.Users[i+1:]...)
				return nil
			}
		}
		return ErrUserNotFound
	}, state.EntryUsers)
}

// ── Staff roles ──────────────────────────────────────────────────────────────

func (s *staffService) ListRoles(context.Context) ([]model.StaffRole, error) {
	var out []model.StaffRole
	s.ctrl.View(func(st *state.AppState) {
		out = append([]model.StaffRole(nil), st.StaffRoles...)
	})
	return out, nil
}

func (s *staffService) CreateRole(ctx context.Context, req dto.StaffRoleRequest) (*model.StaffRole, error) {
	level := model.Role(req.AccessLevel)
	if !level.Valid() {
		return nil, fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, req.AccessLevel)
	}
	r := model.StaffRole{ID: "role-" + strings.ToLower(newID()), Name: strings.TrimSpace(req.Name), AccessLevel: level}
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		st.StaffRoles = append(st.StaffRoles, r)
		return nil
	}, state.EntryStaffRoles)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRole also moves every employee holding the role to its new access level.
func (s *staffService) UpdateRole(ctx context.Context, id string, req dto.StaffRoleRequest) (*model.StaffRole, error) {
	level := model.Role(req.AccessLevel)
	if !level.Valid() {
		return nil, fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, req.AccessLevel)
	}
	var out model.StaffRole
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		idx := -1
		for i := range st.StaffRoles {
			if st.StaffRoles[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrRoleNotFound
		}
		out = model.StaffRole{ID: id, Name: strings.TrimSpace(req.Name), AccessLevel: level}
		users := append([]model.User(nil), st.Users...)
		for i := range users {
			if users[i].RoleID == id {
				if err := placeUser(st, &users[i], out, ""); err != nil {
					return err
				}
			}
		}
		st.StaffRoles[idx] = out
		st.Users = users
		return nil
	}, state.EntryStaffRoles, state.EntryUsers)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *staffService) DeleteRole(ctx context.Context, id string) error {
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		idx := -1
		for i, r := range st.StaffRoles {
			if r.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrRoleNotFound
		}
		for _, u := range st.Users {
			if u.RoleID == id {
				return ErrRoleInUse
			}
		}
		st.StaffRoles = append(st.StaffRoles[:idx:idx], st.StaffRoles[idx+1:]...)
		return nil
	}, state.EntryStaffRoles)
}

// ── Payroll ──────────────────────────────────────────────────────────────────
//   1. Base salary must be positive
//   2. One payment per employee per month (month names compared loosely)
//   3. Book the Salary expense first, then the payment record

func (s *staffService) ProcessSalary(ctx context.Context, req dto.ProcessSalaryRequest) (*dto.SalaryPaymentResponse, error) {
	month := strings.Join(strings.Fields(req.Month), " ")
	if month == "" {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	if req.Bonus.IsNegative() || req.Deduction.IsNegative() {
		return nil, fmt.Errorf("%w: bonus and deduction cannot be negative", ErrInvalidInput)
	}

	var resp dto.SalaryPaymentResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		u, ok := st.User(req.UserID)
		if !ok {
			return ErrUserNotFound
		}
		if !u.BaseSalary.IsPositive() {
			return ErrNoBaseSalary
		}
		target := normalizeMonth(month)
		for _, p := range st.Salaries {
			if p.UserID == u.ID && normalizeMonth(p.Month) == target {
				return ErrAlreadyPaid
			}
		}
		net := u.BaseSalary.Add(req.Bonus).Sub(req.Deduction)
		if net.IsNegative() {
			return ErrNegativeNetPay
		}

		branchID := u.AssignedBranchID
		if branchID == "" {
			branchID = st.FirstBranchID()
		}
		if branchID == "" {
			branchID = model.WarehouseID
		}
		paidAt := now().UTC()

		exp := model.Expense{
			ID:          "exp-" + strings.ToLower(newID()),
			BranchID:    branchID,
			Category:    model.ExpenseSalary,
			Description: fmt.Sprintf("Payroll Disbursed: %s for %s", u.FullName, month),
			Amount:      net,
			Date:        paidAt,
		}
		addExpense(st, exp)

		p := model.SalaryPayment{
			ID:          "SAL-" + newID(),
			UserID:      u.ID,
			BranchID:    branchID,
			BasicSalary: u.BaseSalary,
			Bonus:       req.Bonus,
			Deduction:   req.Deduction,
			Amount:      net,
			Month:       month,
			DatePaid:    paidAt,
			Note:        strings.TrimSpace(req.Note),
			Status:      paymentStatusPaid,
		}
		st.Salaries = append(st.Salaries, p)

		resp = paymentToResponse(st, p)
		resp.ExpenseID = exp.ID
		return nil
	}, state.EntryExpenses, state.EntrySalaries)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", req.UserID).Str("month", month).Str("amount", resp.Amount.String()).Msg("salary processed")
	return &resp, nil
}

func (s *staffService) ListPayments(_ context.Context, filter dto.PayrollFilter) ([]dto.SalaryPaymentResponse, error) {
	month := normalizeMonth(filter.Month)
	var out []dto.SalaryPaymentResponse
	s.ctrl.View(func(st *state.AppState) {
		out = make([]dto.SalaryPaymentResponse, 0, len(st.Salaries))
		for _, p := range st.Salaries {
			if month != "" && normalizeMonth(p.Month) != month {
				continue
			}
			if filter.UserID != "" && p.UserID != filter.UserID {
				continue
			}
			out = append(out, paymentToResponse(st, p))
		}
	})
	return out, nil
}

func (s *staffService) GetPayment(_ context.Context, id string) (*dto.SalaryPaymentResponse, error) {
	var (
		resp dto.SalaryPaymentResponse
		err  = ErrPaymentNotFound
	)
	s.ctrl.View(func(st *state.AppState) {
		for _, p := range st.Salaries {
			if p.ID == id {
				resp = paymentToResponse(st, p)
				err = nil
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
