package service

import (
	"context"
	"testing"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/config"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// ── Users ─────────────────────────────────────────────────────────────────────

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:   "  Karim ",
		FullName:   "Karim Uddin",
		RoleID:     "r2",
		BaseSalary: dec("18000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "u-t0001", u.ID)
	assert.Equal(t, "karim", u.Username)
	assert.Equal(t, "SELLER", u.Role)
	assert.Equal(t, "Sales Executive", u.RoleName)
	assert.Equal(t, "wh", u.AssignedBranchID, "falls back to the first branch")
	assert.Equal(t, "2024-03-01", u.JoiningDate)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Username: "KARIM", FullName: "x", RoleID: "r2"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Username: "nobody", FullName: "x", RoleID: "r9"})
	assert.ErrorIs(t, err, ErrRoleNotFound)

	saved := f.persisted(t)
	require.Len(t, saved.Users, 4)
	assert.NotEmpty(t, saved.Users[3].PasswordHash)
}

func TestUpdateUser_PromotionClearsBranch(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)

	u, err := svc.UpdateUser(context.Background(), "u3", dto.UpdateUserRequest{RoleID: strPtr("r3")})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", u.Role)
	assert.Empty(t, u.AssignedBranchID)

	u, err = svc.UpdateUser(context.Background(), "u3", dto.UpdateUserRequest{RoleID: strPtr("r2"), AssignedBranchID: strPtr("ban-1")})
	require.NoError(t, err)
	assert.Equal(t, "SELLER", u.Role)
	assert.Equal(t, "ban-1", u.AssignedBranchID)
}

func TestUpdateUser_RejectsLeaveUserUntouched(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	_, err := svc.UpdateUser(ctx, "u3", dto.UpdateUserRequest{
		FullName:         strPtr("Renamed"),
		AssignedBranchID: strPtr("nowhere"),
	})
	assert.ErrorIs(t, err, ErrBranchNotFound)

	_, err = svc.UpdateUser(ctx, "u3", dto.UpdateUserRequest{Username: strPtr("Manager")})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = svc.UpdateUser(ctx, "u404", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Senior Seller (Uttara)", users[2].FullName)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, "u1"), ErrSelfDelete)
	require.NoError(t, svc.DeleteUser(ctx, admin, "u3"))
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, "u3"), ErrUserNotFound)
}

// ── Staff roles ───────────────────────────────────────────────────────────────

func TestStaffRoles(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	r, err := svc.CreateRole(ctx, dto.StaffRoleRequest{Name: "Cashier", AccessLevel: "SELLER"})
	require.NoError(t, err)
	assert.Equal(t, "role-t0001", r.ID)

	_, err = svc.CreateRole(ctx, dto.StaffRoleRequest{Name: "Owner", AccessLevel: "GOD"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.DeleteRole(ctx, "r2"), ErrRoleInUse)
	require.NoError(t, svc.DeleteRole(ctx, r.ID))
	assert.ErrorIs(t, svc.DeleteRole(ctx, r.ID), ErrRoleNotFound)
}

func TestUpdateRole_MovesHolders(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, "r2", dto.StaffRoleRequest{Name: "Floor Lead", AccessLevel: "MANAGER"})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	u := users[2]
	assert.Equal(t, "MANAGER", u.Role)
	assert.Equal(t, "Floor Lead", u.RoleName)
	assert.Equal(t, "ut-1", u.AssignedBranchID)
}

// ── Payroll ───────────────────────────────────────────────────────────────────

func TestProcessSalary_BooksExpense(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	p, err := svc.ProcessSalary(ctx, dto.ProcessSalaryRequest{
		UserID: "u2", Month: "March  2024", Bonus: dec("5000"), Deduction: dec("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SAL-T0002", p.ID)
	assert.Equal(t, "exp-t0001", p.ExpenseID)
	assert.True(t, dec("49000").Equal(p.Amount))
	assert.Equal(t, "March 2024", p.Month)
	assert.Equal(t, "ut-1", p.BranchID)
	assert.Equal(t, "Paid", p.Status)

	expenses, err := NewExpenseService(f.ctrl).List(ctx, admin, dto.ExpenseFilter{Category: "Salary"})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Payroll Disbursed: Branch Manager (Uttara) for March 2024", expenses[0].Description)
	assert.True(t, dec("49000").Equal(expenses[0].Amount))

	_, err = svc.ProcessSalary(ctx, dto.ProcessSalaryRequest{UserID: "u2", Month: "march 2024"})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = svc.ProcessSalary(ctx, dto.ProcessSalaryRequest{UserID: "u3", Month: "March 2024", Deduction: dec("30000")})
	assert.ErrorIs(t, err, ErrNegativeNetPay)

	got, err := svc.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Branch Manager (Uttara)", got.FullName)

	list, err := svc.ListPayments(ctx, dto.PayrollFilter{Month: "MARCH 2024"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	saved := f.persisted(t)
	assert.Len(t, saved.Salaries, 1)
	assert.Len(t, saved.Expenses, 1)
}

func TestProcessSalary_NoBaseSalary(t *testing.T) {
	f := newFixture(t)
	svc := NewStaffService(f.ctrl)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, dto.CreateUserRequest{Username: "intern", FullName: "Intern", RoleID: "r2"})
	require.NoError(t, err)

	_, err = svc.ProcessSalary(ctx, dto.ProcessSalaryRequest{UserID: u.ID, Month: "March 2024"})
	assert.ErrorIs(t, err, ErrNoBaseSalary)

	_, err = svc.ProcessSalary(ctx, dto.ProcessSalaryRequest{UserID: "ghost", Month: "March 2024"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8}
}

func TestLogin_DefaultPassword(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.ctrl, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "Manager", Password: "manager123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "u2", resp.User.ID)
	assert.Contains(t, resp.Capabilities, "view_reports")
	assert.NotContains(t, resp.Capabilities, "manage_staff")

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	assert.Equal(t, "u2", claims["user_id"])
	assert.Equal(t, "MANAGER", claims["role"])
	assert.Equal(t, "ut-1", claims["branch_id"])
}

func TestLogin_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.ctrl, testConfig())
	staff := NewStaffService(f.ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "nobody123"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = staff.UpdateUser(ctx, "u3", dto.UpdateUserRequest{Status: strPtr(string(model.UserInactive))})
	require.NoError(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "seller", Password: "seller123"})
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestLogin_ChangedPasswordUsesBcrypt(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.ctrl, testConfig())
	ctx := context.Background()

	_, err := NewStaffService(f.ctrl).UpdateUser(ctx, "u1", dto.UpdateUserRequest{Password: strPtr("s3cret!")})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Contains(t, resp.Capabilities, "all_branches")

	me, err := svc.Me(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "System Admin", me.User.RoleName)
	assert.Empty(t, me.AccessToken)
}
