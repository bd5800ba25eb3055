package service

import (
	"strings"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clock and id sources; tests replace them.
var (
	now   = time.Now
	newID = func() string { return strings.ToUpper(uuid.NewString()[:8]) }
)

var hundred = decimal.NewFromInt(100)

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func saleToResponse(st *state.AppState, s model.Sale) dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, len(s.Items))
	for i, it := range s.Items {
		lines[i] = dto.SaleLineResponse{
			ProductID:   it.ProductID,
			ProductName: st.ProductName(it.ProductID),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CostPrice:   it.CostPrice,
			LineTotal:   it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
	}
	branchName := s.BranchID
	if b, ok := st.Branch(s.BranchID); ok {
		branchName = b.Name
	}
	return dto.SaleResponse{
		ID:              s.ID,
		BranchID:        s.BranchID,
		BranchName:      branchName,
		Date:            s.Date.UTC().Format(time.RFC3339),
		Type:            s.Type,
		Items:           lines,
		TotalAmount:     s.TotalAmount,
		VAT:             s.VAT,
		Discount:        s.Discount,
		FinalAmount:     s.FinalAmount,
		IsReturned:      s.IsReturned,
		OriginalSaleID:  s.OriginalSaleID,
		StockConflict:   s.StockConflict,
		CustomerName:    s.CustomerName,
		CustomerPhone:   s.CustomerPhone,
		CustomerAddress: s.CustomerAddress,
	}
}

func userToResponse(st *state.AppState, u model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Role:             string(u.Role),
		RoleID:           u.RoleID,
		AssignedBranchID: u.AssignedBranchID,
		FullName:         u.FullName,
		PhoneNumber:      u.PhoneNumber,
		BaseSalary:       u.BaseSalary,
		JoiningDate:      u.JoiningDate,
		Status:           string(u.Status),
	}
	if r, ok := st.StaffRole(u.RoleID); ok {
		resp.RoleName = r.Name
	}
	return resp
}

func productToResponse(st *state.AppState, p model.Product, branchID string) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		Size:         p.Size,
		Color:        p.Color,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		ImageURL:     p.ImageURL,
		TotalStock:   st.Ledger.TotalQuantity(p.ID),
	}
	if branchID != "" {
		q := st.Ledger.Quantity(p.ID, branchID)
		resp.BranchStock = &q
	}
	return resp
}

func paymentToResponse(st *state.AppState, p model.SalaryPayment) dto.SalaryPaymentResponse {
	name := p.UserID
	if u, ok := st.User(p.UserID); ok {
		name = u.FullName
	}
	return dto.SalaryPaymentResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		FullName:    name,
		BranchID:    p.BranchID,
		BasicSalary: p.BasicSalary,
		Bonus:       p.Bonus,
		Deduction:   p.Deduction,
		Amount:      p.Amount,
		Month:       p.Month,
		DatePaid:    p.DatePaid.UTC().Format(time.RFC3339),
		Note:        p.Note,
		Status:      p.Status,
	}
}

// normalizeMonth collapses whitespace and case so "October  2023" and
// "october 2023" name the same payroll period.
func normalizeMonth(m string) string {
	return strings.ToLower(strings.Join(strings.Fields(m), " "))
}

// parseDay reads a YYYY-MM-DD date; empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return now().UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}
