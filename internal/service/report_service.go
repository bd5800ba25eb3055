package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/infra"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a stock cell is reported.
const LowStockThreshold = 10

// dailyWindow is the number of most recent sales days in the daily report.
const dailyWindow = 7

type ReportService interface {
	Summary(ctx context.Context, actor access.Principal, filter dto.ReportFilter) (*dto.SummaryResponse, error)
	LowStock(ctx context.Context, actor access.Principal, filter dto.ReportFilter) ([]dto.LowStockItem, error)
	SalesByCategory(ctx context.Context, actor access.Principal, filter dto.ReportFilter) ([]dto.CategorySalesItem, error)
	DailySales(ctx context.Context, actor access.Principal, filter dto.ReportFilter) ([]dto.DailySalesItem, error)
	ProductTotals(ctx context.Context) ([]dto.ProductTotalItem, error)
	ExportWorkbook(ctx context.Context, actor access.Principal, filter dto.ReportFilter, w io.Writer) error
	InvoicePDF(ctx context.Context, actor access.Principal, saleID string) ([]byte, error)
	SalarySlipPDF(ctx context.Context, paymentID string) ([]byte, error)
}

// DocumentArchiver keeps a copy of every generated PDF.
type DocumentArchiver interface {
	Archive(name string, data []byte)
}

type reportService struct {
	ctrl     *state.Controller
	archiver DocumentArchiver
}

// NewReportService builds the reporting service. archiver may be nil.
func NewReportService(ctrl *state.Controller, archiver DocumentArchiver) ReportService {
	return &reportService{ctrl: ctrl, archiver: archiver}
}

// signedCost is the record's cost of goods: positive for SALE, negative for RETURN.
func signedCost(s model.Sale) decimal.Decimal {
	if s.Type == model.SaleTypeReturn {
		return s.Cost().Neg()
	}
	return s.Cost()
}

func (s *reportService) Summary(_ context.Context, actor access.Principal, filter dto.ReportFilter) (*dto.SummaryResponse, error) {
	branchID := actor.Scope(filter.BranchID)
	resp := dto.SummaryResponse{
		BranchID:   branchID,
		Revenue:    decimal.Zero,
		COGS:       decimal.Zero,
		Expenses:   decimal.Zero,
		StockValue: decimal.Zero,
	}

	s.ctrl.View(func(st *state.AppState) {
		for _, sale := range st.Ledger.SalesForBranch(branchID) {
			resp.Revenue = resp.Revenue.Add(sale.FinalAmount)
			resp.COGS = resp.COGS.Add(signedCost(sale))
			if sale.Type == model.SaleTypeReturn {
				resp.ReturnsCount++
			} else {
				resp.SalesCount++
			}
		}
		for _, e := range st.Expenses {
			if branchID == "" || e.BranchID == branchID {
				resp.Expenses = resp.Expenses.Add(e.Amount)
			}
		}
		for _, c := range st.Ledger.BranchStock(branchID) {
			resp.StockUnits += c.Quantity
			if p, ok := st.Product(c.ProductID); ok {
				resp.StockValue = resp.StockValue.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(c.Quantity))))
			}
		}
	})

	resp.GrossProfit = resp.Revenue.Sub(resp.COGS)
	resp.NetProfit = resp.GrossProfit.Sub(resp.Expenses)
	return &resp, nil
}

// LowStock lists stock cells under LowStockThreshold, lowest first. Cells of
// deleted products are skipped.
func (s *reportService) LowStock(_ context.Context, actor access.Principal, filter dto.ReportFilter) ([]dto.LowStockItem, error) {
	branchID := actor.Scope(filter.BranchID)
	out := []dto.LowStockItem{}
	s.ctrl.View(func(st *state.AppState) {
		for _, c := range st.Ledger.BranchStock(branchID) {
			if c.Quantity >= LowStockThreshold {
				continue
			}
			p, ok := st.Product(c.ProductID)
			if !ok {
				continue
			}
			item := dto.LowStockItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Brand:       p.Brand,
				BranchID:    c.BranchID,
				BranchName:  c.BranchID,
				Quantity:    c.Quantity,
			}
			if b, ok := st.Branch(c.BranchID); ok {
				item.BranchName = b.Name
			}
			out = append(out, item)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

// SalesByCategory sums line revenue per product category. Return lines
// subtract; lines of deleted products are skipped.
func (s *reportService) SalesByCategory(_ context.Context, actor access.Principal, filter dto.ReportFilter) ([]dto.CategorySalesItem, error) {
	branchID := actor.Scope(filter.BranchID)
	totals := map[string]*dto.CategorySalesItem{}
	var order []string

	s.ctrl.View(func(st *state.AppState) {
		for _, sale := range st.Ledger.SalesForBranch(branchID) {
			sign := int64(1)
			if sale.Type == model.SaleTypeReturn {
				sign = -1
			}
			for _, it := range sale.Items {
				p, ok := st.Product(it.ProductID)
				if !ok {
					continue
				}
				item, seen := totals[p.Category]
				if !seen {
					item = &dto.CategorySalesItem{Category: p.Category, Amount: decimal.Zero}
					totals[p.Category] = item
					order = append(order, p.Category)
				}
				qty := sign * int64(it.Quantity)
				item.Amount = item.Amount.Add(it.UnitPrice.Mul(decimal.NewFromInt(qty)))
				item.Units += int(qty)
			}
		}
	})

	out := make([]dto.CategorySalesItem, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	return out, nil
}

// DailySales sums final amounts per UTC calendar day and keeps the most
// recent days that had activity, oldest first.
func (s *reportService) DailySales(_ context.Context, actor access.Principal, filter dto.ReportFilter) ([]dto.DailySalesItem, error) {
	branchID := actor.Scope(filter.BranchID)
	days := map[string]decimal.Decimal{}
	s.ctrl.View(func(st *state.AppState) {
		for _, sale := range st.Ledger.SalesForBranch(branchID) {
			day := sale.Date.UTC().Format(time.DateOnly)
			days[day] = days[day].Add(sale.FinalAmount)
		}
	})

	keys := make([]string, 0, len(days))
	for d := range days {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	if len(keys) > dailyWindow {
		keys = keys[len(keys)-dailyWindow:]
	}

	out := make([]dto.DailySalesItem, len(keys))
	for i, d := range keys {
		out[i] = dto.DailySalesItem{Date: d, Amount: days[d]}
	}
	return out, nil
}

// ProductTotals reports the global stock of every catalogue product.
func (s *reportService) ProductTotals(context.Context) ([]dto.ProductTotalItem, error) {
	var out []dto.ProductTotalItem
	s.ctrl.View(func(st *state.AppState) {
		byProduct := map[string]map[string]int{}
		for _, c := range st.Ledger.BranchStock("") {
			if byProduct[c.ProductID] == nil {
				byProduct[c.ProductID] = map[string]int{}
			}
			byProduct[c.ProductID][c.BranchID] += c.Quantity
		}
		out = make([]dto.ProductTotalItem, 0, len(st.Products))
		for _, p := range st.Products {
			byBranch := byProduct[p.ID]
			if byBranch == nil {
				byBranch = map[string]int{}
			}
			out = append(out, dto.ProductTotalItem{
				ProductID: p.ID,
				Name:      p.Name,
				Brand:     p.Brand,
				Total:     st.Ledger.TotalQuantity(p.ID),
				ByBranch:  byBranch,
			})
		}
	})
	return out, nil
}

// ── Exports ──────────────────────────────────────────────────────────────────

// ExportWorkbook writes the sales history (newest first) and the stock table
// of the actor's scope as an XLSX workbook.
func (s *reportService) ExportWorkbook(_ context.Context, actor access.Principal, filter dto.ReportFilter, w io.Writer) error {
	branchID := actor.Scope(filter.BranchID)

	sales := infra.Sheet{
		Name:   "Sales",
		Header: []string{"ID", "Date", "Branch", "Type", "Units", "Subtotal", "VAT", "Discount", "Final", "Returned", "Customer"},
	}
	stock := infra.Sheet{
		Name:   "Stock",
		Header: []string{"Product", "Brand", "Size", "Color", "Branch", "Quantity", "Unit cost", "Value"},
	}

	s.ctrl.View(func(st *state.AppState) {
		branchName := func(id string) string {
			if b, ok := st.Branch(id); ok {
				return b.Name
			}
			return id
		}
		for _, sale := range st.Ledger.SalesByDate(branchID) {
			sales.Rows = append(sales.Rows, []any{
				sale.ID,
				sale.Date.UTC().Format("2006-01-02 15:04"),
				branchName(sale.BranchID),
				string(sale.Type),
				sale.Units(),
				sale.TotalAmount.InexactFloat64(),
				sale.VAT.InexactFloat64(),
				sale.Discount.InexactFloat64(),
				sale.FinalAmount.InexactFloat64(),
				sale.IsReturned,
				sale.CustomerName,
			})
		}
		for _, c := range st.Ledger.BranchStock(branchID) {
			p, ok := st.Product(c.ProductID)
			if !ok {
				continue
			}
			stock.Rows = append(stock.Rows, []any{
				p.Name,
				p.Brand,
				p.Size,
				p.Color,
				branchName(c.BranchID),
				c.Quantity,
				p.CostPrice.InexactFloat64(),
				p.CostPrice.Mul(decimal.NewFromInt(int64(c.Quantity))).InexactFloat64(),
			})
		}
	})

	return infra.WriteWorkbook(w, sales, stock)
}

// InvoicePDF renders the receipt of one sale or return record.
func (s *reportService) InvoicePDF(_ context.Context, actor access.Principal, saleID string) ([]byte, error) {
	var (
		inv   infra.Invoice
		found bool
	)
	s.ctrl.View(func(st *state.AppState) {
		sale, ok := st.Ledger.FindSale(saleID)
		if !ok || !actor.Sees(sale.BranchID) {
			return
		}
		found = true
		inv = infra.Invoice{
			ShopName:      st.Settings.AppName,
			BranchName:    sale.BranchID,
			Number:        sale.ID,
			Date:          sale.Date,
			Return:        sale.Type == model.SaleTypeReturn,
			OriginalSale:  sale.OriginalSaleID,
			CustomerName:  sale.CustomerName,
			CustomerPhone: sale.CustomerPhone,
			Subtotal:      sale.TotalAmount,
			VAT:           sale.VAT,
			Discount:      sale.Discount,
			Total:         sale.FinalAmount,
		}
		if b, ok := st.Branch(sale.BranchID); ok {
			inv.BranchName = b.Name
		}
		for _, it := range sale.Items {
			inv.Lines = append(inv.Lines, infra.InvoiceLine{
				Name:      st.ProductName(it.ProductID),
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				LineTotal: it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			})
		}
	})
	if !found {
		return nil, ledger.ErrSaleNotFound
	}

	var buf bytes.Buffer
	if err := infra.RenderInvoicePDF(&buf, inv); err != nil {
		return nil, err
	}
	s.archive("invoice_"+saleID+".pdf", buf.Bytes())
	return buf.Bytes(), nil
}

// SalarySlipPDF renders the payroll statement of one salary payment.
func (s *reportService) SalarySlipPDF(_ context.Context, paymentID string) ([]byte, error) {
	var (
		slip  infra.SalarySlip
		found bool
	)
	s.ctrl.View(func(st *state.AppState) {
		for _, p := range st.Salaries {
			if p.ID != paymentID {
				continue
			}
			found = true
			slip = infra.SalarySlip{
				ShopName:     st.Settings.AppName,
				PaymentID:    p.ID,
				EmployeeName: p.UserID,
				BranchName:   p.BranchID,
				Month:        p.Month,
				DatePaid:     p.DatePaid,
				BasicSalary:  p.BasicSalary,
				Bonus:        p.Bonus,
				Deduction:    p.Deduction,
				NetPay:       p.Amount,
				Note:         p.Note,
			}
			if u, ok := st.User(p.UserID); ok {
				slip.EmployeeName = u.FullName
				if r, ok := st.StaffRole(u.RoleID); ok {
					slip.RoleName = r.Name
				}
			}
			if b, ok := st.Branch(p.BranchID); ok {
				slip.BranchName = b.Name
			}
			return
		}
	})
	if !found {
		return nil, ErrPaymentNotFound
	}

	var buf bytes.Buffer
	if err := infra.RenderSalarySlipPDF(&buf, slip); err != nil {
		return nil, err
	}
	s.archive("salary_"+paymentID+".pdf", buf.Bytes())
	return buf.Bytes(), nil
}

func (s *reportService) archive(name string, data []byte) {
	if s.archiver != nil {
		s.archiver.Archive(name, data)
	}
}
