package service

import (
	"context"
	"fmt"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type SaleService interface {
	Checkout(ctx context.Context, actor access.Principal, req dto.CheckoutRequest) (*dto.SaleResponse, error)
	Return(ctx context.Context, actor access.Principal, saleID string) (*dto.SaleResponse, error)
	Delete(ctx context.Context, actor access.Principal, saleID string) error
	Get(ctx context.Context, actor access.Principal, saleID string) (*dto.SaleResponse, error)
	List(ctx context.Context, actor access.Principal, filter dto.SaleFilter) ([]dto.SaleResponse, error)
}

type saleService struct{ ctrl *state.Controller }

func NewSaleService(ctrl *state.Controller) SaleService {
	return &saleService{ctrl: ctrl}
}

// ── Checkout ──────────────────────────────────────────────────────────────────
//   1. Resolve the branch (non-admins always sell from their own branch)
//   2. Snapshot catalogue prices for every cart line
//   3. subtotal + VAT - discount
//   4. Apply to the ledger; overselling is kept and flagged

func (s *saleService) Checkout(ctx context.Context, actor access.Principal, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalidInput)
	}

	var resp dto.SaleResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		branchID := actor.Scope(req.BranchID)
		if branchID == "" {
			branchID = st.Settings.SelectedBranchID
		}
		if _, ok := st.Branch(branchID); !ok {
			return ErrBranchNotFound
		}

		items := make([]model.SaleItem, 0, len(req.Items))
		subtotal := decimal.Zero
		for _, line := range req.Items {
			if line.Quantity < 1 {
				return ledger.ErrInvalidQuantity
			}
			p, ok := st.Product(line.ProductID)
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			items = append(items, model.SaleItem{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				UnitPrice: p.SellingPrice,
				CostPrice: p.CostPrice,
			})
			subtotal = subtotal.Add(p.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		vat := percentOf(subtotal, st.Settings.VATRate)
		discount := percentOf(subtotal, req.DiscountPercent)
		rec := st.Ledger.ApplySale(model.Sale{
			ID:              "INV-" + newID(),
			BranchID:        branchID,
			Date:            now().UTC(),
			Items:           items,
			TotalAmount:     subtotal,
			VAT:             vat,
			Discount:        discount,
			FinalAmount:     subtotal.Add(vat).Sub(discount),
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: req.CustomerAddress,
		})
		if rec.StockConflict {
			log.Warn().Str("sale_id", rec.ID).Str("branch_id", branchID).Msg("checkout drove stock below zero")
		}
		resp = saleToResponse(st, rec)
		return nil
	}, state.EntryStock, state.EntrySales)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ── Return / Delete ──────────────────────────────────────────────────────────

func (s *saleService) Return(ctx context.Context, actor access.Principal, saleID string) (*dto.SaleResponse, error) {
	var resp dto.SaleResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		if orig, ok := st.Ledger.FindSale(saleID); !ok || !actor.Sees(orig.BranchID) {
			return ledger.ErrSaleNotFound
		}
		ret, err := st.Ledger.ApplyReturn(saleID)
		if err != nil {
			return err
		}
		resp = saleToResponse(st, ret)
		return nil
	}, state.EntryStock, state.EntrySales)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *saleService) Delete(ctx context.Context, actor access.Principal, saleID string) error {
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		if rec, ok := st.Ledger.FindSale(saleID); !ok || !actor.Sees(rec.BranchID) {
			return ledger.ErrSaleNotFound
		}
		rec, err := st.Ledger.DeleteTransaction(saleID)
		if err != nil {
			return err
		}
		log.Info().Str("sale_id", rec.ID).Str("type", string(rec.Type)).Str("by", actor.Username).Msg("transaction deleted")
		return nil
	}, state.EntryStock, state.EntrySales)
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *saleService) Get(_ context.Context, actor access.Principal, saleID string) (*dto.SaleResponse, error) {
	var (
		resp dto.SaleResponse
		err  error
	)
	s.ctrl.View(func(st *state.AppState) {
		rec, ok := st.Ledger.FindSale(saleID)
		if !ok || !actor.Sees(rec.BranchID) {
			err = ledger.ErrSaleNotFound
			return
		}
		resp = saleToResponse(st, rec)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the visible records newest first.
func (s *saleService) List(_ context.Context, actor access.Principal, filter dto.SaleFilter) ([]dto.SaleResponse, error) {
	var out []dto.SaleResponse
	s.ctrl.View(func(st *state.AppState) {
		records := st.Ledger.SalesByDate(actor.Scope(filter.BranchID))
		out = make([]dto.SaleResponse, 0, len(records))
		for _, rec := range records {
			if filter.Type != "" && string(rec.Type) != filter.Type {
				continue
			}
			out = append(out, saleToResponse(st, rec))
		}
	})
	return out, nil
}
