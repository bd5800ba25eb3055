package service

import (
	"context"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/rs/zerolog/log"
)

type InventoryService interface {
	PurchaseEntry(ctx context.Context, actor access.Principal, req dto.PurchaseEntryRequest) (*dto.StockRowResponse, error)
	Transfer(ctx context.Context, actor access.Principal, req dto.TransferRequest) ([]dto.StockRowResponse, error)
	ListStock(ctx context.Context, actor access.Principal, filter dto.StockFilter) ([]dto.StockRowResponse, error)
}

type inventoryService struct{ ctrl *state.Controller }

func NewInventoryService(ctrl *state.Controller) InventoryService {
	return &inventoryService{ctrl: ctrl}
}

func stockRow(st *state.AppState, productID, branchID string) dto.StockRowResponse {
	row := dto.StockRowResponse{
		ProductID:   productID,
		ProductName: st.ProductName(productID),
		BranchID:    branchID,
		BranchName:  branchID,
	}
	for _, c := range st.Ledger.BranchStock(branchID) {
		if c.ProductID == productID {
			row.ID = c.ID
			row.Quantity = c.Quantity
			break
		}
	}
	if b, ok := st.Branch(branchID); ok {
		row.BranchName = b.Name
	}
	return row
}

// PurchaseEntry books new units into a branch. Non-admins can only receive
// into their own branch.
func (s *inventoryService) PurchaseEntry(ctx context.Context, actor access.Principal, req dto.PurchaseEntryRequest) (*dto.StockRowResponse, error) {
	var row dto.StockRowResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		branchID := actor.Scope(req.BranchID)
		if _, ok := st.Product(req.ProductID); !ok {
			return ErrProductNotFound
		}
		if _, ok := st.Branch(branchID); !ok {
			return ErrBranchNotFound
		}
		if err := st.Ledger.ApplyPurchaseEntry(req.ProductID, branchID, req.Quantity); err != nil {
			return err
		}
		row = stockRow(st, req.ProductID, branchID)
		return nil
	}, state.EntryStock)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Transfer moves stock between two branches. Non-admins may only send from
// their own branch.
func (s *inventoryService) Transfer(ctx context.Context, actor access.Principal, req dto.TransferRequest) ([]dto.StockRowResponse, error) {
	var rows []dto.StockRowResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		from := actor.Scope(req.FromBranchID)
		if _, ok := st.Product(req.ProductID); !ok {
			return ErrProductNotFound
		}
		for _, id := range []string{from, req.ToBranchID} {
			if _, ok := st.Branch(id); !ok {
				return ErrBranchNotFound
			}
		}
		if err := st.Ledger.ApplyTransfer(req.ProductID, from, req.ToBranchID, req.Quantity); err != nil {
			return err
		}
		rows = []dto.StockRowResponse{
			stockRow(st, req.ProductID, from),
			stockRow(st, req.ProductID, req.ToBranchID),
		}
		return nil
	}, state.EntryStock)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("product_id", req.ProductID).
		Str("from", rows[0].BranchID).
		Str("to", rows[1].BranchID).
		Int("quantity", req.Quantity).
		Msg("stock transferred")
	return rows, nil
}

func (s *inventoryService) ListStock(_ context.Context, actor access.Principal, filter dto.StockFilter) ([]dto.StockRowResponse, error) {
	var out []dto.StockRowResponse
	s.ctrl.View(func(st *state.AppState) {
		cells := st.Ledger.BranchStock(actor.Scope(filter.BranchID))
		out = make([]dto.StockRowResponse, 0, len(cells))
		for _, c := range cells {
			row := dto.StockRowResponse{
				ID:          c.ID,
				ProductID:   c.ProductID,
				ProductName: st.ProductName(c.ProductID),
				BranchID:    c.BranchID,
				BranchName:  c.BranchID,
				Quantity:    c.Quantity,
			}
			if b, ok := st.Branch(c.BranchID); ok {
				row.BranchName = b.Name
			}
			out = append(out, row)
		}
	})
	return out, nil
}
