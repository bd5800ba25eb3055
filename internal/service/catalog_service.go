package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/rs/zerolog/log"
)

// CatalogService manages products, branches and categories.
type CatalogService interface {
	CreateProduct(ctx context.Context, actor access.Principal, req dto.ProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, actor access.Principal, id string, req dto.ProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, actor access.Principal, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, actor access.Principal, filter dto.ProductFilter) ([]dto.ProductResponse, error)

	CreateBranch(ctx context.Context, req dto.BranchRequest) (*model.Branch, error)
	UpdateBranch(ctx context.Context, id string, req dto.BranchRequest) (*model.Branch, error)
	DeleteBranch(ctx context.Context, id string) error
	ListBranches(ctx context.Context) ([]model.Branch, error)

	CreateCategory(ctx context.Context, req dto.CategoryRequest) (*model.Category, error)
	RenameCategory(ctx context.Context, id string, req dto.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type catalogService struct{ ctrl *state.Controller }

func NewCatalogService(ctrl *state.Controller) CatalogService {
	return &catalogService{ctrl: ctrl}
}

// ── Products ─────────────────────────────────────────────────────────────────

func applyProductRequest(p *model.Product, req dto.ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Brand = strings.TrimSpace(req.Brand)
	p.Category = req.Category
	p.Size = req.Size
	p.Color = req.Color
	p.CostPrice = req.CostPrice
	p.SellingPrice = req.SellingPrice
	p.ImageURL = req.ImageURL
}

// CreateProduct adds a catalogue entry. A positive initial quantity is booked
// as a purchase entry at the initial branch.
func (s *catalogService) CreateProduct(ctx context.Context, actor access.Principal, req dto.ProductRequest) (*dto.ProductResponse, error) {
	if req.InitialQuantity < 0 {
		return nil, fmt.Errorf("%w: initial quantity cannot be negative", ErrInvalidInput)
	}
	entries := []state.Entry{state.EntryProducts}
	if req.InitialQuantity > 0 {
		entries = append(entries, state.EntryStock)
	}

	var resp dto.ProductResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		var branchID string
		if req.InitialQuantity > 0 {
			branchID = actor.Scope(req.InitialBranchID)
			if _, ok := st.Branch(branchID); !ok {
				return ErrBranchNotFound
			}
		}
		p := model.Product{ID: "p" + newID()}
		applyProductRequest(&p, req)
		st.Products = append(st.Products, p)
		if req.InitialQuantity > 0 {
			if err := st.Ledger.ApplyPurchaseEntry(p.ID, branchID, req.InitialQuantity); err != nil {
				st.Products = st.Products[:len(st.Products)-1]
				return err
			}
		}
		resp = productToResponse(st, p, "")
		return nil
	}, entries...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, actor access.Principal, id string, req dto.ProductRequest) (*dto.ProductResponse, error) {
	var resp dto.ProductResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				applyProductRequest(&st.Products[i], req)
				resp = productToResponse(st, st.Products[i], scopeIfPinned(actor))
				return nil
			}
		}
		return ErrProductNotFound
	}, state.EntryProducts)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct removes the product and every stock cell it owns. Sale
// lines keep the dangling id.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		for i, p := range st.Products {
			if p.ID == id {
				st.Products = append(st.Products[:i:i], st.Products[i+1:]...)
				cells := st.Ledger.RemoveProduct(id)
				log.Info().Str("product_id", id).Int("stock_rows", cells).Msg("product deleted")
				return nil
			}
		}
		return ErrProductNotFound
	}, state.EntryProducts, state.EntryStock)
}

func (s *catalogService) GetProduct(_ context.Context, actor access.Principal, id string) (*dto.ProductResponse, error) {
	var (
		resp dto.ProductResponse
		err  = ErrProductNotFound
	)
	s.ctrl.View(func(st *state.AppState) {
		if p, ok := st.Product(id); ok {
			resp = productToResponse(st, p, scopeIfPinned(actor))
			err = nil
		}
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts filters by a case-insensitive name/brand search and by category.
func (s *catalogService) ListProducts(_ context.Context, actor access.Principal, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []dto.ProductResponse
	s.ctrl.View(func(st *state.AppState) {
		out = make([]dto.ProductResponse, 0, len(st.Products))
		for _, p := range st.Products {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
				continue
			}
			out = append(out, productToResponse(st, p, scopeIfPinned(actor)))
		}
	})
	return out, nil
}

// scopeIfPinned returns the branch whose stock is shown next to products:
// the assigned branch for users who cannot see every branch.
func scopeIfPinned(actor access.Principal) string {
	if actor.Can(access.AllBranches) {
		return ""
	}
	return actor.BranchID
}

// ── Branches ─────────────────────────────────────────────────────────────────

func (s *catalogService) CreateBranch(ctx context.Context, req dto.BranchRequest) (*model.Branch, error) {
	b := model.Branch{ID: "sr-" + strings.ToLower(newID()), Name: strings.TrimSpace(req.Name), Location: req.Location}
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		st.Branches = append(st.Branches, b)
		return nil
	}, state.EntryBranches)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *catalogService) UpdateBranch(ctx context.Context, id string, req dto.BranchRequest) (*model.Branch, error) {
	var out model.Branch
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		for i := range st.Branches {
			if st.Branches[i].ID == id {
				st.Branches[i].Name = strings.TrimSpace(req.Name)
				st.Branches[i].Location = req.Location
				out = st.Branches[i]
				return nil
			}
		}
		return ErrBranchNotFound
	}, state.EntryBranches)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBranch refuses the warehouse and any branch still holding stock.
// Empty stock rows of the branch are dropped with it.
func (s *catalogService) DeleteBranch(ctx context.Context, id string) error {
	if id == model.WarehouseID {
		return ErrWarehouseLocked
	}
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		idx := -1
		for i, b := range st.Branches {
			if b.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrBranchNotFound
		}
		if st.Ledger.HoldsStock(id) {
			return ErrBranchInUse
		}
		st.Branches = append(st.Branches[:idx:idx], st.Branches[idx+1:]...)
		st.Ledger.RemoveBranch(id)
		if st.Settings.SelectedBranchID == id {
			st.Settings.SelectedBranchID = st.FirstBranchID()
		}
		return nil
	}, state.EntryBranches, state.EntryStock, state.EntrySelectedBranchID)
}

func (s *catalogService) ListBranches(context.Context) ([]model.Branch, error) {
	var out []model.Branch
	s.ctrl.View(func(st *state.AppState) {
		out = append([]model.Branch(nil), st.Branches...)
	})
	return out, nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func categoryTaken(st *state.AppState, name, exceptID string) bool {
	for _, c := range st.Categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*model.Category, error) {
	c := model.Category{ID: "cat-" + strings.ToLower(newID()), Name: strings.TrimSpace(req.Name)}
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		if categoryTaken(st, c.Name, "") {
			return ErrDuplicateCategory
		}
		st.Categories = append(st.Categories, c)
		return nil
	}, state.EntryCategories)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RenameCategory also rewrites the category of every product that carried
// the old name.
func (s *catalogService) RenameCategory(ctx context.Context, id string, req dto.CategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	var out model.Category
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		if categoryTaken(st, name, id) {
			return ErrDuplicateCategory
		}
		for i := range st.Categories {
			if st.Categories[i].ID != id {
				continue
			}
			old := st.Categories[i].Name
			st.Categories[i].Name = name
			for j := range st.Products {
				if st.Products[j].Category == old {
					st.Products[j].Category = name
				}
			}
			out = st.Categories[i]
			return nil
		}
		return ErrCategoryNotFound
	}, state.EntryCategories, state.EntryProducts)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory leaves products on the deleted name; it only disappears
// from the pick list.
func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		for i, c := range st.Categories {
			if c.ID == id {
				st.Categories = append(st.Categories[:i:i], st.Categories[i+1:]...)
				return nil
			}
		}
		return ErrCategoryNotFound
	}, state.EntryCategories)
}

func (s *catalogService) ListCategories(context.Context) ([]model.Category, error) {
	var out []model.Category
	s.ctrl.View(func(st *state.AppState) {
		out = append([]model.Category(nil), st.Categories...)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
