// Package ledger keeps the per-(product, branch) stock table consistent with
// the transaction log. Every operation is a synchronous in-memory mutation;
// callers are responsible for serialising access and for persistence.
package ledger

import (
	"errors"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidTransfer   = errors.New("transfer source and destination must differ")
	ErrInsufficientStock = errors.New("insufficient stock at source branch")
	ErrSaleNotFound      = errors.New("transaction not found")
	ErrAlreadyReturned   = errors.New("sale has already been returned")
	ErrNotASale          = errors.New("only SALE records can be returned")
)

// Book holds the stock table and the transaction list. Sales are ordered
// most-recent-first by insertion; RETURN records are appended at the end.
//
// Operations that return an error leave the book untouched.
type Book struct {
	Stock []model.StockItem
	Sales []model.Sale

	newID func() string
	now   func() time.Time
}

type Option func(*Book)

// WithClock overrides the timestamp source used for RETURN records.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithIDs overrides the id generator used for new stock rows and RETURN records.
func WithIDs(gen func() string) Option {
	return func(b *Book) { b.newID = gen }
}

// New takes ownership of stock and sales.
func New(stock []model.StockItem, sales []model.Sale, opts ...Option) *Book {
	b := &Book{
		Stock: stock,
		Sales: sales,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.Stock == nil {
		b.Stock = []model.StockItem{}
	}
	if b.Sales == nil {
		b.Sales = []model.Sale{}
	}
	return b
}

// ── Stock table ──────────────────────────────────────────────────────────────

func (b *Book) cell(productID, branchID string) int {
	for i := range b.Stock {
		if b.Stock[i].ProductID == productID && b.Stock[i].BranchID == branchID {
			return i
		}
	}
	return -1
}

// adjust applies delta to the (product, branch) cell, creating it at delta
// when absent, and returns the new quantity.
func (b *Book) adjust(productID, branchID string, delta int) int {
	if i := b.cell(productID, branchID); i >= 0 {
		b.Stock[i].Quantity += delta
		return b.Stock[i].Quantity
	}
	b.Stock = append(b.Stock, model.StockItem{
		ID:        "st-" + b.newID(),
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  delta,
	})
	return delta
}

// Quantity returns the stock of one cell; a missing cell counts as zero.
func (b *Book) Quantity(productID, branchID string) int {
	if i := b.cell(productID, branchID); i >= 0 {
		return b.Stock[i].Quantity
	}
	return 0
}

// TotalQuantity is the global stock of a product summed over every branch.
func (b *Book) TotalQuantity(productID string) int {
	total := 0
	for _, s := range b.Stock {
		if s.ProductID == productID {
			total += s.Quantity
		}
	}
	return total
}

// BranchStock returns a copy of the cells held by branchID ("" = all branches).
func (b *Book) BranchStock(branchID string) []model.StockItem {
	out := make([]model.StockItem, 0, len(b.Stock))
	for _, s := range b.Stock {
		if branchID == "" || s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out
}

// HoldsStock reports whether any cell of branchID has a non-zero quantity.
func (b *Book) HoldsStock(branchID string) bool {
	for _, s := range b.Stock {
		if s.BranchID == branchID && s.Quantity != 0 {
			return true
		}
	}
	return false
}

// RemoveProduct deletes every cell of productID and returns how many were dropped.
// Transaction lines referencing the product are left dangling.
func (b *Book) RemoveProduct(productID string) int {
	kept := b.Stock[:0]
	removed := 0
	for _, s := range b.Stock {
		if s.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	b.Stock = kept
	return removed
}

// RemoveBranch deletes every cell of branchID.
func (b *Book) RemoveBranch(branchID string) {
	kept := b.Stock[:0]
	for _, s := range b.Stock {
		if s.BranchID != branchID {
			kept = append(kept, s)
		}
	}
	b.Stock = kept
}
