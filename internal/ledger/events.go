package ledger

import (
	"fmt"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
)

// ApplySale decrements every line of sale at sale.BranchID and records it at
// the head of the transaction list. Overselling is allowed: a missing cell is
// created with a negative quantity and the record is flagged StockConflict.
func (b *Book) ApplySale(sale model.Sale) model.Sale {
	rec := sale.Clone()
	rec.Type = model.SaleTypeSale
	rec.IsReturned = false
	rec.OriginalSaleID = ""
	rec.StockConflict = false

	for _, it := range rec.Items {
		if b.adjust(it.ProductID, rec.BranchID, -it.Quantity) < 0 {
			rec.StockConflict = true
		}
	}
	b.Sales = append([]model.Sale{rec}, b.Sales...)
	return rec
}

// ApplyPurchaseEntry books quantity new units of productID into branchID.
func (b *Book) ApplyPurchaseEntry(productID, branchID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	b.adjust(productID, branchID, quantity)
	return nil
}

// ApplyTransfer moves quantity units of productID between two branches.
// The source cell must exist and hold at least quantity units; otherwise
// nothing moves.
func (b *Book) ApplyTransfer(productID, fromBranchID, toBranchID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if fromBranchID == toBranchID {
		return ErrInvalidTransfer
	}
	from := b.cell(productID, fromBranchID)
	if from < 0 || b.Stock[from].Quantity < quantity {
		return fmt.Errorf("%w: %d requested, %d available", ErrInsufficientStock, quantity, b.Quantity(productID, fromBranchID))
	}
	b.Stock[from].Quantity -= quantity
	b.adjust(productID, toBranchID, quantity)
	return nil
}

// ApplyReturn reverses a SALE: the original is flagged IsReturned, a RETURN
// record with the negated final amount is appended, and every line goes back
// into stock at the sale's branch. A sale can be returned only once.
func (b *Book) ApplyReturn(saleID string) (model.Sale, error) {
	i := b.indexOf(saleID)
	if i < 0 {
		return model.Sale{}, ErrSaleNotFound
	}
	orig := &b.Sales[i]
	if orig.Type != model.SaleTypeSale {
		return model.Sale{}, ErrNotASale
	}
	if orig.IsReturned {
		return model.Sale{}, ErrAlreadyReturned
	}

	ret := orig.Clone()
	ret.ID = "RET-" + b.newID()
	ret.Type = model.SaleTypeReturn
	ret.Date = b.now().UTC()
	ret.FinalAmount = orig.FinalAmount.Neg()
	ret.IsReturned = false
	ret.StockConflict = false
	ret.OriginalSaleID = orig.ID

	orig.IsReturned = true
	for _, it := range ret.Items {
		b.adjust(it.ProductID, ret.BranchID, it.Quantity)
	}
	b.Sales = append(b.Sales, ret)
	return ret, nil
}

// DeleteTransaction removes a record and blindly applies the inverse of the
// operation that created it: a SALE puts its units back, a RETURN takes them
// out again. Current stock levels are not checked.
func (b *Book) DeleteTransaction(saleID string) (model.Sale, error) {
	i := b.indexOf(saleID)
	if i < 0 {
		return model.Sale{}, ErrSaleNotFound
	}
	rec := b.Sales[i]

	sign := 1
	if rec.Type == model.SaleTypeReturn {
		sign = -1
	}
	for _, it := range rec.Items {
		b.adjust(it.ProductID, rec.BranchID, sign*it.Quantity)
	}
	b.Sales = append(b.Sales[:i:i], b.Sales[i+1:]...)
	return rec, nil
}
