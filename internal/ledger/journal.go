package ledger

import (
	"sort"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
)

func (b *Book) indexOf(saleID string) int {
	for i := range b.Sales {
		if b.Sales[i].ID == saleID {
			return i
		}
	}
	return -1
}

// FindSale returns a copy of the record with the given id.
func (b *Book) FindSale(saleID string) (model.Sale, bool) {
	if i := b.indexOf(saleID); i >= 0 {
		return b.Sales[i].Clone(), true
	}
	return model.Sale{}, false
}

// SalesForBranch returns the records of branchID ("" = all) in insertion order.
func (b *Book) SalesForBranch(branchID string) []model.Sale {
	out := make([]model.Sale, 0, len(b.Sales))
	for _, s := range b.Sales {
		if branchID == "" || s.BranchID == branchID {
			out = append(out, s.Clone())
		}
	}
	return out
}

// SalesByDate returns the records of branchID ("" = all) newest first.
// Records with equal timestamps keep their insertion order.
func (b *Book) SalesByDate(branchID string) []model.Sale {
	out := b.SalesForBranch(branchID)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
