package ledger_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newBook(stock ...model.StockItem) *ledger.Book {
	seq := 0
	return ledger.New(stock, nil,
		ledger.WithClock(func() time.Time { return fixedNow }),
		ledger.WithIDs(func() string {
			seq++
			return fmt.Sprintf("%04d", seq)
		}),
	)
}

func cell(id, productID, branchID string, qty int) model.StockItem {
	return model.StockItem{ID: id, ProductID: productID, BranchID: branchID, Quantity: qty}
}

func saleOf(id, branchID string, lines ...model.SaleItem) model.Sale {
	s := model.Sale{
		ID:       id,
		BranchID: branchID,
		Date:     fixedNow.Add(-time.Hour),
		Items:    lines,
		Type:     model.SaleTypeSale,
	}
	for _, l := range lines {
		s.TotalAmount = s.TotalAmount.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	s.VAT = s.TotalAmount.Mul(decimal.NewFromInt(5)).Div(decimal.NewFromInt(100))
	s.FinalAmount = s.TotalAmount.Add(s.VAT).Sub(s.Discount)
	return s
}

func line(productID string, qty int) model.SaleItem {
	return model.SaleItem{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(150),
		CostPrice: decimal.NewFromInt(80),
	}
}

// ── Purchase entry ────────────────────────────────────────────────────────────

func TestPurchaseEntryCreatesCell(t *testing.T) {
	b := newBook()

	require.NoError(t, b.ApplyPurchaseEntry("p1", "wh", 100))

	assert.Equal(t, 100, b.Quantity("p1", "wh"))
	require.Len(t, b.Stock, 1)
	assert.Equal(t, "st-0001", b.Stock[0].ID)
}

func TestPurchaseEntryIncrementsExistingCell(t *testing.T) {
	b := newBook(cell("st1", "p1", "wh", 100))

	require.NoError(t, b.ApplyPurchaseEntry("p1", "wh", 20))

	assert.Equal(t, 120, b.Quantity("p1", "wh"))
	assert.Len(t, b.Stock, 1, "the pair must keep a single row")
}

func TestPurchaseEntryRejectsNonPositiveQuantity(t *testing.T) {
	b := newBook(cell("st1", "p1", "wh", 10))

	assert.ErrorIs(t, b.ApplyPurchaseEntry("p1", "wh", 0), ledger.ErrInvalidQuantity)
	assert.ErrorIs(t, b.ApplyPurchaseEntry("p1", "wh", -5), ledger.ErrInvalidQuantity)
	assert.Equal(t, 10, b.Quantity("p1", "wh"))
}

// ── Sale ──────────────────────────────────────────────────────────────────────

func TestSaleDecrementsStockAndPrependsRecord(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 1)))

	rec := b.ApplySale(saleOf("INV-2", "ut-1", line("p1", 2)))

	assert.Equal(t, 22, b.Quantity("p1", "ut-1"))
	require.Len(t, b.Sales, 2)
	assert.Equal(t, "INV-2", b.Sales[0].ID, "most recent sale comes first")
	assert.Equal(t, model.SaleTypeSale, rec.Type)
	assert.False(t, rec.StockConflict)
}

func TestSaleOversellCreatesNegativeCell(t *testing.T) {
	b := newBook()

	rec := b.ApplySale(saleOf("INV-1", "ban-1", line("p9", 3)))

	assert.Equal(t, -3, b.Quantity("p9", "ban-1"))
	assert.True(t, rec.StockConflict)
	assert.True(t, b.Sales[0].StockConflict)
}

func TestSaleDoesNotAliasCallerItems(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 5))
	sale := saleOf("INV-1", "ut-1", line("p1", 1))

	b.ApplySale(sale)
	sale.Items[0].Quantity = 99

	assert.Equal(t, 1, b.Sales[0].Items[0].Quantity)
}

// ── Transfer ──────────────────────────────────────────────────────────────────

func TestTransferMovesStockBetweenBranches(t *testing.T) {
	b := newBook(cell("st1", "p1", "wh", 100), cell("st2", "p1", "ut-1", 25))

	require.NoError(t, b.ApplyTransfer("p1", "wh", "ut-1", 10))

	assert.Equal(t, 90, b.Quantity("p1", "wh"))
	assert.Equal(t, 35, b.Quantity("p1", "ut-1"))
}

func TestTransferCreatesDestinationCell(t *testing.T) {
	b := newBook(cell("st1", "p4", "wh", 40))

	require.NoError(t, b.ApplyTransfer("p4", "wh", "dhk-1", 40))

	assert.Equal(t, 0, b.Quantity("p4", "wh"))
	assert.Equal(t, 40, b.Quantity("p4", "dhk-1"))
	assert.Len(t, b.Stock, 2)
}

func TestTransferInsufficientStockIsNoOp(t *testing.T) {
	b := newBook(cell("st1", "p1", "wh", 5), cell("st2", "p1", "ut-1", 25))

	err := b.ApplyTransfer("p1", "wh", "ut-1", 6)

	assert.ErrorIs(t, err, ledger.ErrInsufficientStock)
	assert.Equal(t, 5, b.Quantity("p1", "wh"))
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
}

func TestTransferFromMissingCellIsNoOp(t *testing.T) {
	b := newBook(cell("st2", "p1", "ut-1", 25))

	err := b.ApplyTransfer("p1", "wh", "ut-1", 1)

	assert.ErrorIs(t, err, ledger.ErrInsufficientStock)
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
	assert.Len(t, b.Stock, 1, "a failed transfer must not create cells")
}

func TestTransferRejectsSameBranchAndBadQuantity(t *testing.T) {
	b := newBook(cell("st1", "p1", "wh", 5))

	assert.ErrorIs(t, b.ApplyTransfer("p1", "wh", "wh", 1), ledger.ErrInvalidTransfer)
	assert.ErrorIs(t, b.ApplyTransfer("p1", "wh", "ut-1", 0), ledger.ErrInvalidQuantity)
	assert.Equal(t, 5, b.Quantity("p1", "wh"))
}

// ── Return ────────────────────────────────────────────────────────────────────

func TestReturnRestoresStockAndAppendsRecord(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))
	sale := b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 1)))
	b.ApplySale(saleOf("INV-2", "ut-1", line("p1", 1)))

	ret, err := b.ApplyReturn("INV-1")
	require.NoError(t, err)

	assert.Equal(t, 24, b.Quantity("p1", "ut-1"))
	assert.Equal(t, model.SaleTypeReturn, ret.Type)
	assert.Equal(t, "INV-1", ret.OriginalSaleID)
	assert.Equal(t, "RET-0001", ret.ID)
	assert.Equal(t, fixedNow, ret.Date)
	assert.True(t, ret.FinalAmount.Equal(sale.FinalAmount.Neg()))

	require.Len(t, b.Sales, 3)
	assert.Equal(t, ret.ID, b.Sales[2].ID, "returns are appended")
	orig, ok := b.FindSale("INV-1")
	require.True(t, ok)
	assert.True(t, orig.IsReturned)
}

func TestReturnIsIdempotent(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 2)))

	_, err := b.ApplyReturn("INV-1")
	require.NoError(t, err)
	_, err = b.ApplyReturn("INV-1")

	assert.ErrorIs(t, err, ledger.ErrAlreadyReturned)
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
	assert.Len(t, b.Sales, 2)
}

func TestReturnUnknownSaleIsNoOp(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))

	_, err := b.ApplyReturn("INV-404")

	assert.ErrorIs(t, err, ledger.ErrSaleNotFound)
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
	assert.Empty(t, b.Sales)
}

func TestReturnOfReturnRecordIsRejected(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 1)))
	ret, err := b.ApplyReturn("INV-1")
	require.NoError(t, err)

	_, err = b.ApplyReturn(ret.ID)

	assert.ErrorIs(t, err, ledger.ErrNotASale)
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDeleteSaleIsInverseOfApplySale(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25), cell("st2", "p2", "ut-1", 5))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 3), line("p2", 1)))

	removed, err := b.DeleteTransaction("INV-1")
	require.NoError(t, err)

	assert.Equal(t, "INV-1", removed.ID)
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
	assert.Equal(t, 5, b.Quantity("p2", "ut-1"))
	assert.Empty(t, b.Sales)
}

func TestDeleteReturnTakesUnitsOutAgain(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 2)))
	ret, err := b.ApplyReturn("INV-1")
	require.NoError(t, err)

	_, err = b.DeleteTransaction(ret.ID)
	require.NoError(t, err)

	assert.Equal(t, 23, b.Quantity("p1", "ut-1"))
	orig, _ := b.FindSale("INV-1")
	assert.True(t, orig.IsReturned, "deleting a return keeps the original flagged")
}

func TestDeleteUnknownTransactionIsNoOp(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 1)))

	_, err := b.DeleteTransaction("INV-404")

	assert.ErrorIs(t, err, ledger.ErrSaleNotFound)
	assert.Equal(t, 24, b.Quantity("p1", "ut-1"))
	assert.Len(t, b.Sales, 1)
}

// ── Walkthrough ───────────────────────────────────────────────────────────────

func TestPurchaseSellReturnTransferDeleteWalkthrough(t *testing.T) {
	b := newBook(cell("st1", "p1", "ut-1", 25))

	require.NoError(t, b.ApplyPurchaseEntry("p1", "wh", 100))
	assert.Equal(t, 100, b.Quantity("p1", "wh"))

	sale := saleOf("INV-1", "ut-1", line("p1", 1))
	sale.Discount = decimal.NewFromInt(10)
	sale.FinalAmount = sale.TotalAmount.Add(sale.VAT).Sub(sale.Discount)
	rec := b.ApplySale(sale)
	assert.Equal(t, 24, b.Quantity("p1", "ut-1"))
	assert.Equal(t, "147.5", rec.FinalAmount.String())

	ret, err := b.ApplyReturn("INV-1")
	require.NoError(t, err)
	assert.Equal(t, 25, b.Quantity("p1", "ut-1"))
	assert.Equal(t, "-147.5", ret.FinalAmount.String())

	require.NoError(t, b.ApplyTransfer("p1", "wh", "ut-1", 10))
	assert.Equal(t, 90, b.Quantity("p1", "wh"))
	assert.Equal(t, 35, b.Quantity("p1", "ut-1"))

	_, err = b.DeleteTransaction("INV-1")
	require.NoError(t, err)
	assert.Equal(t, 36, b.Quantity("p1", "ut-1"), "deleting the sale puts its unit back once more")
	assert.Equal(t, 90, b.Quantity("p1", "wh"))
}

// ── Properties ────────────────────────────────────────────────────────────────

// TestLedgerSumLaw replays random event sequences and checks every cell
// against an independently tracked expectation.
func TestLedgerSumLaw(t *testing.T) {
	products := []string{"p1", "p2", "p3"}
	branches := []string{"wh", "ut-1", "ban-1"}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := newBook()
		want := map[[2]string]int{}
		var live []string
		n := 0

		for step := 0; step < 200; step++ {
			p := products[rng.Intn(len(products))]
			br := branches[rng.Intn(len(branches))]
			q := rng.Intn(5) + 1

			switch rng.Intn(5) {
			case 0:
				require.NoError(t, b.ApplyPurchaseEntry(p, br, q))
				want[[2]string{p, br}] += q
			case 1:
				n++
				id := fmt.Sprintf("INV-%d", n)
				b.ApplySale(saleOf(id, br, line(p, q)))
				want[[2]string{p, br}] -= q
				live = append(live, id)
			case 2:
				to := branches[rng.Intn(len(branches))]
				before := want[[2]string{p, br}]
				err := b.ApplyTransfer(p, br, to, q)
				if to != br && b.Quantity(p, br) == before-q {
					require.NoError(t, err)
					want[[2]string{p, br}] -= q
					want[[2]string{p, to}] += q
				} else {
					require.Error(t, err)
				}
			case 3:
				if len(live) == 0 {
					continue
				}
				id := live[rng.Intn(len(live))]
				rec, ok := b.FindSale(id)
				require.True(t, ok)
				ret, err := b.ApplyReturn(id)
				if rec.Type == model.SaleTypeReturn {
					require.ErrorIs(t, err, ledger.ErrNotASale)
					continue
				}
				if rec.IsReturned {
					require.ErrorIs(t, err, ledger.ErrAlreadyReturned)
					continue
				}
				require.NoError(t, err)
				for _, it := range rec.Items {
					want[[2]string{it.ProductID, rec.BranchID}] += it.Quantity
				}
				live = append(live, ret.ID)
			case 4:
				if len(live) == 0 {
					continue
				}
				k := rng.Intn(len(live))
				id := live[k]
				rec, err := b.DeleteTransaction(id)
				require.NoError(t, err)
				sign := 1
				if rec.Type == model.SaleTypeReturn {
					sign = -1
				}
				for _, it := range rec.Items {
					want[[2]string{it.ProductID, rec.BranchID}] += sign * it.Quantity
				}
				live = append(live[:k], live[k+1:]...)
			}

			for _, p := range products {
				for _, br := range branches {
					require.Equal(t, want[[2]string{p, br}], b.Quantity(p, br),
						"seed %d step %d cell (%s,%s)", seed, step, p, br)
				}
			}
		}
	}
}

func TestRemoveProductCascadesStock(t *testing.T) {
	b := newBook(cell("st1", "p1", "wh", 100), cell("st2", "p1", "ut-1", 25), cell("st3", "p2", "ut-1", 5))
	b.ApplySale(saleOf("INV-1", "ut-1", line("p1", 1)))

	removed := b.RemoveProduct("p1")

	assert.Equal(t, 2, removed)
	assert.Len(t, b.Stock, 1)
	assert.Equal(t, 0, b.TotalQuantity("p1"))
	assert.Len(t, b.Sales, 1, "sales keep their dangling references")
}

func TestSalesByDateSortsNewestFirst(t *testing.T) {
	b := newBook()
	older := saleOf("INV-OLD", "ut-1", line("p1", 1))
	older.Date = fixedNow.Add(-48 * time.Hour)
	newer := saleOf("INV-NEW", "ban-1", line("p1", 1))
	newer.Date = fixedNow
	b.ApplySale(newer)
	b.ApplySale(older) // inserted last, so first in insertion order

	all := b.SalesByDate("")
	require.Len(t, all, 2)
	assert.Equal(t, "INV-NEW", all[0].ID)

	scoped := b.SalesByDate("ut-1")
	require.Len(t, scoped, 1)
	assert.Equal(t, "INV-OLD", scoped[0].ID)
}
