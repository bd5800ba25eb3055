package service

import (
	"context"
	"testing"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCheckout_PricesFromCatalogue(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)

	resp, err := svc.Checkout(context.Background(), seller, dto.CheckoutRequest{
		BranchID:        "ban-1", // ignored: sellers are pinned to their branch
		Items:           []dto.CartLine{{ProductID: "p1", Quantity: 2}},
		DiscountPercent: dec("10"),
		CustomerName:    "Rahim",
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-T0001", resp.ID)
	assert.Equal(t, "ut-1", resp.BranchID)
	assert.Equal(t, model.SaleTypeSale, resp.Type)
	assert.True(t, dec("300").Equal(resp.TotalAmount))
	assert.True(t, dec("15").Equal(resp.VAT))
	assert.True(t, dec("30").Equal(resp.Discount))
	assert.True(t, dec("285").Equal(resp.FinalAmount))
	assert.Equal(t, "Air Max 270", resp.Items[0].ProductName)
	assert.False(t, resp.StockConflict)

	assert.Equal(t, 23, f.quantity("p1", "ut-1"))
	assert.Equal(t, 3, f.saleCount())

	saved := f.persisted(t)
	assert.Equal(t, "INV-T0001", saved.Ledger.Sales[0].ID)
	assert.Equal(t, 23, saved.Ledger.Quantity("p1", "ut-1"))
}

func TestCheckout_AdminDefaultsToSelectedBranch(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)

	resp, err := svc.Checkout(context.Background(), admin, dto.CheckoutRequest{
		Items: []dto.CartLine{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "wh", resp.BranchID)
	assert.Equal(t, 99, f.quantity("p1", "wh"))
}

func TestCheckout_OversellIsKeptAndFlagged(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)

	resp, err := svc.Checkout(context.Background(), manager, dto.CheckoutRequest{
		Items: []dto.CartLine{{ProductID: "p5", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, resp.StockConflict)
	assert.Equal(t, -1, f.quantity("p5", "ut-1"))
}

func TestCheckout_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, seller, dto.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Checkout(ctx, seller, dto.CheckoutRequest{
		Items: []dto.CartLine{{ProductID: "p1", Quantity: 1}, {ProductID: "ghost", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Checkout(ctx, seller, dto.CheckoutRequest{
		Items: []dto.CartLine{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidQuantity)

	_, err = svc.Checkout(ctx, seller, dto.CheckoutRequest{
		Items:           []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		DiscountPercent: dec("101"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 2, f.saleCount(), "rejected checkouts must not record anything")
	assert.Equal(t, 25, f.quantity("p1", "ut-1"))
}

func TestReturn_RestocksAndFlagsOriginal(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)
	ctx := context.Background()

	ret, err := svc.Return(ctx, manager, "s1")
	require.NoError(t, err)
	assert.Equal(t, "RET-0001", ret.ID)
	assert.Equal(t, model.SaleTypeReturn, ret.Type)
	assert.Equal(t, "s1", ret.OriginalSaleID)
	assert.True(t, dec("-147.5").Equal(ret.FinalAmount))
	assert.Equal(t, 26, f.quantity("p1", "ut-1"))

	orig, err := svc.Get(ctx, manager, "s1")
	require.NoError(t, err)
	assert.True(t, orig.IsReturned)

	_, err = svc.Return(ctx, manager, "s1")
	assert.ErrorIs(t, err, ledger.ErrAlreadyReturned)

	_, err = svc.Return(ctx, manager, ret.ID)
	assert.ErrorIs(t, err, ledger.ErrNotASale)
}

func TestReturn_OtherBranchIsHidden(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)

	_, err := svc.Return(context.Background(), seller, "s2")
	assert.ErrorIs(t, err, ledger.ErrSaleNotFound)

	_, err = svc.Get(context.Background(), seller, "s2")
	assert.ErrorIs(t, err, ledger.ErrSaleNotFound)
}

func TestDelete_ReversesStock(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, admin, "s2"))
	assert.Equal(t, 2, f.quantity("p2", "ban-1"))
	assert.Equal(t, 1, f.saleCount())

	assert.ErrorIs(t, svc.Delete(ctx, admin, "s2"), ledger.ErrSaleNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, manager, "missing"), ledger.ErrSaleNotFound)
}

func TestList_ScopedAndNewestFirst(t *testing.T) {
	f := newFixture(t)
	svc := NewSaleService(f.ctrl)
	ctx := context.Background()

	all, err := svc.List(ctx, admin, dto.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s2", all[0].ID)
	assert.Equal(t, "Banani Outlet", all[0].BranchName)

	mine, err := svc.List(ctx, seller, dto.SaleFilter{BranchID: "ban-1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "s1", mine[0].ID)

	_, err = svc.Return(ctx, admin, "s1")
	require.NoError(t, err)
	returns, err := svc.List(ctx, admin, dto.SaleFilter{Type: "RETURN"})
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, "s1", returns[0].OriginalSaleID)
}
