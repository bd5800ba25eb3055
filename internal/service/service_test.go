package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/seed"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── Fixture ───────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	admin   = access.Principal{UserID: "u1", Username: "admin", Role: model.RoleAdmin}
	manager = access.Principal{UserID: "u2", Username: "manager", Role: model.RoleManager, BranchID: "ut-1"}
	seller  = access.Principal{UserID: "u3", Username: "seller", Role: model.RoleSeller, BranchID: "ut-1"}
)

type fixture struct {
	ctrl  *state.Controller
	store *repository.MemoryStore
}

// newFixture loads the default dataset behind an in-memory store with a
// frozen clock and sequential ids (T0001, T0002, ... for services and
// 0001, 0002, ... for the ledger).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	prevNow, prevID, prevCost := now, newID, bcryptCost
	seq := 0
	now = func() time.Time { return fixedNow }
	newID = func() string { seq++; return fmt.Sprintf("T%04d", seq) }
	bcryptCost = bcrypt.MinCost
	t.Cleanup(func() { now, newID, bcryptCost = prevNow, prevID, prevCost })

	ledgerSeq := 0
	st := seed.Defaults(
		ledger.WithClock(func() time.Time { return fixedNow }),
		ledger.WithIDs(func() string { ledgerSeq++; return fmt.Sprintf("%04d", ledgerSeq) }),
	)
	store := repository.NewMemoryStore()
	repo := repository.NewStateRepository(store, repository.DefaultPrefix)
	return &fixture{ctrl: state.NewController(st, repo), store: store}
}

func (f *fixture) quantity(productID, branchID string) int {
	var q int
	f.ctrl.View(func(st *state.AppState) { q = st.Ledger.Quantity(productID, branchID) })
	return q
}

func (f *fixture) saleCount() int {
	var n int
	f.ctrl.View(func(st *state.AppState) { n = len(st.Ledger.Sales) })
	return n
}

// persisted reloads the state from the store the way a restart would.
func (f *fixture) persisted(t *testing.T) *state.AppState {
	t.Helper()
	st, err := repository.NewStateRepository(f.store, repository.DefaultPrefix).Load(context.Background())
	require.NoError(t, err)
	return st
}
