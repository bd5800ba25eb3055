package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/seed"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultPrefix namespaces every persisted entry.
const DefaultPrefix = "soleerp_"

var errNotAList = errors.New("entry is not a JSON array")

// StateRepository persists AppState as one key per entry. Collections are JSON
// arrays, vat_rate is a JSON number, and the remaining scalars are raw strings.
type StateRepository struct {
	store  KVStore
	prefix string
}

var _ state.Repository = (*StateRepository)(nil)

func NewStateRepository(store KVStore, prefix string) *StateRepository {
	return &StateRepository{store: store, prefix: prefix}
}

func (r *StateRepository) key(e state.Entry) string { return r.prefix + string(e) }

// Load reads every entry. Missing or malformed entries fall back to the
// default dataset; only a backend failure is returned as an error.
func (r *StateRepository) Load(ctx context.Context) (*state.AppState, error) {
	st := seed.Defaults()
	stock, sales := st.Ledger.Stock, st.Ledger.Sales

	for _, e := range state.AllEntries {
		raw, err := r.store.Get(ctx, r.key(e))
		if errors.Is(err, ErrKeyNotFound) {
			log.Debug().Str("entry", string(e)).Msg("state: entry missing, using default")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", e, err)
		}

		switch e {
		case state.EntryUsers:
			err = decodeList(raw, &st.Users)
		case state.EntryStaffRoles:
			err = decodeList(raw, &st.StaffRoles)
		case state.EntryProducts:
			err = decodeList(raw, &st.Products)
		case state.EntryStock:
			err = decodeList(raw, &stock)
		case state.EntrySales:
			err = decodeList(raw, &sales)
		case state.EntryExpenses:
			err = decodeList(raw, &st.Expenses)
		case state.EntrySalaries:
			err = decodeList(raw, &st.Salaries)
		case state.EntryBranches:
			err = decodeList(raw, &st.Branches)
		case state.EntryCategories:
			err = decodeList(raw, &st.Categories)
		case state.EntryVATRate:
			var rate decimal.Decimal
			if rate, err = decimal.NewFromString(strings.Trim(strings.TrimSpace(raw), `"`)); err == nil {
				st.Settings.VATRate = rate
			}
		case state.EntryAppName:
			if raw != "" {
				st.Settings.AppName = raw
			}
		case state.EntryLogoURL:
			st.Settings.LogoURL = raw
		case state.EntrySelectedBranchID:
			st.Settings.SelectedBranchID = raw
		}
		if err != nil {
			log.Debug().Err(err).Str("entry", string(e)).Msg("state: entry malformed, using default")
		}
	}

	st.Ledger = ledger.New(stock, sales)
	if _, ok := st.Branch(st.Settings.SelectedBranchID); !ok {
		st.Settings.SelectedBranchID = st.FirstBranchID()
	}
	return st, nil
}

// Save writes the listed entries. Every entry is attempted; failures are joined.
func (r *StateRepository) Save(ctx context.Context, st *state.AppState, entries ...state.Entry) error {
	var errs []error
	for _, e := range entries {
		raw, err := encodeEntry(st, e)
		if err == nil {
			err = r.store.Set(ctx, r.key(e), raw)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", e, err))
		}
	}
	return errors.Join(errs...)
}

func encodeEntry(st *state.AppState, e state.Entry) (string, error) {
	var v any
	switch e {
	case state.EntryUsers:
		v = st.Users
	case state.EntryStaffRoles:
		v = st.StaffRoles
	case state.EntryProducts:
		v = st.Products
	case state.EntryStock:
		v = st.Ledger.Stock
	case state.EntrySales:
		v = st.Ledger.Sales
	case state.EntryExpenses:
		v = st.Expenses
	case state.EntrySalaries:
		v = st.Salaries
	case state.EntryBranches:
		v = st.Branches
	case state.EntryCategories:
		v = st.Categories
	case state.EntryVATRate:
		return st.Settings.VATRate.String(), nil
	case state.EntryAppName:
		return st.Settings.AppName, nil
	case state.EntryLogoURL:
		return st.Settings.LogoURL, nil
	case state.EntrySelectedBranchID:
		return st.Settings.SelectedBranchID, nil
	default:
		return "", fmt.Errorf("unknown entry %q", e)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList replaces *dst only when raw is a well-formed JSON array.
func decodeList[T any](raw string, dst *[]T) error {
	var v []T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return err
	}
	if v == nil {
		return errNotAList
	}
	*dst = v
	return nil
}

// Reset overwrites every entry with the default dataset.
func (r *StateRepository) Reset(ctx context.Context) (*state.AppState, error) {
	st := seed.Defaults()
	if err := r.Save(ctx, st, state.AllEntries...); err != nil {
		return nil, err
	}
	return st, nil
}

// Purge deletes every entry so the next Load starts from the defaults.
func (r *StateRepository) Purge(ctx context.Context) error {
	var errs []error
	for _, e := range state.AllEntries {
		if err := r.store.Delete(ctx, r.key(e)); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", e, err))
		}
	}
	return errors.Join(errs...)
}
