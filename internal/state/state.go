// Package state owns the single in-memory application state and mirrors it
// to the persistent store after every mutation.
package state

import (
	"context"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
)

// Entry names one independently persisted piece of the state.
type Entry string

const (
	EntryUsers            Entry = "users"
	EntryStaffRoles       Entry = "staff_roles"
	EntryProducts         Entry = "products"
	EntryStock            Entry = "stock"
	EntrySales            Entry = "sales"
	EntryExpenses         Entry = "expenses"
	EntrySalaries         Entry = "salaries"
	EntryBranches         Entry = "showrooms"
	EntryCategories       Entry = "categories"
	EntryVATRate          Entry = "vat_rate"
	EntryAppName          Entry = "app_name"
	EntryLogoURL          Entry = "logo_url"
	EntrySelectedBranchID Entry = "selected_showroom"
)

// AllEntries lists every persisted entry in load order.
var AllEntries = []Entry{
	EntryUsers, EntryStaffRoles, EntryProducts, EntryStock, EntrySales,
	EntryExpenses, EntrySalaries, EntryBranches, EntryCategories,
	EntryVATRate, EntryAppName, EntryLogoURL, EntrySelectedBranchID,
}

// AppState is the whole dataset of the shop. Stock and sales live in the
// ledger so that they can only change together through its events.
type AppState struct {
	Users      []model.User
	StaffRoles []model.StaffRole
	Products   []model.Product
	Branches   []model.Branch
	Categories []model.Category
	Expenses   []model.Expense
	Salaries   []model.SalaryPayment
	Settings   model.Settings
	Ledger     *ledger.Book
}

// Repository loads the state on startup and saves the named entries after a
// mutation.
type Repository interface {
	Load(ctx context.Context) (*AppState, error)
	Save(ctx context.Context, st *AppState, entries ...Entry) error
}

// ── Lookups ──────────────────────────────────────────────────────────────────

func (s *AppState) Product(id string) (model.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// ProductName returns the display name of id, or UnknownProductName once the
// product has been deleted.
func (s *AppState) ProductName(id string) string {
	if p, ok := s.Product(id); ok {
		return p.Name
	}
	return model.UnknownProductName
}

func (s *AppState) Branch(id string) (model.Branch, bool) {
	for _, b := range s.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return model.Branch{}, false
}

func (s *AppState) User(id string) (model.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *AppState) StaffRole(id string) (model.StaffRole, bool) {
	for _, r := range s.StaffRoles {
		if r.ID == id {
			return r, true
		}
	}
	return model.StaffRole{}, false
}

// FirstBranchID is the fallback branch used when nothing else is selected.
func (s *AppState) FirstBranchID() string {
	if len(s.Branches) == 0 {
		return ""
	}
	return s.Branches[0].ID
}
