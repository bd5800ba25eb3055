// Package seed provides the default dataset the shop starts with.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/ledger"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type dataset struct {
	Branches   []model.Branch        `yaml:"branches"`
	Categories []model.Category      `yaml:"categories"`
	StaffRoles []model.StaffRole     `yaml:"staffRoles"`
	Users      []model.User          `yaml:"users"`
	Products   []model.Product       `yaml:"products"`
	Stock      []model.StockItem     `yaml:"stock"`
	Sales      []model.Sale          `yaml:"sales"`
	Expenses   []model.Expense       `yaml:"expenses"`
	Salaries   []model.SalaryPayment `yaml:"salaries"`
	Settings   model.Settings        `yaml:"settings"`
}

// Parse decodes a dataset document into a fresh AppState.
func Parse(doc []byte, opts ...ledger.Option) (*state.AppState, error) {
	var ds dataset
	if err := yaml.Unmarshal(doc, &ds); err != nil {
		return nil, fmt.Errorf("seed: decode dataset: %w", err)
	}
	st := &state.AppState{
		Users:      nonNil(ds.Users),
		StaffRoles: nonNil(ds.StaffRoles),
		Products:   nonNil(ds.Products),
		Branches:   nonNil(ds.Branches),
		Categories: nonNil(ds.Categories),
		Expenses:   nonNil(ds.Expenses),
		Salaries:   nonNil(ds.Salaries),
		Settings:   ds.Settings,
		Ledger:     ledger.New(ds.Stock, ds.Sales, opts...),
	}
	return st, nil
}

// Defaults returns a new copy of the built-in dataset. Callers own the result.
func Defaults(opts ...ledger.Option) *state.AppState {
	st, err := Parse(defaultsYAML, opts...)
	if err != nil {
		panic(err)
	}
	return st
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
