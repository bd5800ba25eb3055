package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"
)

type ExpenseService interface {
	Add(ctx context.Context, actor access.Principal, req dto.ExpenseRequest) (*model.Expense, error)
	Delete(ctx context.Context, actor access.Principal, id string) error
	List(ctx context.Context, actor access.Principal, filter dto.ExpenseFilter) ([]model.Expense, error)
}

type expenseService struct{ ctrl *state.Controller }

func NewExpenseService(ctrl *state.Controller) ExpenseService {
	return &expenseService{ctrl: ctrl}
}

// addExpense prepends e. The caller holds the controller lock.
func addExpense(st *state.AppState, e model.Expense) {
	st.Expenses = append([]model.Expense{e}, st.Expenses...)
}

func (s *expenseService) Add(ctx context.Context, actor access.Principal, req dto.ExpenseRequest) (*model.Expense, error) {
	cat := model.ExpenseCategory(req.Category)
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", ErrInvalidInput, req.Category)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	var e model.Expense
	err = s.ctrl.Update(ctx, func(st *state.AppState) error {
		branchID := actor.Scope(req.BranchID)
		if branchID == "" {
			branchID = st.Settings.SelectedBranchID
		}
		if _, ok := st.Branch(branchID); !ok {
			return ErrBranchNotFound
		}
		e = model.Expense{
			ID:          "exp-" + strings.ToLower(newID()),
			BranchID:    branchID,
			Category:    cat,
			Description: strings.TrimSpace(req.Description),
			Amount:      req.Amount,
			Date:        date,
		}
		addExpense(st, e)
		return nil
	}, state.EntryExpenses)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *expenseService) Delete(ctx context.Context, actor access.Principal, id string) error {
	return s.ctrl.Update(ctx, func(st *state.AppState) error {
		for i, e := range st.Expenses {
			if e.ID == id && actor.Sees(e.BranchID) {
				st.Expenses = append(st.Expenses[:i:i], st.Expenses[i+1:]...)
				return nil
			}
		}
		return ErrExpenseNotFound
	}, state.EntryExpenses)
}

func (s *expenseService) List(_ context.Context, actor access.Principal, filter dto.ExpenseFilter) ([]model.Expense, error) {
	branchID := actor.Scope(filter.BranchID)
	var out []model.Expense
	s.ctrl.View(func(st *state.AppState) {
		out = make([]model.Expense, 0, len(st.Expenses))
		for _, e := range st.Expenses {
			if branchID != "" && e.BranchID != branchID {
				continue
			}
			if filter.Category != "" && string(e.Category) != filter.Category {
				continue
			}
			out = append(out, e)
		}
	})
	return out, nil
}
