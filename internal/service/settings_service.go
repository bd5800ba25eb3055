package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"
)

type SettingsService interface {
	Get(ctx context.Context, actor access.Principal) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct{ ctrl *state.Controller }

func NewSettingsService(ctrl *state.Controller) SettingsService {
	return &settingsService{ctrl: ctrl}
}

// Get reports the shop settings. For users pinned to a branch the selected
// branch is always their own.
func (s *settingsService) Get(_ context.Context, actor access.Principal) (*dto.SettingsResponse, error) {
	var resp dto.SettingsResponse
	s.ctrl.View(func(st *state.AppState) {
		resp = dto.SettingsResponse{
			VATRate:          st.Settings.VATRate,
			AppName:          st.Settings.AppName,
			LogoURL:          st.Settings.LogoURL,
			SelectedBranchID: st.Settings.SelectedBranchID,
		}
	})
	if !actor.Can(access.AllBranches) && actor.BranchID != "" {
		resp.SelectedBranchID = actor.BranchID
	}
	return &resp, nil
}

// Update persists only the settings that changed.
func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if req.VATRate != nil && (req.VATRate.IsNegative() || req.VATRate.GreaterThan(hundred)) {
		return nil, fmt.Errorf("%w: vat rate must be between 0 and 100", ErrInvalidInput)
	}
	if req.AppName != nil && strings.TrimSpace(*req.AppName) == "" {
		return nil, fmt.Errorf("%w: app name cannot be empty", ErrInvalidInput)
	}

	var entries []state.Entry
	if req.VATRate != nil {
		entries = append(entries, state.EntryVATRate)
	}
	if req.AppName != nil {
		entries = append(entries, state.EntryAppName)
	}
	if req.LogoURL != nil {
		entries = append(entries, state.EntryLogoURL)
	}
	if req.SelectedBranchID != nil {
		entries = append(entries, state.EntrySelectedBranchID)
	}

	var resp dto.SettingsResponse
	err := s.ctrl.Update(ctx, func(st *state.AppState) error {
		if req.SelectedBranchID != nil {
			if _, ok := st.Branch(*req.SelectedBranchID); !ok {
				return ErrBranchNotFound
			}
			st.Settings.SelectedBranchID = *req.SelectedBranchID
		}
		if req.VATRate != nil {
			st.Settings.VATRate = *req.VATRate
		}
		if req.AppName != nil {
			st.Settings.AppName = strings.TrimSpace(*req.AppName)
		}
		if req.LogoURL != nil {
			st.Settings.LogoURL = strings.TrimSpace(*req.LogoURL)
		}
		resp = dto.SettingsResponse{
			VATRate:          st.Settings.VATRate,
			AppName:          st.Settings.AppName,
			LogoURL:          st.Settings.LogoURL,
			SelectedBranchID: st.Settings.SelectedBranchID,
		}
		return nil
	}, entries...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
