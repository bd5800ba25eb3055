package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/config"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/dto"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, actor access.Principal) (*dto.LoginResponse, error)
}

type authService struct {
	ctrl *state.Controller
	cfg  *config.Config
}

func NewAuthService(ctrl *state.Controller, cfg *config.Config) AuthService {
	return &authService{ctrl: ctrl, cfg: cfg}
}

// checkPassword compares pw with the stored hash. Accounts without a hash
// still use the default password <username>123.
func checkPassword(u model.User, pw string) bool {
	if u.PasswordHash == "" {
		return subtle.ConstantTimeCompare([]byte(u.Username+"123"), []byte(pw)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pw)) == nil
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	var (
		user  model.User
		found bool
		resp  dto.UserResponse
	)
	s.ctrl.View(func(st *state.AppState) {
		for _, u := range st.Users {
			if u.Username == username {
				user, found = u, true
				resp = userToResponse(st, u)
				return
			}
		}
	})
	if !found || !checkPassword(user, req.Password) {
		return nil, ErrInvalidCredential
	}
	if user.Status == model.UserInactive {
		return nil, ErrInactiveUser
	}

	token, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  token,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         resp,
		Capabilities: capabilityNames(user.Role),
	}, nil
}

// Me re-reads the caller's account; the token may be older than the last
// profile change.
func (s *authService) Me(_ context.Context, actor access.Principal) (*dto.LoginResponse, error) {
	var (
		resp dto.LoginResponse
		err  = ErrUserNotFound
	)
	s.ctrl.View(func(st *state.AppState) {
		if u, ok := st.User(actor.UserID); ok {
			resp.User = userToResponse(st, u)
			resp.Capabilities = capabilityNames(u.Role)
			err = nil
		}
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func capabilityNames(role model.Role) []string {
	caps := access.Capabilities(role)
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

func (s *authService) generateToken(user model.User, duration time.Duration) (string, error) {
	issued := now()
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"username":  user.Username,
		"role":      string(user.Role),
		"branch_id": user.AssignedBranchID,
		"exp":       issued.Add(duration).Unix(),
		"iat":       issued.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
