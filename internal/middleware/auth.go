package middleware

import (
	"net/http"
	"strings"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/apierror"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey    = "claims"
	PrincipalKey = "principal"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id"`
	jwt.RegisteredClaims
}

// Principal converts the claims into the actor passed to the services.
func (c *JWTClaims) Principal() access.Principal {
	return access.Principal{
		UserID:   c.UserID,
		Username: c.Username,
		Role:     model.Role(c.Role),
		BranchID: c.BranchID,
	}
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid || !model.Role(claims.Role).Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(PrincipalKey, claims.Principal())
		c.Next()
	}
}

// RequireCapability rejects requests whose role lacks any of caps.
func RequireCapability(caps ...access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := c.Get(PrincipalKey)
		actor, isPrincipal := p.(access.Principal)
		if !ok || !isPrincipal {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}
		for _, cp := range caps {
			if !actor.Can(cp) {
				c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("insufficient permissions"))
				return
			}
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated actor set by JWTAuth.
func GetPrincipal(c *gin.Context) access.Principal {
	p, _ := c.MustGet(PrincipalKey).(access.Principal)
	return p
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
