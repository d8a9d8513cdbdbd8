package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/repository"
	apperrors "github.com/spec-kit/staff-service/pkg/util"
)

const (
	principalKey    = "auth_principal"
	sessionTokenKey = "auth_session_token"
)

// AuthMiddleware authenticates requests via bearer token or session cookie.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions SessionStore
	staff    repository.StaffRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionStore, staff repository.StaffRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, staff: staff}
}

// Handle resolves the calling staff member and stores it in request locals.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	staffID, err := m.resolveStaffID(c)
	if err != nil {
		return err
	}

	staff, err := m.staff.GetByID(c.Context(), staffID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("Authentication required!")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, staff)
	return c.Next()
}

func (m *AuthMiddleware) resolveStaffID(c *fiber.Ctx) (string, error) {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", apperrors.NewUnauthorized("invalid authorization header")
		}
		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			return "", apperrors.NewUnauthorized("invalid token")
		}
		return claims.StaffID, nil
	}

	if token := c.Cookies(SessionCookieName); token != "" {
		staffID, err := m.sessions.Get(c.Context(), token)
		if err != nil {
			if err == ErrSessionNotFound {
				return "", apperrors.NewUnauthorized("Authentication required!")
			}
			return "", apperrors.MapError(err)
		}
		c.Locals(sessionTokenKey, token)
		return staffID, nil
	}

	return "", apperrors.NewUnauthorized("Authentication required!")
}

// StaffFromContext retrieves the authenticated staff member.
func StaffFromContext(c *fiber.Ctx) (*domain.StaffMember, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	staff, ok := val.(*domain.StaffMember)
	return staff, ok
}

// SessionTokenFromContext retrieves the session token, when the caller
// authenticated with one.
func SessionTokenFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(sessionTokenKey)
	if val == nil {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
