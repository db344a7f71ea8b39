package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhive/internal/domain/repository"
)

type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

// LoadRole resolves the authenticated user's role and stores it on the
// context. Must run after Authenticate.
func (m *RoleMiddleware) LoadRole(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User record not found")
		}

		c.Set("role", user.Role)

		return next(c)
	}
}
