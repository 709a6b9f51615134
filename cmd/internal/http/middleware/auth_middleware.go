package middleware

import (
	"context"
	"net/http"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/infrastructure/credentials"
	"notekeeper/cmd/internal/utils"
	"notekeeper/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}

type TokenValidator interface {
	Validate(token string) (*credentials.TokenData, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository
	Tokens   TokenValidator
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			tokenData, err := cfg.Tokens.Validate(header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindByID(c.Request().Context(), tokenData.UserID)
			if err != nil {
				log.Errorf("failed to fetch user %d for auth: %v", tokenData.UserID, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			// Account removed while the token is still valid
			if user == nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.UserContextKey, user)
			return next(c)
		}
	}
}
