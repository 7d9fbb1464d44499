package http

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/principal"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/token"

	"github.com/labstack/echo/v4"
)

const (
	// jwtCookieName is the cookie carrying the credential token.
	jwtCookieName = "jwt"

	// principalContextKey is the echo context key holding the resolved
	// principal after authentication.
	principalContextKey = "principal"
)

// AuthMiddleware resolves the request's credential token into a
// principal. The account is re-read on every request so role changes and
// deletions take effect immediately, and the deny list is consulted so a
// logged-out token cannot be replayed.
type AuthMiddleware struct {
	tokens   *token.Service
	denyList ports.TokenDenyList
	users    ports.UserRepository
}

// NewAuthMiddleware creates the authentication middleware.
func NewAuthMiddleware(
	tokens *token.Service,
	denyList ports.TokenDenyList,
	users ports.UserRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		denyList: denyList,
		users:    users,
	}
}

// Authenticate rejects requests without a valid, unrevoked token and
// attaches the resolved principal to the echo context.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
			}

			claims, err := m.tokens.Verify(tokenString)
			if err != nil {
				return writeError(ctx, errs.NewUnauthenticatedErrorWithCause("invalid token", err))
			}

			revoked, err := m.denyList.IsRevoked(ctx.Request().Context(), claims.ID)
			if err != nil {
				// Fail closed: with the deny list unreachable a revoked
				// token cannot be distinguished from a live one.
				return writeError(ctx,
					errs.NewRetryableFailureErrorWithCause("check token revocation", err))
			}
			if revoked {
				return writeError(ctx, errs.NewUnauthenticatedError("token revoked"))
			}

			userID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return writeError(ctx, errs.NewUnauthenticatedErrorWithCause("invalid token subject", err))
			}

			account, err := m.users.Get(ctx.Request().Context(), userID)
			if err != nil {
				return writeError(ctx, errs.NewUnauthenticatedErrorWithCause("unknown account", err))
			}

			actor, err := principal.NewPrincipal(account.ID(), account.Role())
			if err != nil {
				return writeError(ctx, err)
			}

			ctx.Set(principalContextKey, actor)
			return next(ctx)
		}
	}
}

// RequireAdmin rejects authenticated requests whose principal is not an
// administrator. Must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, ok := principalFromContext(ctx)
			if !ok {
				return writeError(ctx, errs.NewUnauthenticatedError("missing credentials"))
			}
			if !actor.IsAdministrator() {
				return writeError(ctx, errs.NewAccessForbiddenError("administer storefront"))
			}
			return next(ctx)
		}
	}
}

// extractToken reads the credential token from the jwt cookie, falling
// back to a bearer Authorization header for non-browser clients.
func extractToken(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(jwtCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const bearerPrefix = "Bearer "
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(bearerPrefix) && header[:len(bearerPrefix)] == bearerPrefix {
		return header[len(bearerPrefix):]
	}

	return ""
}

func principalFromContext(ctx echo.Context) (principal.Principal, bool) {
	actor, ok := ctx.Get(principalContextKey).(principal.Principal)
	return actor, ok
}
