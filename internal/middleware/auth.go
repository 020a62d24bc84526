package middleware

import (
	"context"
	"strings"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "warbler_session"

// SessionResolver maps an opaque session token to a user ID. The second
// return value is false when no session exists for the token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uint, bool, error)
}

// ExtractToken pulls the session token from the Authorization header
// ("Bearer <token>") or, failing that, from the session cookie.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(SessionCookieName)
}

// resolveIdentity resolves the current user exactly once per request and
// stores the result in Fiber locals and the request context so handlers and
// deeper layers never re-fetch it.
func resolveIdentity(c *fiber.Ctx, sessions SessionResolver) (uint, bool, error) {
	token := ExtractToken(c)
	if token == "" {
		return 0, false, nil
	}

	userID, found, err := sessions.Resolve(c.Context(), token)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}

	c.Locals("userID", userID)
	c.Locals("sessionToken", token)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
	return userID, true, nil
}

// RequireAuth rejects requests that do not carry a valid session.
func RequireAuth(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, found, err := resolveIdentity(c, sessions)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if !found {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access unauthorized."))
		}
		return c.Next()
	}
}

// OptionalAuth resolves the current user when a session is present but lets
// anonymous requests through. Public routes use it to render per-viewer
// state (e.g. liked messages) without requiring login.
func OptionalAuth(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, _, err := resolveIdentity(c, sessions); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user ID for the request, if any.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}
