package middleware

import (
	"errors"
	"strings"

	"local-link/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxViewerIDKey = "viewer_id"
	CtxEmailKey    = "email"
)

// ViewerMiddleware resolves the signed-in viewer identity from a bearer
// token. Required mode rejects anonymous callers; optional mode lets them
// through with no viewer id set, which downstream treats as an anonymous
// browse.
type ViewerMiddleware struct {
	jwt jwt.Service
}

func NewViewerMiddleware(jwtSvc jwt.Service) *ViewerMiddleware {
	return &ViewerMiddleware{jwt: jwtSvc}
}

func (m *ViewerMiddleware) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, err := m.resolve(c)
		if err != nil {
			return err
		}
		c.Locals(CtxViewerIDKey, claims.ViewerID)
		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

func (m *ViewerMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, err := m.resolve(c)
		if err == nil {
			c.Locals(CtxViewerIDKey, claims.ViewerID)
			c.Locals(CtxEmailKey, claims.Email)
		}
		return c.Next()
	}
}

func (m *ViewerMiddleware) resolve(c fiber.Ctx) (jwt.Claims, error) {
	token, ok := bearerTokenFromHeader(c.Get("Authorization"))
	if !ok {
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}

	// Refresh tokens only ever hit /auth/refresh.
	if claims.TokenType != jwt.TokenTypeAccess {
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
	}

	return claims, nil
}

// ViewerID pulls the resolved viewer id out of the request context.
// uuid.Nil means anonymous.
func ViewerID(c fiber.Ctx) uuid.UUID {
	id, ok := c.Locals(CtxViewerIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
