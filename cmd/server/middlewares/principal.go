package middlewares

import (
	"errors"

	"tasknest/cmd/server/ctxkeys"
	"tasknest/cmd/server/handlers/httperr"
	"tasknest/internal/config"
	"tasknest/internal/logger"
	"tasknest/internal/services/auth"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Principal returns a Fiber middleware that:
//
//   - validates the Bearer token signature and expiry using cfg.JWTSecret
//   - reads the "user_id" claim and loads the full user record
//   - stores the *auth.User in ctx.Locals(ctxkeys.PrincipalKey)
//
// Every authenticated request pays one store lookup; there is no caching, so
// a token for a deleted user is rejected immediately.
func Principal(cfg config.Config, users auth.UsersRepo) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Signature and expiry already verified at this point.
			token := c.Locals("user").(*jwt.Token)
			claims, _ := token.Claims.(jwt.MapClaims)

			idHex, ok := claims["user_id"].(string)
			if !ok || idHex == "" {
				return httperr.Fail(httperr.New(401, auth.ErrTokenMissingUserID.Error()))
			}

			userID, err := bson.ObjectIDFromHex(idHex)
			if err != nil {
				return httperr.Fail(httperr.New(401, auth.ErrInvalidToken.Error()))
			}

			user, err := users.FindByID(c.Context(), userID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					logger.L().Info("no user for verified token", "user_id", idHex)
					return httperr.Fail(httperr.New(401, "user not found with this token"))
				}
				logger.L().Error("principal lookup failed", "user_id", idHex, "error", err)
				return httperr.Fail(httperr.ErrInternal)
			}

			c.Locals(ctxkeys.PrincipalKey, user)
			return c.Next()
		},

		// Missing, malformed, and expired tokens all end up here.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.New(401, "invalid or missing token"))
		},
	})
}
