package handlers

import (
	"tasknest/cmd/server/handlers/handlerutil"

	"github.com/gofiber/fiber/v2"
)

// Me returns the sanitized principal for the current token. Handy for
// clients restoring a session from a stored token.
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} auth.User
// @Failure 401 {object} httperr.E
// @Router /user/me [get]
func Me(c *fiber.Ctx) error {
	user, err := handlerutil.Principal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
