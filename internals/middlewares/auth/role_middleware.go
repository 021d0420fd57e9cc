package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "sdc_backend/internals/helpers"
)

// OnlyRoles lets the request through when the role claim is one of roles.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		log.Printf("[AUTH] role %q denied on %s %s", role, c.Method(), c.OriginalURL())
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
