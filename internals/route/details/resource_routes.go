// file: internals/route/details/resource_routes.go
package details

import (
	RegistryRoute "sdc_backend/internals/features/resources/registry/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ResourceAdminRoutes(r fiber.Router, db *gorm.DB) {
	RegistryRoute.RegistryAdminRoutes(r, db)
}
