package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bdCtrl "sdc_backend/internals/features/progress/burndown/controller"
)

// BurndownUserRoutes mounts under /api/u
func BurndownUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := bdCtrl.NewBurndownController(db)
	r.Get("/burndown", ctl.Get)
}
