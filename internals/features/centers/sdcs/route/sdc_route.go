package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sdcCtrl "sdc_backend/internals/features/centers/sdcs/controller"
)

// SDCAdminRoutes mounts under /api/a
func SDCAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sdcCtrl.NewSDCController(db)

	r.Post("/work-orders/:id/sdcs", ctl.Provision)
	r.Put("/sdcs/:id/progress", ctl.UpdateProgress)
}

// SDCUserRoutes mounts under /api/u
func SDCUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sdcCtrl.NewSDCController(db)

	r.Get("/work-orders/:id/sdcs", ctl.ListByWorkOrder)
	r.Get("/sdcs/:id", ctl.GetByID)
}
