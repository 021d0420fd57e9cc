package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	woCtrl "sdc_backend/internals/features/workorders/master_work_orders/controller"
)

// MasterWorkOrderAdminRoutes mounts under /api/a
func MasterWorkOrderAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := woCtrl.NewMasterWorkOrderController(db)

	g := r.Group("/work-orders")
	g.Post("/", ctl.Create)
	g.Post("/:id/complete", ctl.Complete)
}

// MasterWorkOrderUserRoutes mounts under /api/u
func MasterWorkOrderUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := woCtrl.NewMasterWorkOrderController(db)

	g := r.Group("/work-orders")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
}
