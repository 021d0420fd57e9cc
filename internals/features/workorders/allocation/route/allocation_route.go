package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	allocCtrl "sdc_backend/internals/features/workorders/allocation/controller"
)

// AllocationUserRoutes mounts under /api/u
func AllocationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := allocCtrl.NewAllocationController(db)
	r.Get("/work-orders/:id/allocation-status", ctl.Status)
}
