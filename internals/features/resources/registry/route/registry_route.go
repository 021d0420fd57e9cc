package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	regCtrl "sdc_backend/internals/features/resources/registry/controller"
)

// RegistryAdminRoutes mounts under /api/a; :kind is trainers|managers|infrastructures.
func RegistryAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := regCtrl.NewRegistryController(db)

	g := r.Group("/resources")
	g.Patch("/infrastructures/:id/maintenance", ctl.Maintenance)

	g.Get("/:kind", ctl.List)
	g.Post("/:kind", ctl.Create)
	g.Get("/:kind/:id", ctl.GetByID)
	g.Patch("/:kind/:id", ctl.Update)
	g.Post("/:kind/:id/assign", ctl.Assign)
	g.Post("/:kind/:id/release", ctl.Release)
}
