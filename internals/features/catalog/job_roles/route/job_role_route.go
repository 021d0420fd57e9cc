package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	jrCtrl "sdc_backend/internals/features/catalog/job_roles/controller"
)

// JobRoleAdminRoutes mounts under /api/a
func JobRoleAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := jrCtrl.NewJobRoleController(db)

	g := r.Group("/job-roles")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/deactivate", ctl.Deactivate)
}
