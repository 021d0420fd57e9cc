// file: internals/route/details/workorder_routes.go
package details

import (
	JobRoleRoute "sdc_backend/internals/features/catalog/job_roles/route"
	SDCRoute "sdc_backend/internals/features/centers/sdcs/route"
	AllocationRoute "sdc_backend/internals/features/workorders/allocation/route"
	WorkOrderRoute "sdc_backend/internals/features/workorders/master_work_orders/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func WorkOrderUserRoutes(r fiber.Router, db *gorm.DB) {
	WorkOrderRoute.MasterWorkOrderUserRoutes(r, db)
	AllocationRoute.AllocationUserRoutes(r, db)
	SDCRoute.SDCUserRoutes(r, db)
}

func WorkOrderAdminRoutes(r fiber.Router, db *gorm.DB) {
	JobRoleRoute.JobRoleAdminRoutes(r, db)
	WorkOrderRoute.MasterWorkOrderAdminRoutes(r, db)
	SDCRoute.SDCAdminRoutes(r, db)
}
