// file: internals/route/details/finance_routes.go
package details

import (
	InvoiceRoute "sdc_backend/internals/features/finance/invoices/route"
	BurndownRoute "sdc_backend/internals/features/progress/burndown/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Reporting reads: burn-down and the financial overview.
func ReportUserRoutes(r fiber.Router, db *gorm.DB) {
	BurndownRoute.BurndownUserRoutes(r, db)
	InvoiceRoute.FinanceUserRoutes(r, db)
}

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	InvoiceRoute.InvoiceAdminRoutes(r, db)
}
