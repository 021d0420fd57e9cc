package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invCtrl "sdc_backend/internals/features/finance/invoices/controller"
)

// InvoiceAdminRoutes mounts under /api/a
func InvoiceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := invCtrl.NewInvoiceController(db)

	g := r.Group("/invoices")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Post("/:id/issue", ctl.Issue)
	g.Post("/:id/pay", ctl.Pay)
	g.Post("/:id/cancel", ctl.Cancel)
}

// FinanceUserRoutes mounts under /api/u
func FinanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := invCtrl.NewInvoiceController(db)
	r.Get("/finance/overview", ctl.Overview)
}
