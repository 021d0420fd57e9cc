// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"sdc_backend/internals/configs"
	"sdc_backend/internals/constants"
	authMiddleware "sdc_backend/internals/middlewares/auth"
	routeDetails "sdc_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.Options{Secret: configs.JWTSecret})

	// ===================== PRIVATE (any staff) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		jwt,
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("this resource"), constants.AllRoles...),
	)

	// ===================== ADMIN (HO / admin) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		jwt,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this resource"), constants.AdminAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting WorkOrder routes...")
	routeDetails.WorkOrderUserRoutes(user, db)
	routeDetails.WorkOrderAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Resource routes...")
	routeDetails.ResourceAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.ReportUserRoutes(user, db)
	routeDetails.FinanceAdminRoutes(admin, db)
}
