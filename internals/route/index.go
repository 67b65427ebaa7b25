// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contractRoute "devluck_backend/internals/features/contracts/route"
	disputeRoute "devluck_backend/internals/features/disputes/route"
	disputeService "devluck_backend/internals/features/disputes/service"
	notifRoute "devluck_backend/internals/features/notifications/route"
	notifService "devluck_backend/internals/features/notifications/service"
	authMiddleware "devluck_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, notifier notifService.Emitter) {
	startTime = time.Now()

	BaseRoutes(app)

	lifecycle := disputeService.NewDisputeLifecycleService(db, notifier)

	// ===================== STUDENT =====================
	log.Println("[INFO] Setting up student routes...")
	student := app.Group("/api/student",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyStudent(),
	)
	contractRoute.StudentContractRoutes(student, db)
	disputeRoute.StudentDisputeRoutes(student, db, lifecycle)
	notifRoute.NotificationRoutes(student, db)

	// ===================== COMPANY =====================
	log.Println("[INFO] Setting up company routes...")
	company := app.Group("/company",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyCompany(),
	)
	contractRoute.CompanyContractRoutes(company, db, notifier)
	disputeRoute.CompanyDisputeRoutes(company, db, lifecycle)
	notifRoute.NotificationRoutes(company, db)
}
