package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devluck_backend/internals/features/disputes/controller"
	"devluck_backend/internals/features/disputes/service"
	"devluck_backend/internals/middlewares"
)

func StudentDisputeRoutes(student fiber.Router, db *gorm.DB, svc *service.DisputeLifecycleService) {
	ctrl := controller.NewStudentDisputeController(db, svc)

	// Rate limit khusus pengajuan dispute.
	student.Post("/contracts/:contractId/dispute", middlewares.DisputeRateLimiter(), ctrl.FileDispute)

	disputes := student.Group("/disputes")
	disputes.Get("/", ctrl.ListDisputes)
	disputes.Get("/:id", ctrl.GetDisputeByID)
}
