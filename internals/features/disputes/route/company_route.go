package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devluck_backend/internals/features/disputes/controller"
	"devluck_backend/internals/features/disputes/service"
)

func CompanyDisputeRoutes(company fiber.Router, db *gorm.DB, svc *service.DisputeLifecycleService) {
	ctrl := controller.NewCompanyDisputeController(db, svc)

	disputes := company.Group("/disputes")
	disputes.Get("/", ctrl.ListDisputes)
	disputes.Get("/stats", ctrl.GetDisputeStats)
	disputes.Get("/:id", ctrl.GetDisputeByID)
	disputes.Put("/:id/status", ctrl.UpdateDisputeStatus)
	disputes.Put("/:id/resolve", ctrl.ResolveDispute)
	disputes.Put("/:id/reject", ctrl.RejectDispute)
}
