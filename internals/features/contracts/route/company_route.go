package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devluck_backend/internals/features/contracts/controller"
	notifService "devluck_backend/internals/features/notifications/service"
)

func CompanyContractRoutes(company fiber.Router, db *gorm.DB, notifier notifService.Emitter) {
	ctrl := controller.NewCompanyContractController(db, notifier)

	contracts := company.Group("/contracts")
	contracts.Get("/", ctrl.ListContracts)
	contracts.Post("/", ctrl.CreateContract)
	contracts.Get("/stats", ctrl.GetContractStats)
	contracts.Get("/employees", ctrl.GetEmployees)
	contracts.Get("/:id", ctrl.GetContractByID)
	contracts.Put("/:id", ctrl.UpdateContract)
	contracts.Delete("/:id", ctrl.DeleteContract)
}
