package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devluck_backend/internals/features/contracts/controller"
)

func StudentContractRoutes(student fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentContractController(db)

	contracts := student.Group("/contracts")
	contracts.Get("/", ctrl.ListContracts)
	contracts.Get("/:id", ctrl.GetContractByID)
}
