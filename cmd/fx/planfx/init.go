package planfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"ceyloncircuit/internal/api/controllers"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/internal/services"
)

var Module = fx.Provide(
	providePlanRepo,
	providePlanService,
	providePlanController)

func providePlanRepo(db *gorm.DB) repositories.TripPlanRepository {
	return repositories.NewTripPlanRepository(db)
}

func providePlanService(planRepo repositories.TripPlanRepository) services.PlanServiceInterface {
	return services.NewPlanService(planRepo)
}

func providePlanController(planService services.PlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}
