package catalogfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"ceyloncircuit/internal/api/controllers"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/internal/services"
)

var Module = fx.Provide(
	provideDestinationRepo,
	provideAccommodationRepo,
	provideEmbeddingRepo,
	provideCatalogService,
	provideDestinationController,
	provideAccommodationController)

func provideDestinationRepo(db *gorm.DB) repositories.DestinationRepository {
	return repositories.NewDestinationRepository(db)
}

func provideAccommodationRepo(db *gorm.DB) repositories.AccommodationRepository {
	return repositories.NewAccommodationRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.DestinationEmbeddingRepository {
	return repositories.NewDestinationEmbeddingRepository(db)
}

func provideCatalogService(
	destinationRepo repositories.DestinationRepository,
	accommodationRepo repositories.AccommodationRepository,
) services.CatalogServiceInterface {
	return services.NewCatalogService(destinationRepo, accommodationRepo)
}

func provideDestinationController(
	catalogService services.CatalogServiceInterface,
	destinationRepo repositories.DestinationRepository,
	embeddingRepo repositories.DestinationEmbeddingRepository,
) *controllers.DestinationController {
	return controllers.NewDestinationController(catalogService, destinationRepo, embeddingRepo)
}

func provideAccommodationController(
	catalogService services.CatalogServiceInterface,
	accommodationRepo repositories.AccommodationRepository,
) *controllers.AccommodationController {
	return controllers.NewAccommodationController(catalogService, accommodationRepo)
}
