package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ceyloncircuit/internal/models/db_models"
	"ceyloncircuit/internal/models/request_models"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/internal/services"
	"ceyloncircuit/pkg/utils"
)

type AccommodationController struct {
	catalogService    services.CatalogServiceInterface
	accommodationRepo repositories.AccommodationRepository
}

func NewAccommodationController(
	catalogService services.CatalogServiceInterface,
	accommodationRepo repositories.AccommodationRepository,
) *AccommodationController {
	return &AccommodationController{
		catalogService:    catalogService,
		accommodationRepo: accommodationRepo,
	}
}

func (a *AccommodationController) ListAccommodationsHandler(c *gin.Context) {
	utils.RespondSuccess(c, a.catalogService.Accommodations(c.Request.Context()), "Accommodations loaded")
}

func (a *AccommodationController) CreateAccommodationHandler(c *gin.Context) {
	var req request_models.CreateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := a.accommodationRepo.Create(c.Request.Context(), &db_models.Accommodation{
		Name:      req.Name,
		Location:  req.Location,
		PriceTier: req.PriceTier,
		Summary:   req.Summary,
		Amenities: req.Amenities,
		Status:    "active",
	})
	if err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": id.String()}, "Accommodation created")
}

func (a *AccommodationController) DeleteAccommodationHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid accommodation id")
		return
	}
	if err := a.accommodationRepo.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}
	utils.RespondSuccess(c, nil, "Accommodation deleted")
}
