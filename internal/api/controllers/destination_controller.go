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

type DestinationController struct {
	catalogService  services.CatalogServiceInterface
	destinationRepo repositories.DestinationRepository
	embeddingRepo   repositories.DestinationEmbeddingRepository
}

func NewDestinationController(
	catalogService services.CatalogServiceInterface,
	destinationRepo repositories.DestinationRepository,
	embeddingRepo repositories.DestinationEmbeddingRepository,
) *DestinationController {
	return &DestinationController{
		catalogService:  catalogService,
		destinationRepo: destinationRepo,
		embeddingRepo:   embeddingRepo,
	}
}

func (d *DestinationController) ListDestinationsHandler(c *gin.Context) {
	utils.RespondSuccess(c, d.catalogService.Destinations(c.Request.Context()), "Destinations loaded")
}

func (d *DestinationController) CreateDestinationHandler(c *gin.Context) {
	var req request_models.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	row := &db_models.Destination{
		Name:       req.Name,
		Category:   req.Category,
		District:   req.District,
		Province:   req.Province,
		Summary:    req.Summary,
		Highlights: req.Highlights,
		Status:     "active",
	}
	id, err := d.destinationRepo.Create(c.Request.Context(), row)
	if err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}

	// Keep the similarity index in step with the catalog. A failed upsert
	// only degrades suggestions, so it does not fail the request.
	if d.embeddingRepo != nil {
		_ = d.embeddingRepo.Upsert(c.Request.Context(), db_models.DestinationEmbedding{
			DestinationID: id.String(),
			Name:          req.Name,
			Category:      req.Category,
			Embedding:     utils.EmbedText(req.Name + " " + req.Category),
		})
	}

	utils.RespondSuccess(c, gin.H{"id": id.String()}, "Destination created")
}

func (d *DestinationController) UpdateDestinationHandler(c *gin.Context) {
	var req request_models.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	row, err := d.destinationRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}
	if row == nil {
		utils.HandleServiceError(c, utils.ErrDestinationNotFound)
		return
	}

	row.Name = req.Name
	row.Category = req.Category
	row.District = req.District
	row.Province = req.Province
	row.Summary = req.Summary
	row.Highlights = req.Highlights
	if err := d.destinationRepo.Update(c.Request.Context(), row); err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}

	if d.embeddingRepo != nil {
		_ = d.embeddingRepo.Upsert(c.Request.Context(), db_models.DestinationEmbedding{
			DestinationID: row.ID.String(),
			Name:          req.Name,
			Category:      req.Category,
			Embedding:     utils.EmbedText(req.Name + " " + req.Category),
		})
	}

	utils.RespondSuccess(c, gin.H{"id": row.ID.String()}, "Destination updated")
}

func (d *DestinationController) DeleteDestinationHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid destination id")
		return
	}
	if err := d.destinationRepo.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}
	utils.RespondSuccess(c, nil, "Destination deleted")
}
