package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/services"
	"ceyloncircuit/pkg/utils"
)

// PlanController handles saved itineraries. Every route sits behind the
// JWT middleware, so a missing user_id means a broken setup rather than
// an anonymous caller.
type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

func accountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid account")
		return uuid.Nil, false
	}
	return id, true
}

func (p *PlanController) SavePlanHandler(c *gin.Context) {
	account, ok := accountID(c)
	if !ok {
		return
	}

	var plan response_models.TripPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := p.planService.SavePlan(c.Request.Context(), account, plan)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Trip plan saved")
}

func (p *PlanController) GetPlanHandler(c *gin.Context) {
	account, ok := accountID(c)
	if !ok {
		return
	}

	plan, err := p.planService.GetPlan(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Trip plan loaded")
}

func (p *PlanController) ListPlansHandler(c *gin.Context) {
	account, ok := accountID(c)
	if !ok {
		return
	}

	plans, err := p.planService.ListPlans(c.Request.Context(), account)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Trip plans loaded")
}
