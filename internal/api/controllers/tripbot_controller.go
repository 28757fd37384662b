package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ceyloncircuit/internal/models/request_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/services"
	"ceyloncircuit/pkg/utils"
)

type TripBotController struct {
	tripBotService services.TripBotServiceInterface
}

func NewTripBotController(tripBotService services.TripBotServiceInterface) *TripBotController {
	return &TripBotController{
		tripBotService: tripBotService,
	}
}

func respondChat(c *gin.Context, reply *response_models.ChatReply) {
	c.JSON(http.StatusOK, response_models.ChatEnvelope{Success: true, Response: reply})
}

func (t *TripBotController) ChatHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := t.tripBotService.HandleMessage(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	respondChat(c, reply)
}

func (t *TripBotController) SelectDestinationHandler(c *gin.Context) {
	var req request_models.SelectDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" || req.DestinationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id and destination_id are required")
		return
	}

	reply, err := t.tripBotService.SelectDestination(c.Request.Context(), req.SessionID, req.DestinationID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	respondChat(c, reply)
}

func (t *TripBotController) SelectAccommodationHandler(c *gin.Context) {
	var req request_models.SelectAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" || req.AccommodationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id and accommodation_id are required")
		return
	}

	reply, err := t.tripBotService.SelectAccommodation(c.Request.Context(), req.SessionID, req.AccommodationID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	respondChat(c, reply)
}

func (t *TripBotController) ContinueDayHandler(c *gin.Context) {
	var req request_models.ContinueDayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	reply, err := t.tripBotService.ContinueToDay(c.Request.Context(), req.SessionID, req.Day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	respondChat(c, reply)
}

func (t *TripBotController) GeneratePlanHandler(c *gin.Context) {
	var req request_models.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	reply, err := t.tripBotService.GenerateTripPlan(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	respondChat(c, reply)
}

func (t *TripBotController) ResetHandler(c *gin.Context) {
	var req request_models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := t.tripBotService.Reset(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	respondChat(c, reply)
}

func (t *TripBotController) SessionHandler(c *gin.Context) {
	state, err := t.tripBotService.Session(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, state, "Session loaded")
}
