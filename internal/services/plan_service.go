package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"ceyloncircuit/internal/models/db_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/pkg/utils"
)

// PlanServiceInterface persists finished itineraries for signed-in
// travelers. Saved plans are snapshots; editing one later means planning
// a new trip.
type PlanServiceInterface interface {
	SavePlan(ctx context.Context, accountID uuid.UUID, plan response_models.TripPlan) (*response_models.SavedPlanResponse, error)
	GetPlan(ctx context.Context, accountID uuid.UUID, planID string) (*response_models.TripPlan, error)
	ListPlans(ctx context.Context, accountID uuid.UUID) ([]response_models.SavedPlanSummary, error)
}

type PlanService struct {
	planRepo repositories.TripPlanRepository
}

func NewPlanService(planRepo repositories.TripPlanRepository) PlanServiceInterface {
	return &PlanService{planRepo: planRepo}
}

func (s *PlanService) SavePlan(ctx context.Context, accountID uuid.UUID, plan response_models.TripPlan) (*response_models.SavedPlanResponse, error) {
	if plan.Duration <= 0 || len(plan.Itinerary) == 0 {
		return nil, utils.ErrInvalidInput
	}

	document, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	id, err := s.planRepo.Insert(ctx, &db_models.TripPlanRecord{
		AccountID: accountID,
		Title:     plan.Title,
		Duration:  plan.Duration,
		Document:  document,
	})
	if err != nil {
		log.Printf("Error saving trip plan: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return &response_models.SavedPlanResponse{PlanID: id.String()}, nil
}

func (s *PlanService) GetPlan(ctx context.Context, accountID uuid.UUID, planID string) (*response_models.TripPlan, error) {
	record, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		log.Printf("Error loading trip plan %s: %v", planID, err)
		return nil, utils.ErrDatabaseError
	}
	if record == nil || record.AccountID != accountID {
		return nil, utils.ErrPlanNotFound
	}

	var plan response_models.TripPlan
	if err := json.Unmarshal(record.Document, &plan); err != nil {
		log.Printf("Error decoding stored plan %s: %v", planID, err)
		return nil, utils.ErrPlanNotFound
	}
	return &plan, nil
}

func (s *PlanService) ListPlans(ctx context.Context, accountID uuid.UUID) ([]response_models.SavedPlanSummary, error) {
	records, err := s.planRepo.ListByAccount(ctx, accountID)
	if err != nil {
		log.Printf("Error listing trip plans: %v", err)
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.SavedPlanSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, response_models.SavedPlanSummary{
			PlanID:    record.ID.String(),
			Title:     record.Title,
			Duration:  record.Duration,
			CreatedAt: record.CreatedAt,
		})
	}
	return summaries, nil
}
