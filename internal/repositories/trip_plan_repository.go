package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ceyloncircuit/internal/models/db_models"
)

type TripPlanRepository interface {
	Insert(ctx context.Context, record *db_models.TripPlanRecord) (uuid.UUID, error)
	GetByID(ctx context.Context, id string) (*db_models.TripPlanRecord, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.TripPlanRecord, error)
}

type tripPlanRepository struct {
	db *gorm.DB
}

func NewTripPlanRepository(db *gorm.DB) TripPlanRepository {
	return &tripPlanRepository{db: db}
}

func (r *tripPlanRepository) Insert(ctx context.Context, record *db_models.TripPlanRecord) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

func (r *tripPlanRepository) GetByID(ctx context.Context, id string) (*db_models.TripPlanRecord, error) {
	var record db_models.TripPlanRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *tripPlanRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.TripPlanRecord, error) {
	var records []db_models.TripPlanRecord
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
