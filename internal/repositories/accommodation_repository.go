package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ceyloncircuit/internal/models/db_models"
)

type AccommodationRepository interface {
	Create(ctx context.Context, accommodation *db_models.Accommodation) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.Accommodation, error)
	List(ctx context.Context) ([]db_models.Accommodation, error)
}

type accommodationRepository struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &accommodationRepository{db: db}
}

func (r *accommodationRepository) Create(ctx context.Context, accommodation *db_models.Accommodation) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(accommodation).Error; err != nil {
		return uuid.Nil, err
	}
	return accommodation.ID, nil
}

func (r *accommodationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Accommodation{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *accommodationRepository) GetByID(ctx context.Context, id string) (*db_models.Accommodation, error) {
	var accommodation db_models.Accommodation
	err := r.db.WithContext(ctx).First(&accommodation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &accommodation, nil
}

func (r *accommodationRepository) List(ctx context.Context) ([]db_models.Accommodation, error) {
	var accommodations []db_models.Accommodation
	err := r.db.WithContext(ctx).Order("name").Find(&accommodations).Error
	if err != nil {
		return nil, err
	}
	return accommodations, nil
}
