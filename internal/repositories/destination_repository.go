package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ceyloncircuit/internal/models/db_models"
)

type DestinationRepository interface {
	Create(ctx context.Context, destination *db_models.Destination) (uuid.UUID, error)
	Update(ctx context.Context, destination *db_models.Destination) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.Destination, error)
	List(ctx context.Context) ([]db_models.Destination, error)
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(ctx context.Context, destination *db_models.Destination) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(destination).Error; err != nil {
		return uuid.Nil, err
	}
	return destination.ID, nil
}

func (r *destinationRepository) Update(ctx context.Context, destination *db_models.Destination) error {
	result := r.db.WithContext(ctx).Save(destination)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *destinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Destination{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Read helpers return a default value and nil error when no rows match.

func (r *destinationRepository) GetByID(ctx context.Context, id string) (*db_models.Destination, error) {
	var destination db_models.Destination
	err := r.db.WithContext(ctx).First(&destination, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) List(ctx context.Context) ([]db_models.Destination, error) {
	var destinations []db_models.Destination
	err := r.db.WithContext(ctx).Order("name").Find(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}
