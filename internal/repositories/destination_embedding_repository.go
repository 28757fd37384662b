package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"ceyloncircuit/internal/models/db_models"
)

type DestinationEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding db_models.DestinationEmbedding) error
	NearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DestinationEmbedding, error)
}

type destinationEmbeddingRepository struct {
	db *gorm.DB
}

func NewDestinationEmbeddingRepository(db *gorm.DB) DestinationEmbeddingRepository {
	return &destinationEmbeddingRepository{db: db}
}

func (r *destinationEmbeddingRepository) Upsert(ctx context.Context, embedding db_models.DestinationEmbedding) error {
	return r.db.WithContext(ctx).Save(&embedding).Error
}

func (r *destinationEmbeddingRepository) NearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DestinationEmbedding, error) {
	var results []db_models.DestinationEmbedding

	query := `
        SELECT *
        FROM destination_embeddings
        ORDER BY embedding <=> $1
        LIMIT $2
    `
	err := r.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
