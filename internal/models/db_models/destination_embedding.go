package db_models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// DestinationEmbedding backs the "also consider" suggestions. Vectors come
// from the hash embedder, so the dimension is small and no embedding API
// call is needed to seed the table.
type DestinationEmbedding struct {
	DestinationID string `gorm:"primaryKey;column:destination_id"`
	Name          string
	Category      string
	Embedding     pgvector.Vector `gorm:"type:vector(256)"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
}
