package db_models

import "github.com/google/uuid"

// TripPlanRecord stores a finished plan as the JSON document the assembler
// produced. The document is opaque to the database; the conversation state
// it came from is not referenced.
type TripPlanRecord struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Duration  int
	Document  []byte `gorm:"type:jsonb"`
}
