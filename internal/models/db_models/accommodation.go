package db_models

import "github.com/lib/pq"

type Accommodation struct {
	BaseModel
	Name      string `gorm:"uniqueIndex"`
	Location  string
	PriceTier string
	Summary   string
	Amenities pq.StringArray `gorm:"type:text[]"`
	Status    string
}
