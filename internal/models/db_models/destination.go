package db_models

import "github.com/lib/pq"

type Destination struct {
	BaseModel
	Name       string `gorm:"uniqueIndex"`
	Category   string
	District   string
	Province   string
	Summary    string
	Highlights pq.StringArray `gorm:"type:text[]"`
	Status     string
}
