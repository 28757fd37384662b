package request_models

type CreateDestinationRequest struct {
	Name       string   `json:"name" binding:"required"`
	Category   string   `json:"category"`
	District   string   `json:"district"`
	Province   string   `json:"province"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

type CreateAccommodationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Location  string   `json:"location"`
	PriceTier string   `json:"price_tier"`
	Summary   string   `json:"summary"`
	Amenities []string `json:"amenities"`
}
