package response_models

type DestinationView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	District string `json:"district"`
	Province string `json:"province"`
	Summary  string `json:"summary"`
}

type AccommodationView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	PriceTier string   `json:"price_tier"`
	Amenities []string `json:"amenities"`
	Summary   string   `json:"summary"`
}
