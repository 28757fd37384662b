package response_models

type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

type DayPlan struct {
	Day                  int      `json:"day"`
	Title                string   `json:"title"`
	Destinations         []string `json:"destinations"`
	Accommodation        string   `json:"accommodation"`
	AccommodationDetails string   `json:"accommodation_details"`
	Activities           []string `json:"activities"`
	Meals                Meals    `json:"meals"`
	Description          string   `json:"description"`
	TravelTimes          []string `json:"travel_times"`
}

type Essentials struct {
	PackingList   []string `json:"packing_list"`
	TravelTips    []string `json:"travel_tips"`
	CulturalNotes []string `json:"cultural_notes"`
	EstimatedCost string   `json:"estimated_cost"`
}

// TripPlan is the finished itinerary document. It is a value handed to the
// caller; it holds no reference back to the conversation it came from.
type TripPlan struct {
	Title      string     `json:"title"`
	Duration   int        `json:"duration"`
	Summary    string     `json:"summary"`
	Itinerary  []DayPlan  `json:"itinerary"`
	Essentials Essentials `json:"essentials"`
}
