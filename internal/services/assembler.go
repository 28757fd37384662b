package services

import (
	"fmt"
	"strings"

	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/models/session_models"
)

// Activities per canonical destination. Destinations outside this table
// get the generic fallback list.
var activityTable = map[string][]string{
	"Sigiriya Rock Fortress": {
		"Climb the Lion Rock at sunrise",
		"Walk the royal water gardens",
		"See the mirror wall frescoes",
	},
	"Temple of the Tooth": {
		"Attend the evening puja ceremony",
		"Tour the royal palace complex",
		"Stroll around Kandy Lake",
	},
	"Galle Fort": {
		"Walk the fort ramparts at sunset",
		"Browse the boutique lanes",
		"Visit the Maritime Museum",
	},
	"Ella": {
		"Hike Little Adam's Peak",
		"Cross the Nine Arches Bridge",
		"Tour a working tea factory",
	},
	"Yala National Park": {
		"Morning leopard safari",
		"Birdwatching at the lagoons",
		"Evening elephant drive",
	},
	"Mirissa Beach": {
		"Whale watching boat trip",
		"Surf lesson at the beach break",
		"Sunset at Coconut Tree Hill",
	},
}

var genericActivities = []string{
	"Guided local sightseeing",
	"Explore the surrounding area",
	"Sample Sri Lankan street food",
}

var travelInfoTable = map[string]string{
	"Sigiriya Rock Fortress": "Approx. 4h drive from Colombo via Dambulla",
	"Temple of the Tooth":    "Approx. 3h drive from Colombo, scenic rail option",
	"Galle Fort":             "Approx. 2h via the Southern Expressway",
	"Ella":                   "Famous hill-country train ride from Kandy, 6-7h",
	"Yala National Park":     "Approx. 5h drive from Colombo along the south coast",
	"Mirissa Beach":          "Approx. 2.5h via the Southern Expressway",
}

var planEssentials = response_models.Essentials{
	PackingList: []string{
		"Light cotton clothing",
		"Modest wear for temple visits",
		"Sunscreen and insect repellent",
		"Comfortable walking shoes",
		"Rain jacket (hill country showers)",
	},
	TravelTips: []string{
		"Carry small rupee notes for tuk-tuks and entry fees",
		"Book hill-country trains a few days ahead",
		"Drink bottled or filtered water",
	},
	CulturalNotes: []string{
		"Remove shoes and cover shoulders at temples",
		"Ask before photographing people or monks",
		"A small bow with 'Ayubowan' is a warm greeting",
	},
	EstimatedCost: "US$60-120 per person per day depending on accommodation tier",
}

// AssembleTripPlan folds the accumulated selections into the final
// itinerary document. Pure and deterministic: the same state snapshot
// always produces an identical plan, which is what the tests rely on.
func AssembleTripPlan(state *session_models.ConversationState) response_models.TripPlan {
	allSelected := state.AllSelectedDestinations()

	itinerary := make([]response_models.DayPlan, 0, state.Duration)
	for day := 1; day <= state.Duration; day++ {
		itinerary = append(itinerary, assembleDay(state, day, allSelected))
	}

	return response_models.TripPlan{
		Title:      fmt.Sprintf("%d-Day Sri Lanka Journey", state.Duration),
		Duration:   state.Duration,
		Summary:    planSummary(state, allSelected),
		Itinerary:  itinerary,
		Essentials: planEssentials,
	}
}

func assembleDay(state *session_models.ConversationState, day int, allSelected []session_models.DestinationRef) response_models.DayPlan {
	destinations := state.DestinationsFor(day)
	if len(destinations) == 0 && len(allSelected) > 0 {
		// Best-effort round robin over everything the traveler picked.
		// A deliberate degrade-gracefully policy, not an error.
		destinations = []session_models.DestinationRef{allSelected[(day-1)%len(allSelected)]}
	}

	names := make([]string, 0, len(destinations))
	var activities []string
	var travelTimes []string
	for _, ref := range destinations {
		names = append(names, ref.Name)
		if list, ok := activityTable[ref.Name]; ok {
			activities = append(activities, list...)
		} else {
			activities = append(activities, genericActivities...)
		}
		if info, ok := travelInfoTable[ref.Name]; ok {
			travelTimes = append(travelTimes, info)
		} else {
			travelTimes = append(travelTimes, fmt.Sprintf("Travel to %s", ref.Name))
		}
	}

	accommodationName, accommodationDetails := dayAccommodation(state, day, names)

	return response_models.DayPlan{
		Day:                  day,
		Title:                dayTitle(day, names),
		Destinations:         names,
		Accommodation:        accommodationName,
		AccommodationDetails: accommodationDetails,
		Activities:           activities,
		Meals: response_models.Meals{
			Breakfast: fmt.Sprintf("Breakfast at %s", accommodationName),
			Lunch:     dayLunch(names),
			Dinner:    fmt.Sprintf("Dinner at %s", accommodationName),
		},
		Description: dayDescription(day, names),
		TravelTimes: travelTimes,
	}
}

func dayAccommodation(state *session_models.ConversationState, day int, names []string) (string, string) {
	if ref := state.AccommodationFor(day); ref != nil {
		details := ref.Location
		if len(ref.Amenities) > 0 {
			details = fmt.Sprintf("%s · %s", ref.Location, strings.Join(ref.Amenities, ", "))
		}
		return ref.Name, details
	}
	if len(names) > 0 {
		return fmt.Sprintf("Hotel near %s", names[0]), "To be confirmed"
	}
	return "Local guesthouse", "To be confirmed"
}

func dayTitle(day int, names []string) string {
	if len(names) == 0 {
		return fmt.Sprintf("Day %d: Free Exploration", day)
	}
	return fmt.Sprintf("Day %d: %s", day, strings.Join(names, " & "))
}

func dayLunch(names []string) string {
	if len(names) == 0 {
		return "Lunch at a local restaurant"
	}
	return fmt.Sprintf("Lunch near %s", names[0])
}

func dayDescription(day int, names []string) string {
	if len(names) == 0 {
		return fmt.Sprintf("Day %d is left open to explore at your own pace.", day)
	}
	return fmt.Sprintf("Day %d takes you to %s.", day, strings.Join(names, " and "))
}

func planSummary(state *session_models.ConversationState, allSelected []session_models.DestinationRef) string {
	seen := make(map[string]bool)
	var names []string
	for _, ref := range allSelected {
		if !seen[ref.Name] {
			seen[ref.Name] = true
			names = append(names, ref.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("A %d-day journey across Sri Lanka.", state.Duration)
	}
	return fmt.Sprintf("A %d-day journey across Sri Lanka covering %s.", state.Duration, strings.Join(names, ", "))
}
