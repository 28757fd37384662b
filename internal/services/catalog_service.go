package services

import (
	"context"
	"log"
	"strings"

	"ceyloncircuit/internal/models/db_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/repositories"
)

// CatalogServiceInterface serves the authoritative destination and
// accommodation lists. A store failure degrades to the built-in fallback
// catalog; the conversation never hard-fails on a catalog read.
type CatalogServiceInterface interface {
	Destinations(ctx context.Context) []response_models.DestinationView
	Accommodations(ctx context.Context) []response_models.AccommodationView
	DestinationByID(ctx context.Context, id string) (response_models.DestinationView, bool)
	AccommodationByID(ctx context.Context, id string) (response_models.AccommodationView, bool)
}

type CatalogService struct {
	destinationRepo   repositories.DestinationRepository
	accommodationRepo repositories.AccommodationRepository
}

func NewCatalogService(
	destinationRepo repositories.DestinationRepository,
	accommodationRepo repositories.AccommodationRepository,
) CatalogServiceInterface {
	return &CatalogService{
		destinationRepo:   destinationRepo,
		accommodationRepo: accommodationRepo,
	}
}

func (c *CatalogService) Destinations(ctx context.Context) []response_models.DestinationView {
	if c.destinationRepo == nil {
		return FallbackDestinations()
	}
	rows, err := c.destinationRepo.List(ctx)
	if err != nil || len(rows) == 0 {
		if err != nil {
			log.Printf("Destination catalog unavailable, serving fallback: %v", err)
		}
		return FallbackDestinations()
	}

	views := make([]response_models.DestinationView, 0, len(rows))
	for _, row := range rows {
		views = append(views, destinationView(row))
	}
	return views
}

func (c *CatalogService) Accommodations(ctx context.Context) []response_models.AccommodationView {
	if c.accommodationRepo == nil {
		return FallbackAccommodations()
	}
	rows, err := c.accommodationRepo.List(ctx)
	if err != nil || len(rows) == 0 {
		if err != nil {
			log.Printf("Accommodation catalog unavailable, serving fallback: %v", err)
		}
		return FallbackAccommodations()
	}

	views := make([]response_models.AccommodationView, 0, len(rows))
	for _, row := range rows {
		views = append(views, accommodationView(row))
	}
	return views
}

// ByID lookups hit the store directly when a repository is wired; the
// list scan remains as the fallback so slug IDs from the built-in catalog
// still resolve.

func (c *CatalogService) DestinationByID(ctx context.Context, id string) (response_models.DestinationView, bool) {
	if c.destinationRepo != nil {
		if row, err := c.destinationRepo.GetByID(ctx, id); err == nil && row != nil {
			return destinationView(*row), true
		}
	}
	for _, view := range c.Destinations(ctx) {
		if view.ID == id {
			return view, true
		}
	}
	return response_models.DestinationView{}, false
}

func (c *CatalogService) AccommodationByID(ctx context.Context, id string) (response_models.AccommodationView, bool) {
	if c.accommodationRepo != nil {
		if row, err := c.accommodationRepo.GetByID(ctx, id); err == nil && row != nil {
			return accommodationView(*row), true
		}
	}
	for _, view := range c.Accommodations(ctx) {
		if view.ID == id {
			return view, true
		}
	}
	return response_models.AccommodationView{}, false
}

func destinationView(row db_models.Destination) response_models.DestinationView {
	return response_models.DestinationView{
		ID:       row.ID.String(),
		Name:     row.Name,
		Category: row.Category,
		District: row.District,
		Province: row.Province,
		Summary:  row.Summary,
	}
}

func accommodationView(row db_models.Accommodation) response_models.AccommodationView {
	return response_models.AccommodationView{
		ID:        row.ID.String(),
		Name:      row.Name,
		Location:  row.Location,
		PriceTier: row.PriceTier,
		Amenities: row.Amenities,
		Summary:   row.Summary,
	}
}

// FallbackDestinations is the built-in catalog used when the database is
// unreachable or empty. IDs are stable slugs so selections made against
// the fallback survive a catalog refresh.
func FallbackDestinations() []response_models.DestinationView {
	return []response_models.DestinationView{
		{ID: "sigiriya-rock-fortress", Name: "Sigiriya Rock Fortress", Category: "Cultural", District: "Matale", Province: "Central", Summary: "Ancient rock citadel with frescoes and water gardens"},
		{ID: "temple-of-the-tooth", Name: "Temple of the Tooth", Category: "Cultural", District: "Kandy", Province: "Central", Summary: "Sacred Buddhist temple in the heart of Kandy"},
		{ID: "galle-fort", Name: "Galle Fort", Category: "Historical", District: "Galle", Province: "Southern", Summary: "Dutch colonial fort town on the south coast"},
		{ID: "ella", Name: "Ella", Category: "Nature", District: "Badulla", Province: "Uva", Summary: "Hill-country village with tea estates and hiking trails"},
		{ID: "yala-national-park", Name: "Yala National Park", Category: "Wildlife", District: "Hambantota", Province: "Southern", Summary: "Leopard and elephant safaris in dry-zone scrub jungle"},
		{ID: "mirissa-beach", Name: "Mirissa Beach", Category: "Beach", District: "Matara", Province: "Southern", Summary: "Crescent beach known for surfing and whale watching"},
	}
}

func FallbackAccommodations() []response_models.AccommodationView {
	return []response_models.AccommodationView{
		{ID: "sigiriya-village-hotel", Name: "Sigiriya Village Hotel", Location: "Sigiriya", PriceTier: "moderate", Amenities: []string{"pool", "restaurant", "garden"}, Summary: "Eco-themed cottages with rock views"},
		{ID: "kandy-heritage-villa", Name: "Kandy Heritage Villa", Location: "Kandy", PriceTier: "moderate", Amenities: []string{"breakfast", "lake view"}, Summary: "Colonial villa near the Temple of the Tooth"},
		{ID: "galle-fort-boutique", Name: "Galle Fort Boutique", Location: "Galle", PriceTier: "luxury", Amenities: []string{"rooftop", "restaurant", "spa"}, Summary: "Boutique stay inside the fort walls"},
		{ID: "ella-mountain-lodge", Name: "Ella Mountain Lodge", Location: "Ella", PriceTier: "budget", Amenities: []string{"mountain view", "breakfast"}, Summary: "Simple lodge above the tea fields"},
		{ID: "yala-safari-camp", Name: "Yala Safari Camp", Location: "Yala", PriceTier: "luxury", Amenities: []string{"safari jeep", "full board"}, Summary: "Tented camp on the park border"},
		{ID: "mirissa-beach-resort", Name: "Mirissa Beach Resort", Location: "Mirissa", PriceTier: "moderate", Amenities: []string{"beachfront", "pool", "bar"}, Summary: "Resort steps from the sand"},
		{ID: "colombo-city-hotel", Name: "Colombo City Hotel", Location: "Colombo", PriceTier: "moderate", Amenities: []string{"wifi", "airport shuttle"}, Summary: "Convenient base for arrival and departure days"},
	}
}

// CatalogNames renders the destination list for the system prompt.
func CatalogNames(destinations []response_models.DestinationView) string {
	names := make([]string, 0, len(destinations))
	for _, d := range destinations {
		names = append(names, d.Name)
	}
	return strings.Join(names, ", ")
}
