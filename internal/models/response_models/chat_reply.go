package response_models

import "ceyloncircuit/internal/models/request_models"

// ReplyKind discriminates what the orchestrator wants the client to render
// next. Branching on the kind replaces probing optional fields.
type ReplyKind string

const (
	ReplyText                ReplyKind = "text"
	ReplyDestinationPrompt   ReplyKind = "destination_prompt"
	ReplyAccommodationPrompt ReplyKind = "accommodation_prompt"
	ReplyTripPlan            ReplyKind = "trip_plan"
	ReplyRedirect            ReplyKind = "redirect"
)

// ChatEnvelope is the wire shape of every conversational endpoint.
type ChatEnvelope struct {
	Success  bool       `json:"success"`
	Response *ChatReply `json:"response"`
}

type ChatReply struct {
	Kind             ReplyKind                `json:"kind"`
	SessionID        string                   `json:"session_id"`
	Content          string                   `json:"content"`
	Suggestions      []string                 `json:"suggestions,omitempty"`
	GeneratePlan     bool                     `json:"generate_plan"`
	ShowDestinations bool                     `json:"show_destinations"`
	AskForDuration   bool                     `json:"ask_for_duration"`
	Day              int                      `json:"day,omitempty"`
	Destinations     []DestinationView        `json:"destinations,omitempty"`
	Accommodations   []AccommodationView      `json:"accommodations,omitempty"`
	TripData         *request_models.TripData `json:"trip_data,omitempty"`
	Plan             *TripPlan                `json:"plan,omitempty"`
}
