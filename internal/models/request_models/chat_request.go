package request_models

// ContextMessage mirrors one entry of the client-held conversation
// transcript. It only seeds history when the server has no session yet.
type ContextMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TripData struct {
	Duration  int      `json:"duration,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Budget    string   `json:"budget,omitempty"`
	Pace      string   `json:"pace,omitempty"`
}

type ChatRequest struct {
	Message   string           `json:"message"`
	SessionID string           `json:"session_id"`
	Context   []ContextMessage `json:"context,omitempty"`
	TripData  *TripData        `json:"trip_data,omitempty"`
}

type SelectDestinationRequest struct {
	SessionID     string `json:"session_id"`
	DestinationID string `json:"destination_id"`
}

type SelectAccommodationRequest struct {
	SessionID       string `json:"session_id"`
	AccommodationID string `json:"accommodation_id"`
}

type ContinueDayRequest struct {
	SessionID string `json:"session_id"`
	Day       int    `json:"day"`
}

type GeneratePlanRequest struct {
	SessionID string `json:"session_id"`
}

type ResetRequest struct {
	SessionID string `json:"session_id,omitempty"`
}
