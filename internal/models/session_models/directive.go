package session_models

// LlmDirective is the structured form of a completion response. The raw
// text is parsed exactly once, right after the completion call returns;
// downstream code never re-scans prose for control markers.
type LlmDirective struct {
	Content          string   `json:"content"`
	Suggestions      []string `json:"suggestions"`
	GeneratePlan     bool     `json:"generate_plan"`
	ShowDestinations bool     `json:"show_destinations"`
	AskForDuration   bool     `json:"ask_for_duration"`
}
