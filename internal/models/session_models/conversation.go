package session_models

import (
	"strings"
	"time"
)

// Stage is the phase the planning conversation is currently in. It decides
// which extraction and orchestration rules apply to the next message.
type Stage string

const (
	StageGreeting       Stage = "greeting"
	StagePreviousVisits Stage = "collecting_previous_visits"
	StageDuration       Stage = "collecting_duration"
	StageDayDetails     Stage = "collecting_day_details"
	StageReadyForPlan   Stage = "ready_for_plan"
	StageCompleted      Stage = "completed"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// DestinationRef is an immutable snapshot of a catalog destination taken at
// selection time, not a live reference into the catalog.
type DestinationRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	District string `json:"district"`
	Province string `json:"province"`
}

type AccommodationRef struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	PriceTier string   `json:"price_tier"`
	Amenities []string `json:"amenities"`
}

// DaySelection holds what the traveler has picked for one day slot.
// A day is complete once it has at least one destination and a stay.
type DaySelection struct {
	Destinations  []DestinationRef  `json:"destinations"`
	Accommodation *AccommodationRef `json:"accommodation"`
}

// ConversationState is the per-session record the whole planner revolves
// around. Message history is append-only; day plans are only ever mutated
// through the selection helpers below so the day-bound invariant holds.
type ConversationState struct {
	SessionID           string                `json:"session_id"`
	Stage               Stage                 `json:"stage"`
	IsReturningTraveler *bool                 `json:"is_returning_traveler"`
	PreviouslyVisited   []string              `json:"previously_visited"`
	Duration            int                   `json:"duration"`
	CurrentDay          int                   `json:"current_day"`
	DayPlans            map[int]*DaySelection `json:"day_plans"`
	Interests           []string              `json:"interests"`
	Budget              string                `json:"budget"`
	Pace                string                `json:"pace"`
	MessageHistory      []Message             `json:"message_history"`
	LastUpdated         time.Time             `json:"last_updated"`
}

func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID:   sessionID,
		Stage:       StageGreeting,
		DayPlans:    make(map[int]*DaySelection),
		LastUpdated: time.Now(),
	}
}

func (s *ConversationState) AppendMessage(role MessageRole, content string) {
	s.MessageHistory = append(s.MessageHistory, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.LastUpdated = time.Now()
}

// SetDuration fixes the number of day slots and resets any selections made
// under a previous duration so DayPlans never holds out-of-range keys.
func (s *ConversationState) SetDuration(days int) {
	if days < 1 {
		return
	}
	s.Duration = days
	s.CurrentDay = 1
	s.DayPlans = make(map[int]*DaySelection)
}

func (s *ConversationState) day(day int) *DaySelection {
	if sel, ok := s.DayPlans[day]; ok {
		return sel
	}
	sel := &DaySelection{}
	s.DayPlans[day] = sel
	return sel
}

func (s *ConversationState) validDay(day int) bool {
	return s.Duration > 0 && day >= 1 && day <= s.Duration
}

// ToggleDestination adds the destination to the day, or removes it when it
// is already selected. Returns whether the destination is selected after
// the call, and false as the second value when the day is out of range.
func (s *ConversationState) ToggleDestination(day int, ref DestinationRef) (selected bool, ok bool) {
	if !s.validDay(day) {
		return false, false
	}
	sel := s.day(day)
	for i, existing := range sel.Destinations {
		if existing.ID == ref.ID {
			sel.Destinations = append(sel.Destinations[:i], sel.Destinations[i+1:]...)
			s.LastUpdated = time.Now()
			return false, true
		}
	}
	sel.Destinations = append(sel.Destinations, ref)
	s.LastUpdated = time.Now()
	return true, true
}

// SetAccommodation is last-write-wins; there is no toggle for stays.
func (s *ConversationState) SetAccommodation(day int, ref AccommodationRef) bool {
	if !s.validDay(day) {
		return false
	}
	s.day(day).Accommodation = &ref
	s.LastUpdated = time.Now()
	return true
}

func (s *ConversationState) SetCurrentDay(day int) bool {
	if !s.validDay(day) {
		return false
	}
	s.CurrentDay = day
	s.LastUpdated = time.Now()
	return true
}

func (s *ConversationState) AddInterests(interests []string) {
	for _, interest := range interests {
		if !containsFold(s.Interests, interest) {
			s.Interests = append(s.Interests, interest)
		}
	}
	if len(interests) > 0 {
		s.LastUpdated = time.Now()
	}
}

func (s *ConversationState) AddVisitedPlace(place string) {
	if place == "" || containsFold(s.PreviouslyVisited, place) {
		return
	}
	s.PreviouslyVisited = append(s.PreviouslyVisited, place)
	s.LastUpdated = time.Now()
}

func (s *ConversationState) DestinationsFor(day int) []DestinationRef {
	if sel, ok := s.DayPlans[day]; ok {
		return sel.Destinations
	}
	return nil
}

func (s *ConversationState) AccommodationFor(day int) *AccommodationRef {
	if sel, ok := s.DayPlans[day]; ok {
		return sel.Accommodation
	}
	return nil
}

func (s *ConversationState) IsDayComplete(day int) bool {
	sel, ok := s.DayPlans[day]
	return ok && len(sel.Destinations) > 0 && sel.Accommodation != nil
}

func (s *ConversationState) HasAnyDestinations() bool {
	for _, sel := range s.DayPlans {
		if len(sel.Destinations) > 0 {
			return true
		}
	}
	return false
}

// FirstDayWithoutDestinations returns the lowest day slot with no selected
// destination, or 0 when every day has at least one.
func (s *ConversationState) FirstDayWithoutDestinations() int {
	for day := 1; day <= s.Duration; day++ {
		if len(s.DestinationsFor(day)) == 0 {
			return day
		}
	}
	return 0
}

// FirstDayWithoutAccommodation returns the lowest day slot that has
// destinations but no stay yet, or 0 when none qualifies.
func (s *ConversationState) FirstDayWithoutAccommodation() int {
	for day := 1; day <= s.Duration; day++ {
		if len(s.DestinationsFor(day)) > 0 && s.AccommodationFor(day) == nil {
			return day
		}
	}
	return 0
}

// AllSelectedDestinations flattens every selection in day order. Used by
// the assembler's round-robin fallback.
func (s *ConversationState) AllSelectedDestinations() []DestinationRef {
	var all []DestinationRef
	for day := 1; day <= s.Duration; day++ {
		all = append(all, s.DestinationsFor(day)...)
	}
	return all
}

func containsFold(list []string, candidate string) bool {
	for _, item := range list {
		if strings.EqualFold(item, candidate) {
			return true
		}
	}
	return false
}
