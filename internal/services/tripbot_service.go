package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ceyloncircuit/internal/models/request_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/models/session_models"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/pkg/memcache"
	"ceyloncircuit/pkg/utils"
)

// TripBotServiceInterface is the one authoritative orchestrator for the
// planning conversation. Day plans change only through the explicit
// selection operations here; the completion model may suggest that a step
// should happen, but it never picks catalog items on the traveler's
// behalf.
type TripBotServiceInterface interface {
	HandleMessage(ctx context.Context, req request_models.ChatRequest) (*response_models.ChatReply, error)
	SelectDestination(ctx context.Context, sessionID, destinationID string) (*response_models.ChatReply, error)
	SelectAccommodation(ctx context.Context, sessionID, accommodationID string) (*response_models.ChatReply, error)
	ContinueToDay(ctx context.Context, sessionID string, day int) (*response_models.ChatReply, error)
	GenerateTripPlan(ctx context.Context, sessionID string) (*response_models.ChatReply, error)
	Reset(ctx context.Context, sessionID string) (*response_models.ChatReply, error)
	Session(sessionID string) (*session_models.ConversationState, error)
}

const sessionLockStripes = 64

type TripBotService struct {
	store       memcache.SessionStore
	catalog     CatalogServiceInterface
	completions utils.CompletionClientInterface
	embeddings  repositories.DestinationEmbeddingRepository

	sessionLocks [sessionLockStripes]sync.Mutex
}

func NewTripBotService(
	store memcache.SessionStore,
	catalog CatalogServiceInterface,
	completions utils.CompletionClientInterface,
	embeddings repositories.DestinationEmbeddingRepository,
) TripBotServiceInterface {
	return &TripBotService{
		store:       store,
		catalog:     catalog,
		completions: completions,
		embeddings:  embeddings,
	}
}

// lockSession serializes turns per session so a double-clicked send
// becomes two ordered read-modify-write cycles instead of a lost toggle.
// The lock table is striped rather than keyed per ID, so it stays bounded
// no matter how many sessions come and go; a stripe collision just
// serializes two unrelated sessions for one turn.
func (s *TripBotService) lockSession(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	lock := &s.sessionLocks[h.Sum32()%sessionLockStripes]

	lock.Lock()
	return lock.Unlock
}

var durationSuggestions = []string{"2 days", "3 days", "5 days", "7 days"}

var interestSuggestions = []string{"Beaches", "Wildlife", "Culture & history", "Adventure", "A mix of everything"}

const greetingContent = "Ayubowan! I'm TripBot, your Ceylon Circuit travel planner. Have you visited Sri Lanka before?"

func (s *TripBotService) HandleMessage(ctx context.Context, req request_models.ChatRequest) (*response_models.ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" || req.SessionID == "" {
		return nil, utils.ErrInvalidInput
	}

	unlock := s.lockSession(req.SessionID)
	defer unlock()

	state := s.getOrCreate(req.SessionID, req.Context)
	state.AppendMessage(session_models.RoleUser, req.Message)
	s.seedTripData(state, req.TripData)

	var reply *response_models.ChatReply
	switch {
	case wantsReset(req.Message):
		return s.resetLocked(state)
	case IsOffTopic(req.Message):
		reply = offTopicReply()
	default:
		switch state.Stage {
		case session_models.StageGreeting:
			reply = s.handleGreeting(state, req.Message)
		case session_models.StagePreviousVisits:
			reply = s.handlePreviousVisits(ctx, state, req.Message)
		case session_models.StageDuration:
			reply = s.handleDuration(ctx, state, req.Message)
		case session_models.StageDayDetails:
			reply = s.handleDayDetails(ctx, state, req.Message)
		case session_models.StageReadyForPlan:
			reply = s.handleReadyForPlan(ctx, state, req.Message)
		default:
			reply = &response_models.ChatReply{
				Kind:        response_models.ReplyText,
				Content:     "Your trip plan is ready! Say \"start over\" whenever you want to plan another journey.",
				Suggestions: []string{"Start over"},
			}
		}
	}

	s.finishTurn(state, reply)
	return reply, nil
}

func (s *TripBotService) getOrCreate(sessionID string, seed []request_models.ContextMessage) *session_models.ConversationState {
	if state, ok := s.store.Get(sessionID); ok {
		return state
	}

	state := session_models.NewConversationState(sessionID)
	// A fresh server-side session may still have a client-held
	// transcript, e.g. after a restart. Seed history from it so the
	// completion model keeps its context.
	for _, msg := range seed {
		role := session_models.RoleUser
		if msg.Role == "assistant" {
			role = session_models.RoleAssistant
		}
		state.AppendMessage(role, msg.Content)
	}
	s.store.Create(state)
	return state
}

// seedTripData applies client-supplied preferences without ever
// overwriting something the conversation already established.
func (s *TripBotService) seedTripData(state *session_models.ConversationState, data *request_models.TripData) {
	if data == nil {
		return
	}
	if state.Duration == 0 && data.Duration > 0 {
		state.SetDuration(data.Duration)
		if state.Stage == session_models.StageGreeting ||
			state.Stage == session_models.StagePreviousVisits ||
			state.Stage == session_models.StageDuration {
			state.Stage = session_models.StageDayDetails
		}
	}
	state.AddInterests(data.Interests)
	if state.Budget == "" {
		state.Budget = data.Budget
	}
	if state.Pace == "" {
		state.Pace = data.Pace
	}
}

func (s *TripBotService) finishTurn(state *session_models.ConversationState, reply *response_models.ChatReply) {
	reply.SessionID = state.SessionID
	reply.TripData = tripDataSnapshot(state)
	state.AppendMessage(session_models.RoleAssistant, reply.Content)
	s.store.Update(state)
}

func tripDataSnapshot(state *session_models.ConversationState) *request_models.TripData {
	return &request_models.TripData{
		Duration:  state.Duration,
		Interests: state.Interests,
		Budget:    state.Budget,
		Pace:      state.Pace,
	}
}

func wantsReset(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "start over") || strings.Contains(lower, "reset")
}

func wantsPlan(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "generate") ||
		strings.Contains(lower, "create my plan") ||
		strings.Contains(lower, "make my plan") ||
		strings.Contains(lower, "build my plan")
}

var negationRe = regexp.MustCompile(`\b(no|not|never|haven't|havent|first time)\b`)

// affirmative reports a yes-answer. A negation anywhere in the message
// wins, so "No, I haven't been to Sri Lanka" is never read as a yes just
// because it happens to contain "i have".
func affirmative(message string) bool {
	lower := strings.ToLower(message)
	if negationRe.MatchString(lower) {
		return false
	}
	return strings.Contains(lower, "yes") ||
		strings.Contains(lower, "i have") ||
		strings.Contains(lower, "been before") ||
		strings.Contains(lower, "returning")
}

// --- stage handlers ---

func (s *TripBotService) handleGreeting(state *session_models.ConversationState, message string) *response_models.ChatReply {
	if days, ok := ExtractDuration(message); ok {
		return s.applyDuration(state, days)
	}
	if affirmative(message) {
		returning := true
		state.IsReturningTraveler = &returning
		state.Stage = session_models.StagePreviousVisits
		return &response_models.ChatReply{
			Kind:    response_models.ReplyText,
			Content: "Welcome back! Which places did you visit last time? I'll steer you somewhere fresh.",
		}
	}

	// The very first message is usually just an opener; ask the
	// returning-traveler question before moving on. An explicit negation
	// or anything after that defaults to collecting the trip length.
	if !negationRe.MatchString(strings.ToLower(message)) && len(state.MessageHistory) <= 1 {
		return &response_models.ChatReply{
			Kind:        response_models.ReplyText,
			Content:     greetingContent,
			Suggestions: []string{"Yes, I've been before", "No, first time"},
		}
	}

	notReturning := false
	state.IsReturningTraveler = &notReturning
	state.Stage = session_models.StageDuration
	return &response_models.ChatReply{
		Kind:           response_models.ReplyText,
		Content:        "Wonderful, a first visit! How many days will you be staying?",
		AskForDuration: true,
		Suggestions:    durationSuggestions,
	}
}

func (s *TripBotService) handlePreviousVisits(ctx context.Context, state *session_models.ConversationState, message string) *response_models.ChatReply {
	catalog := s.catalog.Destinations(ctx)
	lower := strings.ToLower(message)
	for _, d := range catalog {
		if strings.Contains(lower, strings.ToLower(d.Name)) {
			state.AddVisitedPlace(d.Name)
		}
	}
	for _, place := range ExtractInterests(message) {
		// Interests volunteered here still count.
		state.AddInterests([]string{place})
	}

	state.Stage = session_models.StageDuration
	if days, ok := ExtractDuration(message); ok {
		return s.applyDuration(state, days)
	}
	return &response_models.ChatReply{
		Kind:           response_models.ReplyText,
		Content:        "Noted! Now, how many days will you be staying this time?",
		AskForDuration: true,
		Suggestions:    durationSuggestions,
	}
}

func (s *TripBotService) applyDuration(state *session_models.ConversationState, days int) *response_models.ChatReply {
	state.SetDuration(days)
	state.Stage = session_models.StageDayDetails
	return &response_models.ChatReply{
		Kind:        response_models.ReplyText,
		Content:     fmt.Sprintf("Perfect, %d days it is! What are you interested in — beaches, wildlife, culture, adventure?", days),
		Suggestions: interestSuggestions,
	}
}

func (s *TripBotService) handleDuration(ctx context.Context, state *session_models.ConversationState, message string) *response_models.ChatReply {
	if days, ok := ExtractDuration(message); ok {
		return s.applyDuration(state, days)
	}

	directive, ok := s.askCompletion(ctx, state, message)
	if !ok {
		return completionFailureReply()
	}
	reply := replyFromDirective(directive)
	if directive.AskForDuration && len(reply.Suggestions) == 0 {
		reply.Suggestions = durationSuggestions
	}
	return reply
}

func (s *TripBotService) handleDayDetails(ctx context.Context, state *session_models.ConversationState, message string) *response_models.ChatReply {
	if day, ok := ExtractContinueDay(message); ok {
		return s.continueLocked(ctx, state, day)
	}
	if wantsPlan(message) {
		return s.generateLocked(ctx, state)
	}

	catalog := s.catalog.Destinations(ctx)
	if view, ok := MatchDestination(message, catalog); ok {
		return s.toggleLocked(ctx, state, view)
	}
	if place, ok := DetectUnknownPlace(message, catalog); ok {
		return s.unknownPlaceReply(place, catalog)
	}

	if interests := ExtractInterests(message); len(interests) > 0 {
		// Deliberate latency optimization: surface the cards straight
		// away instead of waiting for the completion round trip.
		state.AddInterests(interests)
		return s.destinationPrompt(catalog, state.CurrentDay,
			fmt.Sprintf("Great choices! Here are destinations that fit day %d — pick one or more.", state.CurrentDay))
	}

	directive, ok := s.askCompletion(ctx, state, message)
	if !ok {
		return completionFailureReply()
	}
	if directive.GeneratePlan {
		s.applyMinedTripData(state, MineTripData(directive.Content))
	}
	reply := replyFromDirective(directive)
	if directive.ShowDestinations {
		reply.Kind = response_models.ReplyDestinationPrompt
		reply.Day = state.CurrentDay
		reply.Destinations = catalog
	}
	return reply
}

func (s *TripBotService) handleReadyForPlan(ctx context.Context, state *session_models.ConversationState, message string) *response_models.ChatReply {
	if wantsPlan(message) || affirmative(message) {
		return s.generateLocked(ctx, state)
	}
	return &response_models.ChatReply{
		Kind:         response_models.ReplyText,
		Content:      "All your days are set — shall I put the plan together?",
		GeneratePlan: true,
		Suggestions:  []string{"Generate my trip plan"},
	}
}

// applyMinedTripData seeds preferences mined from plan prose. Known
// values are never overwritten with guesses, and day plans are never
// touched here.
func (s *TripBotService) applyMinedTripData(state *session_models.ConversationState, mined request_models.TripData) {
	if state.Duration == 0 && mined.Duration > 0 {
		state.SetDuration(mined.Duration)
	}
	state.AddInterests(mined.Interests)
	if state.Budget == "" {
		state.Budget = mined.Budget
	}
	if state.Pace == "" {
		state.Pace = mined.Pace
	}
}

// --- explicit selection operations ---

func (s *TripBotService) SelectDestination(ctx context.Context, sessionID, destinationID string) (*response_models.ChatReply, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, ok := s.store.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	view, ok := s.catalog.DestinationByID(ctx, destinationID)
	if !ok {
		return nil, utils.ErrDestinationNotFound
	}

	state.AppendMessage(session_models.RoleUser, fmt.Sprintf("Selected %s", view.Name))
	reply := s.toggleLocked(ctx, state, view)
	s.finishTurn(state, reply)
	return reply, nil
}

func (s *TripBotService) SelectAccommodation(ctx context.Context, sessionID, accommodationID string) (*response_models.ChatReply, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, ok := s.store.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	view, ok := s.catalog.AccommodationByID(ctx, accommodationID)
	if !ok {
		return nil, utils.ErrAccommodationMissing
	}

	state.AppendMessage(session_models.RoleUser, fmt.Sprintf("Selected %s", view.Name))
	if state.Duration == 0 {
		reply := &response_models.ChatReply{
			Kind:           response_models.ReplyRedirect,
			Content:        fmt.Sprintf("%s looks lovely — first tell me how many days you'll be staying so I know which night it's for.", view.Name),
			AskForDuration: true,
			Suggestions:    durationSuggestions,
		}
		s.finishTurn(state, reply)
		return reply, nil
	}

	state.SetAccommodation(state.CurrentDay, session_models.AccommodationRef{
		ID:        view.ID,
		Name:      view.Name,
		Location:  view.Location,
		PriceTier: view.PriceTier,
		Amenities: view.Amenities,
	})

	reply := s.afterAccommodationReply(state, view)
	s.finishTurn(state, reply)
	return reply, nil
}

func (s *TripBotService) afterAccommodationReply(state *session_models.ConversationState, view response_models.AccommodationView) *response_models.ChatReply {
	day := state.CurrentDay
	if day < state.Duration {
		return &response_models.ChatReply{
			Kind:    response_models.ReplyText,
			Content: fmt.Sprintf("%s is booked in for day %d. Ready for day %d?", view.Name, day, day+1),
			Day:     day,
			Suggestions: []string{
				fmt.Sprintf("Continue to day %d", day+1),
				"Generate my trip plan",
			},
		}
	}

	if state.FirstDayWithoutDestinations() == 0 && state.FirstDayWithoutAccommodation() == 0 {
		state.Stage = session_models.StageReadyForPlan
	}
	return &response_models.ChatReply{
		Kind:         response_models.ReplyText,
		Content:      fmt.Sprintf("%s is booked in for day %d — that was your last day! Shall I put the plan together?", view.Name, day),
		Day:          day,
		GeneratePlan: true,
		Suggestions:  []string{"Generate my trip plan"},
	}
}

func (s *TripBotService) ContinueToDay(ctx context.Context, sessionID string, day int) (*response_models.ChatReply, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, ok := s.store.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	state.AppendMessage(session_models.RoleUser, fmt.Sprintf("Continue to day %d", day))
	reply := s.continueLocked(ctx, state, day)
	s.finishTurn(state, reply)
	return reply, nil
}

func (s *TripBotService) GenerateTripPlan(ctx context.Context, sessionID string) (*response_models.ChatReply, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	state, ok := s.store.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	state.AppendMessage(session_models.RoleUser, "Generate my trip plan")
	reply := s.generateLocked(ctx, state)
	s.finishTurn(state, reply)
	return reply, nil
}

func (s *TripBotService) Reset(ctx context.Context, sessionID string) (*response_models.ChatReply, error) {
	if sessionID != "" {
		unlock := s.lockSession(sessionID)
		defer unlock()
		if state, ok := s.store.Get(sessionID); ok {
			return s.resetLocked(state)
		}
	}
	return s.freshSession(), nil
}

func (s *TripBotService) resetLocked(old *session_models.ConversationState) (*response_models.ChatReply, error) {
	s.store.Delete(old.SessionID)
	return s.freshSession(), nil
}

func (s *TripBotService) freshSession() *response_models.ChatReply {
	state := session_models.NewConversationState(uuid.NewString())
	reply := &response_models.ChatReply{
		Kind:        response_models.ReplyText,
		SessionID:   state.SessionID,
		Content:     greetingContent,
		Suggestions: []string{"Yes, I've been before", "No, first time"},
	}
	state.AppendMessage(session_models.RoleAssistant, reply.Content)
	s.store.Create(state)
	return reply
}

func (s *TripBotService) Session(sessionID string) (*session_models.ConversationState, error) {
	state, ok := s.store.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return state, nil
}

// --- shared orchestration steps ---

func (s *TripBotService) toggleLocked(ctx context.Context, state *session_models.ConversationState, view response_models.DestinationView) *response_models.ChatReply {
	if state.Duration == 0 {
		return &response_models.ChatReply{
			Kind:           response_models.ReplyRedirect,
			Content:        fmt.Sprintf("%s is a great pick — first tell me how many days you'll be staying so I can slot it in.", view.Name),
			AskForDuration: true,
			Suggestions:    durationSuggestions,
		}
	}

	day := state.CurrentDay
	selected, ok := state.ToggleDestination(day, session_models.DestinationRef{
		ID:       view.ID,
		Name:     view.Name,
		Category: view.Category,
		District: view.District,
		Province: view.Province,
	})
	if !ok {
		return s.destinationPrompt(s.catalog.Destinations(ctx), day, "Let's pick destinations for your current day first.")
	}

	remaining := state.DestinationsFor(day)
	needsStay := len(remaining) > 0 && state.AccommodationFor(day) == nil

	if !selected {
		reply := &response_models.ChatReply{
			Kind:    response_models.ReplyText,
			Content: fmt.Sprintf("Removed %s from day %d.", view.Name, day),
			Day:     day,
		}
		if needsStay {
			return s.accommodationPrompt(ctx, state, day,
				fmt.Sprintf("Removed %s from day %d. You still need a place to stay that night — here are some options.", view.Name, day))
		}
		return reply
	}

	content := fmt.Sprintf("%s added to day %d!", view.Name, day)
	suggestions := s.alsoConsider(ctx, state, day, view)
	if needsStay {
		reply := s.accommodationPrompt(ctx, state, day,
			content+" Now, where would you like to stay that night?")
		reply.Suggestions = suggestions
		return reply
	}
	return &response_models.ChatReply{
		Kind:        response_models.ReplyText,
		Content:     content,
		Day:         day,
		Suggestions: suggestions,
	}
}

// alsoConsider offers up to two destinations not yet selected for the
// day, ranked by vector similarity when embeddings are available and by
// catalog order otherwise.
func (s *TripBotService) alsoConsider(ctx context.Context, state *session_models.ConversationState, day int, picked response_models.DestinationView) []string {
	selected := make(map[string]bool)
	for _, ref := range state.DestinationsFor(day) {
		selected[ref.ID] = true
	}
	selected[picked.ID] = true

	catalog := s.catalog.Destinations(ctx)
	ordered := make([]response_models.DestinationView, 0, len(catalog))

	if s.embeddings != nil {
		rows, err := s.embeddings.NearestByVector(ctx, utils.EmbedText(picked.Name+" "+picked.Category), 6)
		if err == nil {
			for _, row := range rows {
				for _, view := range catalog {
					if view.ID == row.DestinationID && !selected[view.ID] {
						ordered = append(ordered, view)
					}
				}
			}
		} else {
			log.Printf("Embedding suggestion lookup failed, using catalog order: %v", err)
		}
	}
	for _, view := range catalog {
		if !selected[view.ID] {
			ordered = append(ordered, view)
		}
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, view := range ordered {
		if seen[view.ID] {
			continue
		}
		seen[view.ID] = true
		suggestions = append(suggestions, fmt.Sprintf("Also consider %s", view.Name))
		if len(suggestions) == 2 {
			break
		}
	}
	return suggestions
}

func (s *TripBotService) continueLocked(ctx context.Context, state *session_models.ConversationState, day int) *response_models.ChatReply {
	if state.Duration == 0 {
		return &response_models.ChatReply{
			Kind:           response_models.ReplyRedirect,
			Content:        "Let's settle your trip length first — how many days will you be staying?",
			AskForDuration: true,
			Suggestions:    durationSuggestions,
		}
	}
	if day < 1 || day > state.Duration {
		return &response_models.ChatReply{
			Kind:    response_models.ReplyRedirect,
			Content: fmt.Sprintf("Your trip is %d days, so there's no day %d. Which day shall we work on?", state.Duration, day),
			Day:     state.CurrentDay,
		}
	}

	// Day progression never silently skips an incomplete day.
	current := state.CurrentDay
	if day > current {
		if len(state.DestinationsFor(current)) == 0 {
			return s.destinationPrompt(s.catalog.Destinations(ctx), current,
				fmt.Sprintf("Before moving on, day %d still needs at least one destination.", current))
		}
		if state.AccommodationFor(current) == nil {
			return s.accommodationPrompt(ctx, state, current,
				fmt.Sprintf("Almost there — pick a place to stay for day %d first.", current))
		}
	}

	state.SetCurrentDay(day)
	return s.destinationPrompt(s.catalog.Destinations(ctx), day,
		fmt.Sprintf("On to day %d! Where would you like to go?", day))
}

// generateLocked checks the plan preconditions in order and halts at the
// first failure, redirecting the traveler to the missing step. Only when
// every check holds does the assembler run.
func (s *TripBotService) generateLocked(ctx context.Context, state *session_models.ConversationState) *response_models.ChatReply {
	if state.Duration <= 0 {
		return &response_models.ChatReply{
			Kind:           response_models.ReplyRedirect,
			Content:        "I still need your trip length before building a plan. How many days are you staying?",
			AskForDuration: true,
			Suggestions:    durationSuggestions,
		}
	}
	if !state.HasAnyDestinations() {
		state.SetCurrentDay(1)
		return s.destinationPrompt(s.catalog.Destinations(ctx), 1,
			"Let's pick some destinations first — where would you like to go on day 1?")
	}
	if day := state.FirstDayWithoutDestinations(); day > 0 {
		state.SetCurrentDay(day)
		return s.destinationPrompt(s.catalog.Destinations(ctx), day,
			fmt.Sprintf("Day %d doesn't have any destinations yet. Where would you like to go?", day))
	}
	if day := state.FirstDayWithoutAccommodation(); day > 0 {
		state.SetCurrentDay(day)
		return s.accommodationPrompt(ctx, state, day,
			fmt.Sprintf("Day %d still needs a place to stay — here are some options.", day))
	}

	plan := AssembleTripPlan(state)
	state.Stage = session_models.StageCompleted
	return &response_models.ChatReply{
		Kind:         response_models.ReplyTripPlan,
		Content:      fmt.Sprintf("Here it is — your %d-day Sri Lanka itinerary! You can save it or export it as a PDF.", state.Duration),
		GeneratePlan: true,
		Plan:         &plan,
	}
}

func (s *TripBotService) destinationPrompt(catalog []response_models.DestinationView, day int, content string) *response_models.ChatReply {
	return &response_models.ChatReply{
		Kind:             response_models.ReplyDestinationPrompt,
		Content:          content,
		Day:              day,
		ShowDestinations: true,
		Destinations:     catalog,
	}
}

// accommodationPrompt filters candidates whose location matches a token
// of the day's destination names; no match falls back to the full list.
func (s *TripBotService) accommodationPrompt(ctx context.Context, state *session_models.ConversationState, day int, content string) *response_models.ChatReply {
	all := s.catalog.Accommodations(ctx)

	var tokens []string
	for _, ref := range state.DestinationsFor(day) {
		for _, token := range strings.Fields(strings.ToLower(ref.Name)) {
			if len(token) > 3 {
				tokens = append(tokens, token)
			}
		}
	}

	var candidates []response_models.AccommodationView
	for _, view := range all {
		location := strings.ToLower(view.Location)
		for _, token := range tokens {
			if strings.Contains(location, token) || strings.Contains(token, location) {
				candidates = append(candidates, view)
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = all
	}

	return &response_models.ChatReply{
		Kind:           response_models.ReplyAccommodationPrompt,
		Content:        content,
		Day:            day,
		Accommodations: candidates,
	}
}

func (s *TripBotService) unknownPlaceReply(place string, catalog []response_models.DestinationView) *response_models.ChatReply {
	return &response_models.ChatReply{
		Kind:             response_models.ReplyRedirect,
		Content:          fmt.Sprintf("I don't have %s in my catalog just yet. Here's what I can offer: %s.", titleCase(place), CatalogNames(catalog)),
		ShowDestinations: true,
		Destinations:     catalog,
	}
}

func offTopicReply() *response_models.ChatReply {
	return &response_models.ChatReply{
		Kind:        response_models.ReplyRedirect,
		Content:     "I'm your Sri Lanka travel planner, so let's keep it to the island! Where would you like your trip to take you?",
		Suggestions: []string{"Show me destinations", "Help me plan my trip"},
	}
}

// askCompletion forwards the turn to the completion service. A failure is
// reported as not-ok; the caller shows the apologetic reply, never a raw
// error.
func (s *TripBotService) askCompletion(ctx context.Context, state *session_models.ConversationState, message string) (session_models.LlmDirective, bool) {
	history := state.MessageHistory
	if len(history) > 0 {
		history = history[:len(history)-1]
	}

	raw, err := s.completions.Complete(ctx, s.systemPrompt(ctx), history, message)
	if err != nil {
		log.Printf("Completion call failed for session %s: %v", state.SessionID, err)
		return session_models.LlmDirective{}, false
	}
	return ParseDirective(raw), true
}

func (s *TripBotService) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("You are TripBot, the Ceylon Circuit planning assistant for Sri Lanka trips.\n")
	b.WriteString("Only ever mention destinations from this catalog, and never invent places: ")
	b.WriteString(CatalogNames(s.catalog.Destinations(ctx)))
	b.WriteString(".\n")
	b.WriteString("When the traveler should pick destinations, include the line " + MarkerShowDestinations + "\n")
	b.WriteString("When you still need the trip length in days, include the line " + MarkerAskForDuration + "\n")
	b.WriteString("When enough is known to assemble the plan, include the line " + MarkerGeneratePlan + "\n")
	b.WriteString("Offer up to three short reply suggestions, each on its own line starting with \"- \".\n")
	b.WriteString("Keep answers to a few warm, concise sentences.")
	return b.String()
}

func replyFromDirective(directive session_models.LlmDirective) *response_models.ChatReply {
	return &response_models.ChatReply{
		Kind:             response_models.ReplyText,
		Content:          directive.Content,
		Suggestions:      directive.Suggestions,
		GeneratePlan:     directive.GeneratePlan,
		ShowDestinations: directive.ShowDestinations,
		AskForDuration:   directive.AskForDuration,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func completionFailureReply() *response_models.ChatReply {
	return &response_models.ChatReply{
		Kind:        response_models.ReplyText,
		Content:     "I'm so sorry — I'm having a little trouble thinking right now. Could you try that again in a moment?",
		Suggestions: []string{"Try again"},
	}
}
