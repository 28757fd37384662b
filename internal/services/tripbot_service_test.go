package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceyloncircuit/internal/models/request_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/models/session_models"
	"ceyloncircuit/pkg/memcache"
	"ceyloncircuit/pkg/utils"
)

// stubCompletion replays a canned completion, or fails when err is set.
type stubCompletion struct {
	reply string
	err   error
	calls int
}

func (s *stubCompletion) Complete(_ context.Context, _ string, _ []session_models.Message, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestBot(completion utils.CompletionClientInterface) (*TripBotService, memcache.SessionStore) {
	store := memcache.NewSessionCache()
	svc := NewTripBotService(store, NewCatalogService(nil, nil), completion, nil)
	return svc.(*TripBotService), store
}

func seedSession(t *testing.T, store memcache.SessionStore, id string, duration int) *session_models.ConversationState {
	t.Helper()
	state := session_models.NewConversationState(id)
	if duration > 0 {
		state.SetDuration(duration)
		state.Stage = session_models.StageDayDetails
	}
	require.True(t, store.Create(state))
	return state
}

func TestHandleMessageGreetingDurationShortcut(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})

	reply, err := bot.HandleMessage(context.Background(), request_models.ChatRequest{
		SessionID: "s1",
		Message:   "I'm visiting for 4 days",
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyText, reply.Kind)
	assert.Equal(t, "s1", reply.SessionID)

	state, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, 4, state.Duration)
	assert.Equal(t, 1, state.CurrentDay)
	assert.Equal(t, session_models.StageDayDetails, state.Stage)
}

func TestHandleMessageGreetingToDurationFlow(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	ctx := context.Background()

	_, err := bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "s2", Message: "hi"})
	require.NoError(t, err)
	state, _ := store.Get("s2")
	assert.Equal(t, session_models.StageGreeting, state.Stage)

	_, err = bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "s2", Message: "no, first time"})
	require.NoError(t, err)
	state, _ = store.Get("s2")
	assert.Equal(t, session_models.StageDuration, state.Stage)
	require.NotNil(t, state.IsReturningTraveler)
	assert.False(t, *state.IsReturningTraveler)

	reply, err := bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "s2", Message: "2 days"})
	require.NoError(t, err)
	state, _ = store.Get("s2")
	assert.Equal(t, 2, state.Duration)
	assert.Equal(t, session_models.StageDayDetails, state.Stage)
	assert.Contains(t, reply.Content, "2 days")
}

func TestHandleMessageNegatedAnswerIsFirstTimer(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	ctx := context.Background()

	_, err := bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "neg", Message: "hi"})
	require.NoError(t, err)

	// "I haven't" contains "i have"; the negation must win.
	_, err = bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "neg", Message: "No, I haven't been to Sri Lanka"})
	require.NoError(t, err)

	state, _ := store.Get("neg")
	assert.Equal(t, session_models.StageDuration, state.Stage)
	require.NotNil(t, state.IsReturningTraveler)
	assert.False(t, *state.IsReturningTraveler)
}

func TestHandleMessageReturningTraveler(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	ctx := context.Background()

	_, err := bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "s3", Message: "yes, I've been before"})
	require.NoError(t, err)
	state, _ := store.Get("s3")
	assert.Equal(t, session_models.StagePreviousVisits, state.Stage)

	_, err = bot.HandleMessage(ctx, request_models.ChatRequest{SessionID: "s3", Message: "I went to Ella and Galle Fort"})
	require.NoError(t, err)
	state, _ = store.Get("s3")
	assert.Contains(t, state.PreviouslyVisited, "Ella")
	assert.Contains(t, state.PreviouslyVisited, "Galle Fort")
	assert.Equal(t, session_models.StageDuration, state.Stage)
}

func TestHandleMessageOffTopicRedirect(t *testing.T) {
	bot, _ := newTestBot(&stubCompletion{reply: "hello"})

	reply, err := bot.HandleMessage(context.Background(), request_models.ChatRequest{
		SessionID: "s4",
		Message:   "tell me a joke",
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyRedirect, reply.Kind)
}

func TestHandleMessageUnknownPlaceRedirect(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "s5", 3)

	reply, err := bot.HandleMessage(context.Background(), request_models.ChatRequest{
		SessionID: "s5",
		Message:   "I want to visit Trincomalee",
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyRedirect, reply.Kind)
	assert.True(t, reply.ShowDestinations)
	assert.Contains(t, reply.Content, "Trincomalee")
}

func TestHandleMessageCompletionFailure(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{err: errors.New("boom")})
	seedSession(t, store, "s6", 2)

	reply, err := bot.HandleMessage(context.Background(), request_models.ChatRequest{
		SessionID: "s6",
		Message:   "what do you recommend for a rainy afternoon",
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyText, reply.Kind)
	assert.Contains(t, reply.Content, "try that again")
}

func TestSelectDestinationToggle(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "toggle", 2)
	ctx := context.Background()

	reply, err := bot.SelectDestination(ctx, "toggle", "sigiriya-rock-fortress")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyAccommodationPrompt, reply.Kind)
	assert.Equal(t, 1, reply.Day)
	assert.NotEmpty(t, reply.Accommodations)

	state, _ := store.Get("toggle")
	require.Len(t, state.DestinationsFor(1), 1)
	assert.Equal(t, "sigiriya-rock-fortress", state.DestinationsFor(1)[0].ID)

	// Selecting the same destination again removes it.
	reply, err = bot.SelectDestination(ctx, "toggle", "sigiriya-rock-fortress")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Removed")

	state, _ = store.Get("toggle")
	assert.Empty(t, state.DestinationsFor(1))
}

func TestSelectDestinationAccommodationFullListFallback(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "full-list", 2)

	// No fallback accommodation location matches "temple" or "tooth", so
	// the prompt falls back to the whole list.
	reply, err := bot.SelectDestination(context.Background(), "full-list", "temple-of-the-tooth")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyAccommodationPrompt, reply.Kind)
	assert.Len(t, reply.Accommodations, len(FallbackAccommodations()))
}

func TestHandleDurationMarkerReprompts(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "How long will you be staying?\nASK_FOR_DURATION: true"})
	state := session_models.NewConversationState("marker")
	state.Stage = session_models.StageDuration
	require.True(t, store.Create(state))

	reply, err := bot.HandleMessage(context.Background(), request_models.ChatRequest{
		SessionID: "marker",
		Message:   "hmm, still deciding",
	})
	require.NoError(t, err)
	assert.True(t, reply.AskForDuration)
	assert.Equal(t, durationSuggestions, reply.Suggestions)
	assert.Equal(t, "How long will you be staying?", reply.Content)
}

func TestSelectDestinationRequiresDuration(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	state := session_models.NewConversationState("no-duration")
	require.True(t, store.Create(state))

	reply, err := bot.SelectDestination(context.Background(), "no-duration", "ella")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyRedirect, reply.Kind)
	assert.True(t, reply.AskForDuration)
	assert.Empty(t, state.DayPlans)
}

func TestSelectAccommodationRequiresDuration(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	state := session_models.NewConversationState("stay-first")
	require.True(t, store.Create(state))

	// Same conversational redirect as destination picks, never an error.
	reply, err := bot.SelectAccommodation(context.Background(), "stay-first", "colombo-city-hotel")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyRedirect, reply.Kind)
	assert.True(t, reply.AskForDuration)
	assert.Empty(t, state.DayPlans)
}

func TestConcurrentSelectionsAreSerialized(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "race", 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"ella", "galle-fort"} {
		wg.Add(1)
		go func(destinationID string) {
			defer wg.Done()
			_, err := bot.SelectDestination(ctx, "race", destinationID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	state, _ := store.Get("race")
	assert.Len(t, state.DestinationsFor(1), 2)
}

func TestSelectDestinationErrors(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "errs", 2)
	ctx := context.Background()

	_, err := bot.SelectDestination(ctx, "missing", "ella")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	_, err = bot.SelectDestination(ctx, "errs", "atlantis")
	assert.ErrorIs(t, err, utils.ErrDestinationNotFound)
}

func TestContinueToDayBlockedWithoutAccommodation(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	state := seedSession(t, store, "cont", 2)
	state.ToggleDestination(1, session_models.DestinationRef{ID: "ella", Name: "Ella"})

	reply, err := bot.ContinueToDay(context.Background(), "cont", 2)
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyAccommodationPrompt, reply.Kind)
	assert.Equal(t, 1, reply.Day)

	state, _ = store.Get("cont")
	assert.Equal(t, 1, state.CurrentDay)
}

func TestContinueToDayAdvances(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	state := seedSession(t, store, "cont2", 3)
	state.ToggleDestination(1, session_models.DestinationRef{ID: "ella", Name: "Ella"})
	state.SetAccommodation(1, session_models.AccommodationRef{ID: "ella-mountain-lodge", Name: "Ella Mountain Lodge"})

	reply, err := bot.ContinueToDay(context.Background(), "cont2", 2)
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyDestinationPrompt, reply.Kind)
	assert.Equal(t, 2, reply.Day)

	state, _ = store.Get("cont2")
	assert.Equal(t, 2, state.CurrentDay)
}

func TestContinueToDayOutOfRange(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "cont3", 2)

	reply, err := bot.ContinueToDay(context.Background(), "cont3", 5)
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyRedirect, reply.Kind)
	assert.Contains(t, reply.Content, "no day 5")
}

func TestGenerateTripPlanGates(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	ctx := context.Background()

	// No duration yet.
	state := session_models.NewConversationState("gate")
	require.True(t, store.Create(state))
	reply, err := bot.GenerateTripPlan(ctx, "gate")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyRedirect, reply.Kind)
	assert.True(t, reply.AskForDuration)

	// Duration but no destinations at all.
	state.SetDuration(3)
	state.Stage = session_models.StageDayDetails
	store.Update(state)
	reply, err = bot.GenerateTripPlan(ctx, "gate")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyDestinationPrompt, reply.Kind)
	assert.Equal(t, 1, reply.Day)

	// Days 1 and 2 complete, day 3 empty: redirected there, no plan.
	state.ToggleDestination(1, session_models.DestinationRef{ID: "ella", Name: "Ella"})
	state.SetAccommodation(1, session_models.AccommodationRef{ID: "l1", Name: "Lodge One"})
	state.ToggleDestination(2, session_models.DestinationRef{ID: "galle-fort", Name: "Galle Fort"})
	state.SetAccommodation(2, session_models.AccommodationRef{ID: "l2", Name: "Lodge Two"})
	store.Update(state)
	reply, err = bot.GenerateTripPlan(ctx, "gate")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyDestinationPrompt, reply.Kind)
	assert.Equal(t, 3, reply.Day)
	assert.Nil(t, reply.Plan)

	fresh, _ := store.Get("gate")
	assert.Equal(t, 3, fresh.CurrentDay)
	assert.NotEqual(t, session_models.StageCompleted, fresh.Stage)

	// Destination without a stay: the accommodation gate fires next.
	state.ToggleDestination(3, session_models.DestinationRef{ID: "yala", Name: "Yala National Park"})
	store.Update(state)
	reply, err = bot.GenerateTripPlan(ctx, "gate")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyAccommodationPrompt, reply.Kind)
	assert.Equal(t, 3, reply.Day)
}

func TestGenerateTripPlanSuccess(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	state := seedSession(t, store, "done", 2)
	state.ToggleDestination(1, session_models.DestinationRef{ID: "ella", Name: "Ella"})
	state.SetAccommodation(1, session_models.AccommodationRef{ID: "l1", Name: "Lodge One"})
	state.ToggleDestination(2, session_models.DestinationRef{ID: "mirissa-beach", Name: "Mirissa Beach"})
	state.SetAccommodation(2, session_models.AccommodationRef{ID: "l2", Name: "Lodge Two"})

	reply, err := bot.GenerateTripPlan(context.Background(), "done")
	require.NoError(t, err)
	assert.Equal(t, response_models.ReplyTripPlan, reply.Kind)
	assert.True(t, reply.GeneratePlan)
	require.NotNil(t, reply.Plan)
	require.Len(t, reply.Plan.Itinerary, 2)
	assert.Equal(t, []string{"Ella"}, reply.Plan.Itinerary[0].Destinations)
	assert.Equal(t, []string{"Mirissa Beach"}, reply.Plan.Itinerary[1].Destinations)

	fresh, _ := store.Get("done")
	assert.Equal(t, session_models.StageCompleted, fresh.Stage)
}

func TestResetIssuesFreshSession(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "old", 2)

	reply, err := bot.Reset(context.Background(), "old")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.SessionID)
	assert.NotEqual(t, "old", reply.SessionID)

	_, ok := store.Get("old")
	assert.False(t, ok)
	fresh, ok := store.Get(reply.SessionID)
	require.True(t, ok)
	assert.Equal(t, session_models.StageGreeting, fresh.Stage)
}

func TestSessionLookup(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})
	seedSession(t, store, "look", 2)

	state, err := bot.Session("look")
	require.NoError(t, err)
	assert.Equal(t, "look", state.SessionID)

	_, err = bot.Session("nope")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestHandleMessageSeedsTripData(t *testing.T) {
	bot, store := newTestBot(&stubCompletion{reply: "hello"})

	_, err := bot.HandleMessage(context.Background(), request_models.ChatRequest{
		SessionID: "seed",
		Message:   "let's plan something",
		TripData:  &request_models.TripData{Duration: 3, Interests: []string{"beach"}, Budget: "budget"},
	})
	require.NoError(t, err)

	state, _ := store.Get("seed")
	assert.Equal(t, 3, state.Duration)
	assert.Equal(t, session_models.StageDayDetails, state.Stage)
	assert.Contains(t, state.Interests, "beach")
	assert.Equal(t, "budget", state.Budget)
}
