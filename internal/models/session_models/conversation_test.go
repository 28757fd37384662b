package session_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDurationResetsSelections(t *testing.T) {
	state := NewConversationState("s")
	state.SetDuration(5)
	selected, ok := state.ToggleDestination(3, DestinationRef{ID: "ella", Name: "Ella"})
	require.True(t, ok)
	require.True(t, selected)

	state.SetDuration(2)
	assert.Equal(t, 2, state.Duration)
	assert.Equal(t, 1, state.CurrentDay)
	assert.Empty(t, state.DayPlans)

	// Non-positive durations are ignored.
	state.SetDuration(0)
	assert.Equal(t, 2, state.Duration)
}

func TestToggleDestinationBounds(t *testing.T) {
	state := NewConversationState("s")

	_, ok := state.ToggleDestination(1, DestinationRef{ID: "ella"})
	assert.False(t, ok, "no duration set yet")

	state.SetDuration(3)
	_, ok = state.ToggleDestination(4, DestinationRef{ID: "ella"})
	assert.False(t, ok)
	_, ok = state.ToggleDestination(0, DestinationRef{ID: "ella"})
	assert.False(t, ok)
	assert.Empty(t, state.DayPlans)
}

func TestToggleDestinationAddRemove(t *testing.T) {
	state := NewConversationState("s")
	state.SetDuration(2)

	selected, ok := state.ToggleDestination(1, DestinationRef{ID: "ella", Name: "Ella"})
	require.True(t, ok)
	assert.True(t, selected)

	selected, ok = state.ToggleDestination(1, DestinationRef{ID: "ella", Name: "Ella"})
	require.True(t, ok)
	assert.False(t, selected)
	assert.Empty(t, state.DestinationsFor(1))
}

func TestSetAccommodationLastWins(t *testing.T) {
	state := NewConversationState("s")
	state.SetDuration(1)

	require.True(t, state.SetAccommodation(1, AccommodationRef{ID: "a", Name: "First"}))
	require.True(t, state.SetAccommodation(1, AccommodationRef{ID: "b", Name: "Second"}))
	assert.Equal(t, "Second", state.AccommodationFor(1).Name)

	assert.False(t, state.SetAccommodation(2, AccommodationRef{ID: "c"}))
}

func TestAddInterestsDeduplicates(t *testing.T) {
	state := NewConversationState("s")
	state.AddInterests([]string{"beach", "Beach", "wildlife"})
	assert.Equal(t, []string{"beach", "wildlife"}, state.Interests)
}

func TestCompletenessHelpers(t *testing.T) {
	state := NewConversationState("s")
	state.SetDuration(3)
	assert.False(t, state.HasAnyDestinations())
	assert.Equal(t, 1, state.FirstDayWithoutDestinations())
	assert.Equal(t, 0, state.FirstDayWithoutAccommodation())

	state.ToggleDestination(1, DestinationRef{ID: "ella", Name: "Ella"})
	state.SetAccommodation(1, AccommodationRef{ID: "a", Name: "Lodge"})
	state.ToggleDestination(2, DestinationRef{ID: "galle", Name: "Galle Fort"})

	assert.True(t, state.HasAnyDestinations())
	assert.True(t, state.IsDayComplete(1))
	assert.False(t, state.IsDayComplete(2))
	assert.Equal(t, 3, state.FirstDayWithoutDestinations())
	assert.Equal(t, 2, state.FirstDayWithoutAccommodation())
}

func TestAllSelectedDestinationsDayOrdered(t *testing.T) {
	state := NewConversationState("s")
	state.SetDuration(3)
	state.ToggleDestination(2, DestinationRef{ID: "b", Name: "B"})
	state.ToggleDestination(1, DestinationRef{ID: "a", Name: "A"})
	state.ToggleDestination(3, DestinationRef{ID: "c", Name: "C"})

	all := state.AllSelectedDestinations()
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
	assert.Equal(t, "C", all[2].Name)
}
