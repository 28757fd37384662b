package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDuration(t *testing.T) {
	cases := []struct {
		input string
		want  int
		found bool
	}{
		{"5 days", 5, true},
		{"I'll stay 5 days", 5, true},
		{"I'm thinking about a 10 day trip", 10, true},
		{"five days", 5, true},
		{"staying for 7", 7, true},
		{"3", 3, true},
		{"three", 3, true},
		{"fourteen days", 0, false},
		{"I love beaches", 0, false},
	}

	for _, tc := range cases {
		got, found := ExtractDuration(tc.input)
		assert.Equal(t, tc.found, found, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestExtractDurationSamePhrasingSameResult(t *testing.T) {
	a, okA := ExtractDuration("I'll stay 5 days")
	b, okB := ExtractDuration("5 days")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestExtractInterests(t *testing.T) {
	found := ExtractInterests("We love Wildlife and the beach life")
	assert.ElementsMatch(t, []string{"wildlife", "beach"}, found)

	assert.Empty(t, ExtractInterests("hello there"))

	all := ExtractInterests("a mix of everything please")
	assert.Len(t, all, len(interestVocabulary))
}

func TestMatchDestination(t *testing.T) {
	catalog := FallbackDestinations()

	exact, ok := MatchDestination("I'd love to see Sigiriya Rock Fortress", catalog)
	require.True(t, ok)
	assert.Equal(t, "sigiriya-rock-fortress", exact.ID)

	fuzzy, ok := MatchDestination("what about sigiriya?", catalog)
	require.True(t, ok)
	assert.Equal(t, "sigiriya-rock-fortress", fuzzy.ID)

	_, ok = MatchDestination("somewhere nice", catalog)
	assert.False(t, ok)
}

func TestDetectUnknownPlace(t *testing.T) {
	catalog := FallbackDestinations()

	place, ok := DetectUnknownPlace("can we go to Trincomalee?", catalog)
	require.True(t, ok)
	assert.Equal(t, "trincomalee", place)

	// Kandy is covered through the Temple of the Tooth's district, so it
	// must not trigger the out-of-catalog redirect.
	_, ok = DetectUnknownPlace("I want to see Kandy", catalog)
	assert.False(t, ok)

	_, ok = DetectUnknownPlace("just somewhere warm", catalog)
	assert.False(t, ok)
}

func TestIsOffTopic(t *testing.T) {
	assert.True(t, IsOffTopic("tell me a joke"))
	assert.True(t, IsOffTopic("what's the capital of France"))
	assert.False(t, IsOffTopic("what's the capital of Sri Lanka and can I visit it"))
	assert.False(t, IsOffTopic("I want to see leopards"))
}

func TestExtractContinueDay(t *testing.T) {
	day, ok := ExtractContinueDay("Continue to day 2")
	require.True(t, ok)
	assert.Equal(t, 2, day)

	_, ok = ExtractContinueDay("let's keep going")
	assert.False(t, ok)
}

func TestParseDirective(t *testing.T) {
	raw := "Great, let's plan!\nSHOW_DESTINATIONS: true\n- Show me beaches\n- Wildlife please\nAnything else?"

	directive := ParseDirective(raw)
	assert.True(t, directive.ShowDestinations)
	assert.False(t, directive.AskForDuration)
	assert.False(t, directive.GeneratePlan)
	assert.Equal(t, []string{"Show me beaches", "Wildlife please"}, directive.Suggestions)
	assert.Equal(t, "Great, let's plan!\nAnything else?", directive.Content)
}

func TestParseDirectiveIdempotent(t *testing.T) {
	raw := "Here you go. READY_TO_GENERATE_PLAN: true\n- Generate now"

	first := ParseDirective(raw)
	second := ParseDirective(first.Content)

	assert.True(t, first.GeneratePlan)
	assert.False(t, second.GeneratePlan)
	assert.Empty(t, second.Suggestions)
	assert.Equal(t, first.Content, second.Content)
}

func TestParseDirectiveMalformedMarkersIgnored(t *testing.T) {
	directive := ParseDirective("SHOW_DESTINATIONS: yes please")
	assert.False(t, directive.ShowDestinations)
	assert.Equal(t, "SHOW_DESTINATIONS: yes please", directive.Content)
}

func TestMineTripData(t *testing.T) {
	mined := MineTripData("Here is a relaxed 4-day luxury tour with beaches and temples")
	assert.Equal(t, 4, mined.Duration)
	assert.Equal(t, "luxury", mined.Budget)
	assert.Equal(t, "relaxed", mined.Pace)
	assert.Contains(t, mined.Interests, "beach")
	assert.Contains(t, mined.Interests, "temples")

	// No pace or budget hint must stay empty, never default to a guess.
	empty := MineTripData("a lovely journey")
	assert.Empty(t, empty.Budget)
	assert.Empty(t, empty.Pace)
}
