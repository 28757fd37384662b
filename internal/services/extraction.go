package services

import (
	"regexp"
	"strconv"
	"strings"

	"ceyloncircuit/internal/models/request_models"
	"ceyloncircuit/internal/models/response_models"
	"ceyloncircuit/internal/models/session_models"
)

// Sentinel markers the completion model embeds in its prose. They are
// parsed out exactly once per response.
const (
	MarkerShowDestinations = "SHOW_DESTINATIONS: true"
	MarkerAskForDuration   = "ASK_FOR_DURATION: true"
	MarkerGeneratePlan     = "READY_TO_GENERATE_PLAN: true"
)

var (
	durationDaysRe     = regexp.MustCompile(`(\d+)\s*days?\b`)
	durationWordRe     = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten)\s+days?\b`)
	durationStayingRe  = regexp.MustCompile(`staying for (\d+)`)
	durationBareIntRe  = regexp.MustCompile(`\b(\d+)\b`)
	durationBareWordRe = regexp.MustCompile(`\b(one|two|three|four|five|six|seven|eight|nine|ten)\b`)
	planDayRe          = regexp.MustCompile(`(\d+)[-\s]day`)
	continueDayRe      = regexp.MustCompile(`continue to day (\d+)`)
)

// Words above ten are not recognized; travelers writing "fourteen days"
// get re-prompted, digits always work.
var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var interestVocabulary = []string{
	"beach", "wildlife", "culture", "history", "adventure", "food",
	"nature", "hiking", "trekking", "surfing", "temples", "tea",
	"waterfalls", "photography",
}

var catchAllInterestRe = regexp.MustCompile(`\b(any|all|everything|mix)\b`)

// Places a traveler may name that the catalog does not carry. Used to tell
// "mentioned an unknown place" apart from "said nothing about places".
var knownPlaces = []string{
	"anuradhapura", "polonnaruwa", "trincomalee", "jaffna", "nuwara eliya",
	"arugam bay", "bentota", "negombo", "dambulla", "hikkaduwa",
	"horton plains", "adam's peak", "unawatuna", "pinnawala", "kandy",
	"sigiriya", "galle", "ella", "yala", "mirissa", "colombo",
}

var offTopicKeywords = []string{
	"capital of", "calculate", "solve", "square root", "math problem",
	"president of", "prime minister of", "write a poem", "tell me a joke",
	"stock market", "bitcoin", "crypto", "football", "movie", "recipe for",
	"translate",
}

// ExtractDuration scans an utterance for a trip length in days. Patterns
// are tried in priority order; the first positive match wins. A miss is
// not an error, the orchestrator just asks again or defers to the LLM.
func ExtractDuration(text string) (int, bool) {
	lower := strings.ToLower(text)

	if m := durationDaysRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := durationWordRe.FindStringSubmatch(lower); m != nil {
		return wordNumbers[m[1]], true
	}
	if m := durationStayingRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := durationBareIntRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	if m := durationBareWordRe.FindStringSubmatch(lower); m != nil {
		return wordNumbers[m[1]], true
	}
	return 0, false
}

// ExtractInterests matches the fixed vocabulary case-insensitively.
// "any", "all", "everything" or "mix" selects the whole vocabulary.
func ExtractInterests(text string) []string {
	lower := strings.ToLower(text)

	if catchAllInterestRe.MatchString(lower) {
		all := make([]string, len(interestVocabulary))
		copy(all, interestVocabulary)
		return all
	}

	var found []string
	for _, interest := range interestVocabulary {
		if strings.Contains(lower, interest) {
			found = append(found, interest)
		}
	}
	return found
}

// MatchDestination finds the first catalog destination mentioned in the
// text: exact case-insensitive substring first, then a fuzzy pass over
// name tokens longer than 3 characters. It only ever returns entries from
// the given catalog.
func MatchDestination(text string, catalog []response_models.DestinationView) (response_models.DestinationView, bool) {
	lower := strings.ToLower(text)

	for _, d := range catalog {
		if strings.Contains(lower, strings.ToLower(d.Name)) {
			return d, true
		}
	}
	for _, d := range catalog {
		for _, token := range strings.Fields(strings.ToLower(d.Name)) {
			if len(token) > 3 && strings.Contains(lower, token) {
				return d, true
			}
		}
	}
	return response_models.DestinationView{}, false
}

// DetectUnknownPlace reports a well-known Sri Lanka place the traveler
// named that the catalog cannot serve. Places covered by any catalog name
// or district are skipped; those are handled by MatchDestination.
func DetectUnknownPlace(text string, catalog []response_models.DestinationView) (string, bool) {
	lower := strings.ToLower(text)

	for _, place := range knownPlaces {
		if !strings.Contains(lower, place) {
			continue
		}
		covered := false
		for _, d := range catalog {
			if strings.Contains(strings.ToLower(d.Name), place) ||
				strings.Contains(strings.ToLower(d.District), place) {
				covered = true
				break
			}
		}
		if !covered {
			return place, true
		}
	}
	return "", false
}

// IsOffTopic gates general-knowledge questions out of the conversation
// unless the message also mentions Sri Lanka.
func IsOffTopic(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "sri lanka") {
		return false
	}
	for _, keyword := range offTopicKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ExtractContinueDay parses "continue to day N" control messages.
func ExtractContinueDay(text string) (int, bool) {
	if m := continueDayRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// ParseDirective splits a raw completion into prose content, suggestion
// chips and control flags. Markers and suggestion lines are extracted
// independently of line order, and the function is idempotent: running it
// on already-cleaned content finds nothing further. Missing or malformed
// markers simply leave every flag false and the text untouched.
func ParseDirective(raw string) session_models.LlmDirective {
	directive := session_models.LlmDirective{}

	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(line, MarkerShowDestinations) {
			directive.ShowDestinations = true
			line = strings.ReplaceAll(line, MarkerShowDestinations, "")
		}
		if strings.Contains(line, MarkerAskForDuration) {
			directive.AskForDuration = true
			line = strings.ReplaceAll(line, MarkerAskForDuration, "")
		}
		if strings.Contains(line, MarkerGeneratePlan) {
			directive.GeneratePlan = true
			line = strings.ReplaceAll(line, MarkerGeneratePlan, "")
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			directive.Suggestions = append(directive.Suggestions, strings.TrimSpace(strings.TrimPrefix(trimmed, "- ")))
			continue
		}
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}

	directive.Content = strings.Join(kept, "\n")
	return directive
}

// MineTripData pulls duration, interest and budget/pace hints out of plan
// prose. Callers seed only fields the conversation has not already set;
// mined values never overwrite known ones, and destinations or stays are
// never inferred from prose at all.
func MineTripData(content string) request_models.TripData {
	lower := strings.ToLower(content)
	mined := request_models.TripData{}

	if m := planDayRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			mined.Duration = n
		}
	}
	mined.Interests = ExtractInterests(content)

	switch {
	case strings.Contains(lower, "luxury"), strings.Contains(lower, "premium"), strings.Contains(lower, "upscale"):
		mined.Budget = "luxury"
	case strings.Contains(lower, "budget"), strings.Contains(lower, "cheap"), strings.Contains(lower, "affordable"):
		mined.Budget = "budget"
	}

	switch {
	case strings.Contains(lower, "relaxed"), strings.Contains(lower, "leisurely"):
		mined.Pace = "relaxed"
	case strings.Contains(lower, "active"), strings.Contains(lower, "fast-paced"), strings.Contains(lower, "packed"):
		mined.Pace = "active"
	}

	return mined
}
