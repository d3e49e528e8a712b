package journey

import (
	"time"

	"github.com/google/uuid"
)

// Flow is the classified conversational intent of a journey. It selects
// which field slots the extractor walks.
type Flow string

const (
	FlowRentTenant     Flow = "RentTenant"
	FlowRentOwner      Flow = "RentOwner"
	FlowBuyBuyer       Flow = "BuyBuyer"
	FlowBuySeller      Flow = "BuySeller"
	FlowChannelPartner Flow = "ChannelPartner"
	FlowTalkToExpert   Flow = "TalkToExpert"
	FlowUnknown        Flow = "Unknown"
)

// Config carries the conversation-shape knobs shared by the splitter,
// classifier and extractor.
type Config struct {
	BotSender    string   // automated-side identity, matched case-insensitively
	MarkerPhrase string   // menu prompt substring, matched case-insensitively
	Greetings    []string // normalized forms dropped before classification
}

func DefaultConfig() Config {
	return Config{
		BotSender:    "Bot",
		MarkerPhrase: "how can we assist you today",
		Greetings:    []string{"hi", "hello", "hey", "greetings"},
	}
}

// Record is one completed journey, ready for delivery.
type Record struct {
	ID             uuid.UUID
	File           string
	Username       string
	Flow           Flow
	JourneyStart   time.Time
	JourneyEnd     time.Time
	TotalMessages  int
	MainSelection  string
	IntroSelection string
	ExtraResponses string
	Mobile         string
	Attempts       int
	Fields         map[string]string // flow-specific fields, keyed by sheet column
}

// Flatten renders the record as the flat key→value map delivered to sinks.
// Timestamps are serialized to RFC 3339; unknown timestamps become "".
func (r *Record) Flatten() map[string]any {
	out := map[string]any{
		"record_id":       r.ID.String(),
		"file":            r.File,
		"username":        r.Username,
		"flow":            string(r.Flow),
		"journey_start":   formatTime(r.JourneyStart),
		"journey_end":     formatTime(r.JourneyEnd),
		"total_messages":  r.TotalMessages,
		"main_selection":  r.MainSelection,
		"intro_selection": r.IntroSelection,
		"extra_responses": r.ExtraResponses,
		"mobile_number":   r.Mobile,
		"no_of_attempts":  r.Attempts,
	}
	for k, v := range r.Fields {
		out[k] = v
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
