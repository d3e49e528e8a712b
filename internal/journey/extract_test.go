package journey

import (
	"testing"
	"time"

	"github.com/rentmax/journeyd/internal/transcript"
)

func TestExtractFields_NumericRetryCollection(t *testing.T) {
	texts := []string{"Rent", "Tenant", "Pune", "2BHK", "Kothrud", "abc", "12a", "450", "email@x.com", "Immediately"}

	fields, extra := ExtractFields(FlowRentTenant, texts)

	if got := fields["rent_tenant_txt_budget_correct"]; got != "450" {
		t.Errorf("budget_correct = %q, want 450", got)
	}
	if got := fields["rent_tenant_txt_budget_wrong"]; got != "abc; 12a" {
		t.Errorf("budget_wrong = %q, want %q", got, "abc; 12a")
	}
	if got := fields["rent_tenant_txt_email"]; got != "email@x.com" {
		t.Errorf("email = %q: cursor did not advance past the accepted value", got)
	}
	if got := fields["rent_tenant_btn_est_move_in"]; got != "Immediately" {
		t.Errorf("est_move_in = %q", got)
	}
	if extra != "" {
		t.Errorf("extra = %q, want empty", extra)
	}
}

func TestExtractFields_NumericExhaustsTexts(t *testing.T) {
	texts := []string{"Rent", "Owner", "Pune", "2BHK", "Kothrud", "abc", "not a number"}

	fields, extra := ExtractFields(FlowRentOwner, texts)

	if _, ok := fields["rent_owner_txt_rent_expectation_correct"]; ok {
		t.Error("expected no accepted value when all candidates are invalid")
	}
	if got := fields["rent_owner_txt_rent_expectation_wrong"]; got != "abc; not a number" {
		t.Errorf("wrong bucket = %q", got)
	}
	if extra != "" {
		t.Errorf("extra = %q, want empty", extra)
	}
}

func TestExtractFields_BranchingMore(t *testing.T) {
	texts := []string{"Buy", "Buyer", "More", "4BHK Duplex", "Baner", "9000000", "a@b.com"}

	fields, extra := ExtractFields(FlowBuyBuyer, texts)

	if got := fields["buy_buyer_btn_configuration"]; got != "More" {
		t.Errorf("configuration = %q", got)
	}
	if got := fields["buy_buyer_btn_configuration_more"]; got != "4BHK Duplex" {
		t.Errorf("configuration_more = %q", got)
	}
	if got := fields["buy_buyer_txt_locality"]; got != "Baner" {
		t.Errorf("locality = %q", got)
	}
	if got := fields["buy_buyer_txt_email"]; got != "a@b.com" {
		t.Errorf("email = %q", got)
	}
	if extra != "" {
		t.Errorf("extra = %q", extra)
	}
}

func TestExtractFields_ChannelPartnerFirmConsumesName(t *testing.T) {
	texts := []string{"Rent", "Channel Partner", "Firm", "Acme Realty", "Wakad", "Office 12, Hinjewadi", "Yes", "RERA-12345"}

	fields, _ := ExtractFields(FlowChannelPartner, texts)

	if got := fields["cp_mode_of_operation"]; got != "Firm" {
		t.Errorf("mode = %q", got)
	}
	if got := fields["cp_name"]; got != "Acme Realty" {
		t.Errorf("cp_name = %q", got)
	}
	if got := fields["cp_area_expertise"]; got != "Wakad" {
		t.Errorf("area = %q", got)
	}
	if got := fields["cp_rera_registered"]; got != "Yes" {
		t.Errorf("rera_registered = %q", got)
	}
	if got := fields["cp_rera_info"]; got != "RERA-12345" {
		t.Errorf("rera_info = %q", got)
	}
}

func TestExtractFields_ChannelPartnerIndividualSkipsConditionals(t *testing.T) {
	texts := []string{"Rent", "Channel Partner", "Individual", "Wakad", "Office 12", "No"}

	fields, extra := ExtractFields(FlowChannelPartner, texts)

	if _, ok := fields["cp_name"]; ok {
		t.Error("cp_name must not be consumed for an individual")
	}
	if got := fields["cp_area_expertise"]; got != "Wakad" {
		t.Errorf("area = %q: conditional slot consumed a text it should not have", got)
	}
	if _, ok := fields["cp_rera_info"]; ok {
		t.Error("cp_rera_info must not be consumed after a 'No'")
	}
	if extra != "" {
		t.Errorf("extra = %q", extra)
	}
}

func TestExtractFields_TalkToExpertNeverAdvances(t *testing.T) {
	texts := []string{"Talk to expert", "anything", "something else", "and more"}

	fields, extra := ExtractFields(FlowTalkToExpert, texts)

	if got := fields["message"]; got != "Talk to Expert selected" {
		t.Errorf("message = %q", got)
	}
	if extra != "something else; and more" {
		t.Errorf("extra = %q", extra)
	}
}

func TestExtractFields_UnknownFlowCollectsExtras(t *testing.T) {
	texts := []string{"lorem", "ipsum", "dolor", "sit"}

	fields, extra := ExtractFields(FlowUnknown, texts)

	if len(fields) != 0 {
		t.Errorf("expected no fields, got %v", fields)
	}
	if extra != "dolor; sit" {
		t.Errorf("extra = %q", extra)
	}
}

func TestExtractFields_ShortJourneyLeavesFieldsAbsent(t *testing.T) {
	texts := []string{"Rent", "Tenant", "Pune"}

	fields, extra := ExtractFields(FlowRentTenant, texts)

	if got := fields["rent_tenant_btn_city"]; got != "Pune" {
		t.Errorf("city = %q", got)
	}
	if _, ok := fields["rent_tenant_btn_configuration"]; ok {
		t.Error("configuration must be absent when the journey ends early")
	}
	if extra != "" {
		t.Errorf("extra = %q", extra)
	}
}

func TestFromSegment_RentTenantEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	seg := Segment{Messages: []transcript.Message{
		{Sender: "Bot", Text: "Welcome! How can we assist you today?", Timestamp: base},
		{Sender: "Alice", Text: "Rent", Timestamp: base.Add(10 * time.Second)},
		{Sender: "Alice", Text: "Tenant", Timestamp: base.Add(20 * time.Second)},
		{Sender: "Alice", Text: "Pune", Timestamp: base.Add(30 * time.Second)},
		{Sender: "Alice", Text: "2BHK", Timestamp: base.Add(40 * time.Second)},
		{Sender: "Alice", Text: "Kothrud", Timestamp: base.Add(50 * time.Second)},
		{Sender: "Alice", Text: "abc", Timestamp: base.Add(60 * time.Second)},
		{Sender: "Alice", Text: "25000", Timestamp: base.Add(70 * time.Second)},
		{Sender: "Alice", Text: "a@b.com", Timestamp: base.Add(80 * time.Second)},
		{Sender: "Alice", Text: "Immediately", Timestamp: base.Add(90 * time.Second)},
	}}

	rec, ok := cfg.FromSegment(seg, "919812345678.txt")
	if !ok {
		t.Fatal("expected a record")
	}

	if rec.Flow != FlowRentTenant {
		t.Fatalf("flow = %s, want RentTenant", rec.Flow)
	}
	if rec.Username != "Alice" {
		t.Errorf("username = %q", rec.Username)
	}
	if rec.MainSelection != "Rent" || rec.IntroSelection != "Tenant" {
		t.Errorf("selections = %q, %q", rec.MainSelection, rec.IntroSelection)
	}
	if rec.TotalMessages != 10 {
		t.Errorf("total_messages = %d, want 10", rec.TotalMessages)
	}
	if !rec.JourneyStart.Equal(base) || !rec.JourneyEnd.Equal(base.Add(90*time.Second)) {
		t.Errorf("journey span = %v .. %v", rec.JourneyStart, rec.JourneyEnd)
	}

	want := map[string]string{
		"rent_tenant_btn_city":           "Pune",
		"rent_tenant_btn_configuration":  "2BHK",
		"rent_tenant_txt_locality":       "Kothrud",
		"rent_tenant_txt_budget_correct": "25000",
		"rent_tenant_txt_budget_wrong":   "abc",
		"rent_tenant_txt_email":          "a@b.com",
		"rent_tenant_btn_est_move_in":    "Immediately",
	}
	for k, v := range want {
		if got := rec.Fields[k]; got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if rec.ExtraResponses != "" {
		t.Errorf("extra_responses = %q, want empty", rec.ExtraResponses)
	}
}

func TestFromSegment_GreetingsAndEmojiFiltered(t *testing.T) {
	cfg := DefaultConfig()

	seg := Segment{Messages: []transcript.Message{
		botMsg(prompt),
		userMsg("Hi!"),
		userMsg("Rent \U0001F600"),
		userMsg("Tenant"),
	}}

	rec, ok := cfg.FromSegment(seg, "chat.txt")
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.MainSelection != "Rent" {
		t.Errorf("main selection = %q, want Rent (greeting dropped, emoji stripped)", rec.MainSelection)
	}
	if rec.Flow != FlowRentTenant {
		t.Errorf("flow = %s", rec.Flow)
	}
}

func TestFromSegment_BotOnlySegmentSkipped(t *testing.T) {
	cfg := DefaultConfig()

	seg := Segment{Messages: []transcript.Message{
		botMsg(prompt),
		botMsg("still there?"),
	}}

	if _, ok := cfg.FromSegment(seg, "chat.txt"); ok {
		t.Error("expected no record for a bot-only segment")
	}
}

func TestFromSegment_GreetingOnlySegmentSkipped(t *testing.T) {
	cfg := DefaultConfig()

	seg := Segment{Messages: []transcript.Message{
		botMsg(prompt),
		userMsg("Hello!"),
	}}

	if _, ok := cfg.FromSegment(seg, "chat.txt"); ok {
		t.Error("expected no record when every user message is a greeting")
	}
}

func TestRecordFlatten(t *testing.T) {
	cfg := DefaultConfig()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seg := Segment{Messages: []transcript.Message{
		{Sender: "Bot", Text: prompt, Timestamp: base},
		{Sender: "Alice", Text: "Talk to expert", Timestamp: base.Add(time.Minute)},
	}}
	rec, ok := cfg.FromSegment(seg, "chat.txt")
	if !ok {
		t.Fatal("expected a record")
	}
	rec.Mobile = "919812345678"
	rec.Attempts = 3

	flat := rec.Flatten()
	if flat["flow"] != "TalkToExpert" {
		t.Errorf("flow = %v", flat["flow"])
	}
	if flat["journey_start"] != "2026-03-01T10:00:00Z" {
		t.Errorf("journey_start = %v, want canonical RFC 3339 text", flat["journey_start"])
	}
	if flat["message"] != "Talk to Expert selected" {
		t.Errorf("message = %v", flat["message"])
	}
	if flat["mobile_number"] != "919812345678" || flat["no_of_attempts"] != 3 {
		t.Errorf("envelope fields = %v, %v", flat["mobile_number"], flat["no_of_attempts"])
	}
	if flat["record_id"] == "" {
		t.Error("record_id missing")
	}
}
