package journey

import "testing"

func TestStripEmoji(t *testing.T) {
	got := StripEmoji("Rent \U0001F600\U0001F3E0 please \U0001F680")
	want := "Rent  please "
	if got != want {
		t.Errorf("StripEmoji = %q, want %q", got, want)
	}
}

func TestStripEmoji_LeavesPlainText(t *testing.T) {
	in := "2BHK in Kothrud, budget 25000"
	if got := StripEmoji(in); got != in {
		t.Errorf("StripEmoji changed plain text: %q", got)
	}
}

func TestIsGreeting(t *testing.T) {
	cfg := DefaultConfig()

	for _, s := range []string{"hi", "Hello!", "  HEY  ", "greetings...", "Hi!!!"} {
		if !cfg.isGreeting(s) {
			t.Errorf("expected %q to be a greeting", s)
		}
	}
	for _, s := range []string{"hi there", "rent", "", "hello world"} {
		if cfg.isGreeting(s) {
			t.Errorf("expected %q not to be a greeting", s)
		}
	}
}
