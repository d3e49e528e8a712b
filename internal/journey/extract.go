package journey

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rentmax/journeyd/internal/transcript"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ExtractFields walks texts from the extraction cursor (index 2: the main
// and intro selections are already consumed by classification) through the
// flow's slot table. It returns the populated fields and the leftover
// responses joined with "; ".
func ExtractFields(flow Flow, texts []string) (fields map[string]string, extra string) {
	spec := flowSpecs[flow]
	fields = make(map[string]string, len(spec.Slots)+len(spec.Fixed))
	for k, v := range spec.Fixed {
		fields[k] = v
	}

	i := 2
	for _, s := range spec.Slots {
		if i >= len(texts) {
			break
		}
		switch s.Kind {
		case slotPlain:
			fields[s.Key] = texts[i]
			i++
		case slotBranch:
			val := texts[i]
			fields[s.Key] = val
			i++
			if strings.EqualFold(strings.TrimSpace(val), "more") && i < len(texts) {
				fields[s.MoreKey] = texts[i]
				i++
			}
		case slotNumeric:
			var wrong []string
			for i < len(texts) {
				if digitsOnly.MatchString(texts[i]) {
					fields[s.Key] = texts[i]
					i++
					break
				}
				wrong = append(wrong, texts[i])
				i++
			}
			if len(wrong) > 0 {
				fields[s.WrongKey] = strings.Join(wrong, "; ")
			}
		case slotConditional:
			if containsAny(strings.ToLower(fields[s.DependsOn]), s.Triggers) {
				fields[s.Key] = texts[i]
				i++
			}
		}
	}

	if i < len(texts) {
		extra = strings.Join(texts[i:], "; ")
	}
	return fields, extra
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FromSegment builds a Record from one journey segment. ok is false when
// the segment has no usable user responses (bot-only, or everything was a
// greeting), in which case no record is produced.
func (c Config) FromSegment(seg Segment, fileName string) (rec *Record, ok bool) {
	var nonBot []transcript.Message
	for _, m := range seg.Messages {
		if !c.isBot(m) {
			nonBot = append(nonBot, m)
		}
	}
	if len(nonBot) == 0 {
		return nil, false
	}

	texts := make([]string, 0, len(nonBot))
	for _, m := range nonBot {
		t := strings.TrimSpace(StripEmoji(m.Text))
		if c.isGreeting(t) {
			continue
		}
		texts = append(texts, t)
	}
	if len(texts) == 0 {
		return nil, false
	}

	mainSel := texts[0]
	introSel := ""
	if len(texts) > 1 {
		introSel = texts[1]
	}
	flow := DetectFlow(mainSel, introSel)
	fields, extra := ExtractFields(flow, texts)

	first := seg.Messages[0]
	last := seg.Messages[len(seg.Messages)-1]
	return &Record{
		ID:             uuid.New(),
		File:           fileName,
		Username:       nonBot[0].Sender,
		Flow:           flow,
		JourneyStart:   first.Timestamp,
		JourneyEnd:     last.Timestamp,
		TotalMessages:  len(seg.Messages),
		MainSelection:  mainSel,
		IntroSelection: introSel,
		ExtraResponses: extra,
		Fields:         fields,
	}, true
}
