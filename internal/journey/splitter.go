package journey

import (
	"strings"

	"github.com/rentmax/journeyd/internal/transcript"
)

// Segment is one journey's slice of a session: a menu-prompt message and
// everything up to (not including) the next prompt.
type Segment struct {
	Messages []transcript.Message
}

func (c Config) isBot(msg transcript.Message) bool {
	return strings.EqualFold(msg.Sender, c.BotSender)
}

// isMarker reports whether msg is an automated menu prompt.
func (c Config) isMarker(msg transcript.Message) bool {
	return c.isBot(msg) &&
		strings.Contains(strings.ToLower(msg.Text), strings.ToLower(c.MarkerPhrase))
}

// Split locates menu-prompt markers within a session and cuts it into
// journey segments. Markers are inclusive starts; the last segment runs to
// the session end. A session without markers yields nil.
func (c Config) Split(session transcript.Session) []Segment {
	var starts []int
	for i, msg := range session {
		if c.isMarker(msg) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil
	}

	segs := make([]Segment, 0, len(starts))
	for k, start := range starts {
		end := len(session)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		segs = append(segs, Segment{Messages: session[start:end]})
	}
	return segs
}
