package transcript

import "time"

// SplitSessions partitions messages into sessions separated by inactivity
// gaps longer than threshold. Message order is preserved and every message
// lands in exactly one session. A pair with a missing timestamp on either
// side cannot produce a gap and continues the current session.
func SplitSessions(msgs []Message, threshold time.Duration) []Session {
	if len(msgs) == 0 {
		return nil
	}

	var sessions []Session
	current := Session{msgs[0]}
	for _, msg := range msgs[1:] {
		prev := current[len(current)-1]
		if !prev.Timestamp.IsZero() && !msg.Timestamp.IsZero() &&
			msg.Timestamp.Sub(prev.Timestamp) > threshold {
			sessions = append(sessions, current)
			current = Session{msg}
			continue
		}
		current = append(current, msg)
	}
	return append(sessions, current)
}
