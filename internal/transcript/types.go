package transcript

import "time"

// Message is a single parsed transcript line. Timestamp is the zero value
// when the bracketed text could not be parsed; such messages are kept but
// cannot participate in gap computation.
type Message struct {
	Timestamp time.Time
	Sender    string
	Text      string
	Line      int // absolute 0-based line index in the source file
}

// Session is an ordered, non-empty run of messages with no inactivity gap
// exceeding the configured threshold.
type Session []Message
