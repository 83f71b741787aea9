package feedback

// Channel is the mechanism a message is rendered through
type Channel int

const (
	// Inline renders into the page's message element.
	Inline Channel = iota
	// Alert renders as a modal alert.
	Alert
)

func (c Channel) String() string {
	switch c {
	case Inline:
		return "inline"
	case Alert:
		return "alert"
	}
	return "unknown"
}

// Tone decides the colour of an inline message
type Tone int

const (
	Neutral Tone = iota
	Success
	Failure
)

// Colours used by the inline channel.
const (
	ColorGreen = "green"
	ColorRed   = "red"
)

// Message is one piece of user-visible feedback
type Message struct {
	Text    string
	Tone    Tone
	Channel Channel
}

// Color returns the CSS colour of the message, or "" for neutral ones.
func (m Message) Color() string {
	switch m.Tone {
	case Success:
		return ColorGreen
	case Failure:
		return ColorRed
	}
	return ""
}

// Sink receives feedback for the user
type Sink interface {
	Show(Message)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Message)

func (f SinkFunc) Show(m Message) { f(m) }

// Recorder is a Sink that keeps every message it is shown.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Show(m Message) {
	r.Messages = append(r.Messages, m)
}

// Last returns the most recent message and whether there was one.
func (r *Recorder) Last() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
