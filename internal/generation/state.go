package generation

// User-visible messages. These are shown verbatim by every surface.
const (
	MsgEmptyTopic        = "Please enter a topic first"
	MsgGenerationFailed  = "Failed to generate post. Please try again."
	MsgConnectionFailure = "Error connecting to AI. Please check your connection and try again."
)

// State is the session state of one generator.
type State struct {
	Topic        string `json:"topic"`
	Result       string `json:"result"`
	InFlight     bool   `json:"in_flight"`
	ErrorMessage string `json:"error,omitempty"`
}

// Event is a state transition. Transitions are pure: they never touch
// anything outside the State they are given.
type Event interface {
	apply(State) State
}

// Next returns the state that follows s after e.
func Next(s State, e Event) State {
	return e.apply(s)
}

// TopicChanged records user input.
type TopicChanged struct{ Topic string }

func (e TopicChanged) apply(s State) State {
	s.Topic = e.Topic
	return s
}

// Rejected reports a validation failure. No request is made, so the
// in-flight flag and result are left as they are.
type Rejected struct{ Message string }

func (e Rejected) apply(s State) State {
	s.ErrorMessage = e.Message
	return s
}

// Started begins an attempt.
type Started struct{}

func (Started) apply(s State) State {
	s.ErrorMessage = ""
	s.Result = ""
	s.InFlight = true
	return s
}

// Succeeded stores generated text.
type Succeeded struct{ Text string }

func (e Succeeded) apply(s State) State {
	s.Result = e.Text
	s.ErrorMessage = ""
	return s
}

// Failed stores a user-visible failure message.
type Failed struct{ Message string }

func (e Failed) apply(s State) State {
	s.Result = ""
	s.ErrorMessage = e.Message
	return s
}

// Finished ends an attempt whatever its outcome.
type Finished struct{}

func (Finished) apply(s State) State {
	s.InFlight = false
	return s
}

// Cleared empties the result only.
type Cleared struct{}

func (Cleared) apply(s State) State {
	s.Result = ""
	return s
}
