package form

// State is a step of a single submission.
// Idle -> Validating -> Rejected | Submitting -> Succeeded | Failed
type State int

const (
	Idle State = iota
	Validating
	Rejected
	Submitting
	Succeeded
	Failed
)

var stateNames = [...]string{
	Idle:       "idle",
	Validating: "validating",
	Rejected:   "rejected",
	Submitting: "submitting",
	Succeeded:  "succeeded",
	Failed:     "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == Rejected || s == Succeeded || s == Failed
}
