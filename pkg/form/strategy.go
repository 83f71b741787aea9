package form

import (
	"fmt"
	"strings"
)

// Strategy decides what happens after a submission validates
type Strategy int

const (
	// Remote posts to the backend API and reports its answer inline.
	Remote Strategy = iota
	// Local never touches the network and reports through alerts.
	Local
)

func (s Strategy) String() string {
	if s == Local {
		return "local"
	}
	return "remote"
}

// ParseStrategy parses "remote" or "local"
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "remote":
		return Remote, nil
	case "local":
		return Local, nil
	}
	return Remote, fmt.Errorf("unknown submission strategy %q", name)
}
