package shared

import (
	"errors"
	"strings"
)

// ID types keep domain entities distinct. Team ids are small integers
// assigned in registration order; match ids are opaque strings.
type (
	TeamID  int
	MatchID string
)

// Validate ensures team ids are positive.
func (id TeamID) Validate() error {
	if id <= 0 {
		return errors.New("team id must be positive")
	}
	return nil
}

// Validate ensures match ids are not blank.
func (id MatchID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return errors.New("match id is required")
	}
	return nil
}
