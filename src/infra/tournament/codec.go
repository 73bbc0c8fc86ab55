package tournament

import (
	"encoding/json"
	"fmt"

	"github.com/duotcg/tournament/src/domain/shared"
	"github.com/duotcg/tournament/src/domain/tournament"
)

// Encode serializes the whole tournament as one JSON document.
func Encode(t *tournament.Tournament) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode tournament: %v", shared.ErrPersistence, err)
	}
	return data, nil
}

// Decode parses a document written by Encode and checks that it describes
// a consistent tournament.
func Decode(data []byte) (*tournament.Tournament, error) {
	t := tournament.New()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("%w: decode tournament: %v", shared.ErrPersistence, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid tournament: %v", shared.ErrPersistence, err)
	}
	return t, nil
}
