package tournament

import (
	"fmt"

	"github.com/duotcg/tournament/src/domain/shared"
)

var (
	ErrNameRequired       = fmt.Errorf("%w: tournament name is required", shared.ErrValidation)
	ErrInvalidFormat      = fmt.Errorf("%w: unknown tournament format", shared.ErrValidation)
	ErrInvalidByePoints   = fmt.Errorf("%w: bye points must not be negative", shared.ErrValidation)
	ErrInvalidRoundLimit  = fmt.Errorf("%w: custom round limit must be positive", shared.ErrValidation)
	ErrTeamNameRequired   = fmt.Errorf("%w: team name is required", shared.ErrValidation)
	ErrPlayerNameRequired = fmt.Errorf("%w: both player names are required", shared.ErrValidation)
	ErrDuplicateTeamName  = fmt.Errorf("%w: team name already exists", shared.ErrValidation)
	ErrNotEnoughTeams     = fmt.Errorf("%w: need at least 2 teams to start tournament", shared.ErrValidation)
	ErrInvalidGameIndex   = fmt.Errorf("%w: game index out of range", shared.ErrValidation)
	ErrInvalidSide        = fmt.Errorf("%w: winner must be team1 or team2", shared.ErrValidation)
)

var (
	ErrTournamentActive    = fmt.Errorf("%w: tournament is already active", shared.ErrInvalidState)
	ErrTournamentComplete  = fmt.Errorf("%w: tournament is already complete", shared.ErrInvalidState)
	ErrTournamentNotActive = fmt.Errorf("%w: tournament is not active", shared.ErrInvalidState)
	ErrNoMatchesPlayed     = fmt.Errorf("%w: no matches have been played yet", shared.ErrInvalidState)
	ErrRoundIncomplete     = fmt.Errorf("%w: current round is incomplete", shared.ErrInvalidState)
	ErrScheduleExhausted   = fmt.Errorf("%w: round-robin schedule has no more rounds", shared.ErrInvalidState)
	ErrMatchComplete       = fmt.Errorf("%w: match already complete", shared.ErrInvalidState)
	ErrByeMatch            = fmt.Errorf("%w: cannot record result for a bye", shared.ErrInvalidState)
	ErrGameDecided         = fmt.Errorf("%w: game already has a winner", shared.ErrInvalidState)
	ErrDropUnsupported     = fmt.Errorf("%w: teams can only be dropped from an active swiss tournament", shared.ErrInvalidState)
	ErrTeamDropped         = fmt.Errorf("%w: team already dropped", shared.ErrInvalidState)
)

var (
	ErrTeamNotFound     = fmt.Errorf("%w: team not found", shared.ErrNotFound)
	ErrMatchNotFound    = fmt.Errorf("%w: match not found", shared.ErrNotFound)
	ErrSnapshotNotFound = fmt.Errorf("%w: no saved tournament", shared.ErrNotFound)
)
