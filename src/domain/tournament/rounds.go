package tournament

// officialRounds maps the upper bound of a team count bracket to the
// number of swiss rounds the official rules call for.
var officialRounds = []struct {
	maxTeams int
	rounds   int
}{
	{8, 3},
	{16, 4},
	{32, 5},
	{64, 6},
	{128, 7},
	{256, 8},
	{512, 9},
	{1024, 10},
}

// OfficialSwissRounds returns the recommended number of swiss rounds for
// teamCount teams. It is advisory; nothing stops a tournament early or late.
func OfficialSwissRounds(teamCount int) int {
	for _, bracket := range officialRounds {
		if teamCount <= bracket.maxTeams {
			return bracket.rounds
		}
	}
	return 11
}
