package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/duotcg/tournament/src/app/tournaments"
	"github.com/duotcg/tournament/src/domain/ranking"
	"github.com/duotcg/tournament/src/domain/tournament"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func renderStatus(w io.Writer, st tournaments.Status) {
	name := st.Name
	if name == "" {
		name = "(not initialized)"
	}
	var phase string
	switch st.Phase {
	case tournaments.PhaseActive:
		phase = fmt.Sprintf("Round %d in progress", st.CurrentRound)
		if st.RoundComplete {
			phase = fmt.Sprintf("Round %d complete, next round available", st.CurrentRound)
		}
	case tournaments.PhaseComplete:
		phase = "Tournament complete"
	default:
		phase = "Tournament not started"
	}
	rounds := strconv.Itoa(st.PlannedRounds) + " (official)"
	if st.CustomRoundLimit != nil {
		rounds = strconv.Itoa(*st.CustomRoundLimit) + " (custom)"
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Tournament:\t%s\n", name)
	fmt.Fprintf(tw, "Format:\t%s\n", st.Format)
	fmt.Fprintf(tw, "Status:\t%s\n", phase)
	fmt.Fprintf(tw, "Planned rounds:\t%s\n", rounds)
	fmt.Fprintf(tw, "BYE points:\t%d\n", st.ByePoints)
	fmt.Fprintf(tw, "Teams:\t%d (%d active)\n", st.Teams, st.ActiveTeams)
	fmt.Fprintf(tw, "Completed matches:\t%d\n", st.CompletedMatches)
	tw.Flush()
}

func renderTeams(w io.Writer, teams []tournament.Team) {
	if len(teams) == 0 {
		fmt.Fprintln(w, "No teams registered")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTeam\tPlayer 1\tPlayer 2\t")
	for _, team := range teams {
		name := team.Name
		if team.IsSolo {
			name += " (solo)"
		}
		if team.Dropped {
			name += " (dropped)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", team.ID, name, team.Player1Name, team.Player2Name)
	}
	tw.Flush()
}

func renderStandings(w io.Writer, rows []ranking.Standing) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No teams registered")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tTeam\tPoints\tOMW%\tOOMW%\tMatches\t")
	for _, row := range rows {
		name := row.Team.Name
		if row.Team.ByeCount > 0 {
			name = fmt.Sprintf("%s (%d BYE)", name, row.Team.ByeCount)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%d\t\n",
			row.Rank, name, row.Team.Points, percent(row.OMW), percent(row.OOMW), row.Team.MatchesPlayed())
	}
	tw.Flush()
}

func renderMatches(w io.Writer, st tournaments.Status, matches []tournament.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches in current round")
		return
	}
	fmt.Fprintf(w, "Round %d\n", st.CurrentRound)
	for _, m := range matches {
		renderMatch(w, m)
	}
}

func renderMatch(w io.Writer, m tournament.Match) {
	if m.IsBye {
		fmt.Fprintf(w, "[%s] %s receives a BYE (%d points)\n", m.ID, m.Team1.Name, m.Team1Points)
		return
	}
	state := ""
	if m.IsComplete {
		state = "  complete"
	}
	fmt.Fprintf(w, "[%s] %s %d - %d %s%s\n", m.ID, m.Team1.Name, m.Team1Points, m.Team2Points, m.Team2.Name, state)
	tw := newTable(w)
	for i, g := range m.Games {
		priority := ""
		if g.IsPriority {
			priority = "PRIORITY"
		}
		winner := "-"
		switch g.Winner {
		case tournament.SideTeam1:
			winner = g.Player1Name
		case tournament.SideTeam2:
			winner = g.Player2Name
		}
		fmt.Fprintf(tw, "    Game %d:\t%s vs %s\t%s\twinner: %s\t\n", i+1, g.Player1Name, g.Player2Name, priority, winner)
	}
	tw.Flush()
}

func renderHistory(w io.Writer, matches []tournament.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No completed matches yet")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Round\tTeam 1\tScore\tTeam 2\tWinner\t")
	for _, m := range matches {
		if m.IsBye {
			fmt.Fprintf(tw, "%d\t%s\t%d\t(BYE)\t%s\t\n", m.Round, m.Team1.Name, m.Team1Points, m.Team1.Name)
			continue
		}
		winner := "Draw"
		switch m.Winner() {
		case tournament.SideTeam1:
			winner = m.Team1.Name
		case tournament.SideTeam2:
			winner = m.Team2.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%d - %d\t%s\t%s\t\n", m.Round, m.Team1.Name, m.Team1Points, m.Team2Points, m.Team2.Name, winner)
	}
	tw.Flush()
}
