package engine

import (
	"sort"

	"github.com/matchday-app/matchday/internal/model"
)

// CalculateStandings derives the league table from completed matches.
// It is a pure function: given the same matches, teams and point
// weights it always returns the identical table. Every team gets a
// zero row; each completed match is folded exactly once. Ordering is
// points descending, then goal difference, then goals for, with the
// stable sort keeping team order for full ties.
func CalculateStandings(matches []model.Match, teams []model.Team, settings model.GameSettings) []model.Standing {
	rows := make([]model.Standing, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		rows[i] = model.Standing{TeamID: t.ID}
		index[t.ID] = i
	}

	for _, m := range matches {
		if m.Status != model.MatchCompleted {
			continue
		}
		ai, aok := index[m.TeamAID]
		bi, bok := index[m.TeamBID]
		if !aok || !bok {
			// Result references a team that no longer exists; skip it.
			continue
		}
		fold(&rows[ai], m.ScoreA, m.ScoreB, settings)
		fold(&rows[bi], m.ScoreB, m.ScoreA, settings)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	return rows
}

func fold(row *model.Standing, scored, conceded int, settings model.GameSettings) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Won++
		row.Points += settings.WinPoints
	case scored == conceded:
		row.Drawn++
		row.Points += settings.DrawPoints
	default:
		row.Lost++
		row.Points += settings.LossPoints
	}
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
}
