package usecase

import (
	"math"
	"sort"

	"github.com/nuchoate/league-archive/external/sleeper"
	"github.com/nuchoate/league-archive/internal/domain/recap"
)

// standingsBook accumulates win/loss records and points across weeks so
// cumulative standings come out of one pass over the season.
type standingsBook struct {
	names nameTable
	rows  map[int]*teamRecord
}

type teamRecord struct {
	rosterID     int
	wins         int
	losses       int
	ties         int
	pointsFor    float64
	pointsAgst   float64
	transactions int
}

func newStandingsBook(names nameTable) *standingsBook {
	book := &standingsBook{
		names: names,
		rows:  make(map[int]*teamRecord, len(names.teamNames)),
	}
	for rosterID := range names.teamNames {
		book.rows[rosterID] = &teamRecord{rosterID: rosterID}
	}
	return book
}

func (b *standingsBook) record(rosterID int) *teamRecord {
	row, ok := b.rows[rosterID]
	if !ok {
		row = &teamRecord{rosterID: rosterID}
		b.rows[rosterID] = row
	}
	return row
}

// applyMatchups folds one week of head-to-head results into the book.
// Unpaired matchup ids (bye weeks, malformed payloads) are skipped.
func (b *standingsBook) applyMatchups(matchups []sleeper.Matchup) {
	for _, pair := range pairMatchups(matchups) {
		one := b.record(pair[0].RosterID)
		two := b.record(pair[1].RosterID)

		one.pointsFor += pair[0].Points
		one.pointsAgst += pair[1].Points
		two.pointsFor += pair[1].Points
		two.pointsAgst += pair[0].Points

		switch {
		case pair[0].Points > pair[1].Points:
			one.wins++
			two.losses++
		case pair[1].Points > pair[0].Points:
			two.wins++
			one.losses++
		default:
			one.ties++
			two.ties++
		}
	}
}

// applyTransactions counts completed transactions per roster.
func (b *standingsBook) applyTransactions(transactions []sleeper.Transaction) {
	for _, tx := range transactions {
		if tx.Status != "complete" {
			continue
		}
		for _, rosterID := range tx.RosterIDs {
			b.record(rosterID).transactions++
		}
	}
}

// standings returns the current table sorted by wins, then points for,
// with team name as the final tiebreak so ordering stays stable.
func (b *standingsBook) standings() []recap.StandingRow {
	out := make([]recap.StandingRow, 0, len(b.rows))
	for _, row := range b.rows {
		out = append(out, recap.StandingRow{
			TeamName:      b.names.teamName(row.rosterID),
			Wins:          row.wins,
			Losses:        row.losses,
			Ties:          row.ties,
			PointsFor:     round2(row.pointsFor),
			PointsAgainst: round2(row.pointsAgst),
			Transactions:  row.transactions,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].PointsFor != out[j].PointsFor {
			return out[i].PointsFor > out[j].PointsFor
		}
		return out[i].TeamName < out[j].TeamName
	})

	for i := range out {
		out[i].Rank = i + 1
	}

	return out
}

// pairMatchups groups a week's entries by matchup id and keeps only the
// complete two-sided pairings, ordered by matchup id.
func pairMatchups(matchups []sleeper.Matchup) [][2]sleeper.Matchup {
	grouped := make(map[int][]sleeper.Matchup)
	for _, m := range matchups {
		if m.MatchupID == 0 || m.RosterID == 0 {
			continue
		}
		grouped[m.MatchupID] = append(grouped[m.MatchupID], m)
	}

	ids := make([]int, 0, len(grouped))
	for id, members := range grouped {
		if len(members) == 2 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([][2]sleeper.Matchup, 0, len(ids))
	for _, id := range ids {
		members := grouped[id]
		out = append(out, [2]sleeper.Matchup{members[0], members[1]})
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
