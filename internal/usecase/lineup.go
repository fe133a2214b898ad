package usecase

import "sort"

const (
	positionRB   = "RB"
	positionWR   = "WR"
	positionTE   = "TE"
	positionFlex = "FLEX"
	positionBN   = "BN"
)

var flexEligible = map[string]bool{
	positionRB: true,
	positionWR: true,
	positionTE: true,
}

// optimalLineupPoints computes the best possible starting-lineup total
// for one team given everything on its roster that week. Slots are
// filled greedily in roster order, highest scorer first; FLEX draws
// from the remaining RB/WR/TE pool. Bench slots are ignored.
func optimalLineupPoints(playersPoints map[string]float64, names nameTable, rosterPositions []string) float64 {
	type candidate struct {
		playerID string
		points   float64
	}

	candidates := make([]candidate, 0, len(playersPoints))
	for playerID, points := range playersPoints {
		candidates = append(candidates, candidate{playerID: playerID, points: points})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].points != candidates[j].points {
			return candidates[i].points > candidates[j].points
		}
		return candidates[i].playerID < candidates[j].playerID
	})

	eligible := func(playerID, slot string) bool {
		positions := names.positions(playerID)
		if slot == positionFlex {
			for _, pos := range positions {
				if flexEligible[pos] {
					return true
				}
			}
			return false
		}
		for _, pos := range positions {
			if pos == slot {
				return true
			}
		}
		return false
	}

	used := make(map[string]bool, len(rosterPositions))
	total := 0.0
	for _, slot := range rosterPositions {
		if slot == positionBN {
			continue
		}
		for _, c := range candidates {
			if used[c.playerID] || !eligible(c.playerID, slot) {
				continue
			}
			used[c.playerID] = true
			total += c.points
			break
		}
	}

	return total
}
