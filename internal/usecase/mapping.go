package usecase

import (
	"fmt"

	"github.com/nuchoate/league-archive/external/sleeper"
)

// nameTable resolves provider ids to display names. Lookups never fail:
// unknown rosters become "Team <id>" and unknown players keep their id,
// which also covers team-defense ids like "BAL".
type nameTable struct {
	playerNames     map[string]string
	playerPositions map[string][]string
	teamNames       map[int]string
}

func buildNameTable(players map[string]sleeper.Player, users []sleeper.User, rosters []sleeper.Roster) nameTable {
	table := nameTable{
		playerNames:     make(map[string]string, len(players)),
		playerPositions: make(map[string][]string, len(players)),
		teamNames:       make(map[int]string, len(rosters)),
	}

	for id, player := range players {
		if name := playerDisplayName(player); name != "" {
			table.playerNames[id] = name
		}
		if len(player.FantasyPositions) > 0 {
			table.playerPositions[id] = player.FantasyPositions
		}
	}

	userTeams := make(map[string]string, len(users))
	for _, user := range users {
		if user.UserID == "" {
			continue
		}
		if user.Metadata.TeamName != "" {
			userTeams[user.UserID] = user.Metadata.TeamName
		} else {
			userTeams[user.UserID] = "Team " + user.DisplayName
		}
	}

	for _, roster := range rosters {
		if roster.RosterID == 0 {
			continue
		}
		if name, ok := userTeams[roster.OwnerID]; ok {
			table.teamNames[roster.RosterID] = name
		} else if roster.OwnerID != "" {
			table.teamNames[roster.RosterID] = "Team " + roster.OwnerID
		}
	}

	return table
}

func (t nameTable) playerName(id string) string {
	if name, ok := t.playerNames[id]; ok {
		return name
	}
	return id
}

func (t nameTable) teamName(rosterID int) string {
	if name, ok := t.teamNames[rosterID]; ok {
		return name
	}
	return fmt.Sprintf("Team %d", rosterID)
}

func (t nameTable) positions(id string) []string {
	return t.playerPositions[id]
}

func playerDisplayName(player sleeper.Player) string {
	if player.FullName != "" {
		return player.FullName
	}
	if player.FirstName != "" || player.LastName != "" {
		name := player.FirstName
		if player.LastName != "" {
			if name != "" {
				name += " "
			}
			name += player.LastName
		}
		return name
	}
	return ""
}
