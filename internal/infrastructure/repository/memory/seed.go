package memory

import (
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
)

// SeedTeams is the directory a fresh in-memory store starts with.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Arsenal", ShortCode: "ARS", IsActive: true},
		{ID: 2, Name: "Liverpool", ShortCode: "LIV", IsActive: true},
		{ID: 3, Name: "Persija Jakarta", ShortCode: "PSJ", IsActive: true},
		{ID: 4, Name: "Persib Bandung", ShortCode: "PSB", IsActive: true},
		{ID: 5, Name: "Bali United", ShortCode: "BU", IsActive: false},
	}
}
