package team

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

const (
	MaxNameLength      = 100
	MaxShortCodeLength = 10
	MaxCrestURLLength  = 500
)

// ValidateFields checks the shape of a create or update command.
func ValidateFields(name, shortCode, crestURL string) error {
	if strings.TrimSpace(name) == "" {
		return rule.Structural("name", "Name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return rule.Structural("name", "Team name cannot exceed 100 characters")
	}
	if strings.TrimSpace(shortCode) == "" {
		return rule.Structural("shortCode", "ShortCode is required")
	}
	if utf8.RuneCountInString(shortCode) > MaxShortCodeLength {
		return rule.Structural("shortCode", "Short code cannot exceed 10 characters")
	}
	if crestURL == "" {
		return nil
	}
	if utf8.RuneCountInString(crestURL) > MaxCrestURLLength {
		return rule.Structural("crestUrl", "Crest URL cannot exceed 500 characters")
	}
	parsed, err := url.Parse(crestURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return rule.Structural("crestUrl", "Crest URL must be a valid URL")
	}
	return nil
}

// ValidateUnique enforces case-insensitive names and exact short codes
// across all teams except excludingID.
func ValidateUnique(name, shortCode string, existing []Team, excludingID int64) error {
	for _, t := range existing {
		if t.ID != excludingID && strings.EqualFold(t.Name, name) {
			return rule.Conflict("name", "A team named '%s' already exists", name)
		}
	}
	for _, t := range existing {
		if t.ID != excludingID && t.ShortCode == shortCode {
			return rule.Conflict("shortCode", "Short code '%s' already exists", shortCode)
		}
	}
	return nil
}

// ValidateActive rejects scheduling an inactive team. side is "Home" or "Away".
func ValidateActive(t Team, side string) error {
	if !t.IsActive {
		return rule.Conflict(strings.ToLower(side)+"TeamId", "%s team '%s' is not active", side, t.Name)
	}
	return nil
}
