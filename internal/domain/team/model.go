package team

import "strings"

// Team is a club that can be scheduled into fixtures.
type Team struct {
	ID        int64
	Name      string
	ShortCode string
	CrestURL  string
	IsActive  bool
}

// SortField names the orderings a team listing accepts.
type SortField string

const (
	SortByName      SortField = "name"
	SortByShortCode SortField = "shortcode"
)

// Filter narrows a team listing. Nil pointers mean "any".
type Filter struct {
	IsActive   *bool
	ShortCode  string
	Sort       SortField
	Descending bool
}

func (f Filter) Matches(t Team) bool {
	if f.IsActive != nil && t.IsActive != *f.IsActive {
		return false
	}
	if code := strings.TrimSpace(f.ShortCode); code != "" && !strings.EqualFold(t.ShortCode, code) {
		return false
	}
	return true
}
