package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

const dateLayout = "2006-01-02"

// pathID parses the {id} segment. Range checks stay in the usecase so the
// message matches the operation.
func pathID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, rule.Structural("id", "ID must be an integer")
	}
	return id, nil
}

func queryInt64(q url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, rule.Structural(key, "%s must be an integer", key)
	}
	return v, nil
}

func queryInt(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, rule.Structural(key, "%s must be an integer", key)
	}
	return v, nil
}

func queryBool(q url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, rule.Structural(key, "%s must be true or false", key)
	}
	return &v, nil
}

func queryDate(q url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := parseDate(raw)
	if err != nil {
		return nil, rule.Structural(key, "%s must be a date (YYYY-MM-DD)", key)
	}
	return &v, nil
}

// queryDescending reads order=asc|desc; empty is ascending.
func queryDescending(q url.Values) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(q.Get("order"))) {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, rule.Structural("order", "Order must be 'asc' or 'desc'")
	}
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
