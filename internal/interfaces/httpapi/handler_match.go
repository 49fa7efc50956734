package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
)

const defaultMatchLimit = 50

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter, err := matchFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "list matches", err)
		return
	}

	items := make([]matchDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, pageDTO[matchDTO]{Items: items, Pagination: paginationToDTO(page.Page)})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Get(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get match", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.matchService.Create(ctx, fixture.CreateCommand{
		GameweekID: req.GameweekID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		MatchDate:  *req.MatchDate,
		Status:     parseMatchStatus(req.Status),
	})
	if err != nil {
		h.fail(ctx, w, "create match", err)
		return
	}
	w.Header().Set("Location", "/v1/matches/"+itoa(item.ID))
	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cmd := fixture.UpdateCommand{
		ID:                    id,
		GameweekID:            req.GameweekID,
		HomeTeamID:            req.HomeTeamID,
		AwayTeamID:            req.AwayTeamID,
		MatchDate:             req.MatchDate,
		HomeScore:             req.HomeScore,
		AwayScore:             req.AwayScore,
		RescheduleReason:      req.RescheduleReason,
		ClearRescheduleReason: req.ClearRescheduleReason,
	}
	if req.Status != nil {
		status := parseMatchStatus(*req.Status)
		cmd.Status = &status
	}

	item, err := h.matchService.Update(ctx, cmd)
	if err != nil {
		h.fail(ctx, w, "update match", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func matchFilterFromQuery(r *http.Request) (fixture.Filter, error) {
	q := r.URL.Query()
	var (
		filter fixture.Filter
		err    error
	)
	if filter.GameweekID, err = queryInt64(q, "gameweekId"); err != nil {
		return fixture.Filter{}, err
	}
	if filter.TeamID, err = queryInt64(q, "teamId"); err != nil {
		return fixture.Filter{}, err
	}
	filter.Status = parseMatchStatus(q.Get("status"))
	if filter.DateFrom, err = queryDate(q, "dateFrom"); err != nil {
		return fixture.Filter{}, err
	}
	if filter.DateTo, err = queryDate(q, "dateTo"); err != nil {
		return fixture.Filter{}, err
	}
	if filter.Sort, err = fixture.ParseSort(q.Get("sort")); err != nil {
		return fixture.Filter{}, err
	}
	if filter.Descending, err = queryDescending(q); err != nil {
		return fixture.Filter{}, err
	}
	if filter.Page, err = queryInt(q, "page", 1); err != nil {
		return fixture.Filter{}, err
	}
	if filter.Limit, err = queryInt(q, "limit", defaultMatchLimit); err != nil {
		return fixture.Filter{}, err
	}
	return filter, nil
}

// parseMatchStatus maps any casing onto a known status. Unknown values pass
// through unchanged so the scheduler rejects them with its own message, and
// empty lets it apply the default.
func parseMatchStatus(raw string) fixture.Status {
	raw = strings.TrimSpace(raw)
	if status, ok := fixture.ParseStatus(raw); ok {
		return status
	}
	return fixture.Status(raw)
}
