package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	q := r.URL.Query()
	active, err := queryBool(q, "isActive")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	sort, err := team.ParseSort(q.Get("sort"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	desc, err := queryDescending(q)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.teamService.List(ctx, team.Filter{
		IsActive:   active,
		ShortCode:  q.Get("shortCode"),
		Sort:       sort,
		Descending: desc,
	})
	if err != nil {
		h.fail(ctx, w, "list teams", err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Get(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get team", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	input, err := h.teamInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, input)
	if err != nil {
		h.fail(ctx, w, "create team", err)
		return
	}
	w.Header().Set("Location", "/v1/teams/"+itoa(item.ID))
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := h.teamInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, id, input)
	if err != nil {
		h.fail(ctx, w, "update team", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) teamInput(ctx context.Context, r *http.Request) (usecase.TeamInput, error) {
	var req teamRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		return usecase.TeamInput{}, err
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.TeamInput{}, err
	}
	return usecase.TeamInput{
		Name:      req.Name,
		ShortCode: req.ShortCode,
		CrestURL:  req.CrestURL,
		IsActive:  req.IsActive,
	}, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
