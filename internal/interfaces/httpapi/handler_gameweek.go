package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	q := r.URL.Query()
	filter := gameweek.Filter{}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		status, ok := gameweek.ParseStatus(raw)
		if !ok {
			writeError(ctx, w, rule.Structural("status", "Status must be 'Upcoming', 'Current' or 'Completed'"))
			return
		}
		filter.Status = status
	}
	sort, err := gameweek.ParseSort(q.Get("sort"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter.Sort = sort
	if filter.Descending, err = queryDescending(q); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.gameweekService.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "list gameweeks", err)
		return
	}

	out := make([]gameweekDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameweekToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweek")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameweekService.Get(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get gameweek", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameweekDetailToDTO(item))
}

func (h *Handler) CreateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameweek")
	defer span.End()

	input, err := h.gameweekInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameweekService.Create(ctx, input)
	if err != nil {
		h.fail(ctx, w, "create gameweek", err)
		return
	}
	w.Header().Set("Location", "/v1/gameweeks/"+itoa(item.ID))
	writeSuccess(ctx, w, http.StatusCreated, gameweekToDTO(item))
}

func (h *Handler) UpdateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameweek")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := h.gameweekInput(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameweekService.Update(ctx, id, input)
	if err != nil {
		h.fail(ctx, w, "update gameweek", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(item))
}

func (h *Handler) DeleteGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGameweek")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.gameweekService.Delete(ctx, id); err != nil {
		h.fail(ctx, w, "delete gameweek", err)
		return
	}
	writeNoContent(w)
}

func (h *Handler) gameweekInput(ctx context.Context, r *http.Request) (usecase.GameweekInput, error) {
	var req gameweekRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		return usecase.GameweekInput{}, err
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.GameweekInput{}, err
	}

	start, err := parseDate(strings.TrimSpace(req.StartDate))
	if err != nil {
		return usecase.GameweekInput{}, rule.Structural("startDate", "startDate must be a date (YYYY-MM-DD)")
	}
	end, err := parseDate(strings.TrimSpace(req.EndDate))
	if err != nil {
		return usecase.GameweekInput{}, rule.Structural("endDate", "endDate must be a date (YYYY-MM-DD)")
	}
	return usecase.GameweekInput{Number: req.Number, StartDate: start, EndDate: end}, nil
}
