package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

const defaultImportMaxBytes int64 = 10 << 20

type Handler struct {
	gameweekService    *usecase.GameweekService
	teamService        *usecase.TeamService
	matchService       *usecase.MatchService
	playerStatsService *usecase.PlayerStatsService
	importMaxBytes     int64
	logger             *logging.Logger
	validator          *validator.Validate
}

type HandlerOption func(*Handler)

// WithImportMaxBytes caps the size of an uploaded stats file.
func WithImportMaxBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.importMaxBytes = n
		}
	}
}

func NewHandler(
	gameweekService *usecase.GameweekService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	playerStatsService *usecase.PlayerStatsService,
	logger *logging.Logger,
	opts ...HandlerOption,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	h := &Handler{
		gameweekService:    gameweekService,
		teamService:        teamService,
		matchService:       matchService,
		playerStatsService: playerStatsService,
		importMaxBytes:     defaultImportMaxBytes,
		logger:             logger,
		validator:          v,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a single JSON object into dst, refusing unknown fields.
func decodeJSON(r io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return rule.Structural("body", "Invalid JSON payload: %s", err.Error())
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return rule.Structural("body", "Validation failed: %s", err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return rule.Structural(fe.Field(), "%s is required", fe.Field())
	case "max":
		return rule.Structural(fe.Field(), "%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "url", "http_url":
		return rule.Structural(fe.Field(), "%s must be a valid URL", fe.Field())
	default:
		return rule.Structural(fe.Field(), "%s is invalid", fe.Field())
	}
}

// fail logs err at the level its kind deserves and writes it.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if _, ok := rule.As(err); ok {
		h.logger.DebugContext(ctx, op+" rejected", "error", err)
	} else {
		h.logger.ErrorContext(ctx, op+" failed", "error", err)
	}
	writeError(ctx, w, err)
}
