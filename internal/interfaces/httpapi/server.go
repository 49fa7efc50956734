package httpapi

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled bool
	// APIVersion is stamped into the served OpenAPI document.
	APIVersion         string
	CORSAllowedOrigins []string
	// ImportLimiter throttles the stats import endpoint; nil disables it.
	ImportLimiter *rate.Limiter
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) (http.Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var docs *apiDocs
	if cfg.SwaggerEnabled {
		var err error
		if docs, err = newAPIDocs(cfg.APIVersion); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, docs)
	registerScheduleRoutes(mux, handler)
	registerPlayerStatsRoutes(mux, handler, cfg.ImportLimiter)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))), nil
}
