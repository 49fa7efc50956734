package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

// logRejection records a domain verdict at WARN. Other errors are left to the caller.
func logRejection(ctx context.Context, logger *logging.Logger, op string, err error) {
	rej, ok := rule.As(err)
	if !ok {
		return
	}
	logger.WarnContext(ctx, "command rejected",
		"op", op,
		"kind", string(rej.Kind),
		"field", rej.Field,
		"reason", rej.Message,
	)
}
