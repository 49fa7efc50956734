package usecase

import (
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

// Rule rejections match these sentinels through errors.Is, so callers only
// need one switch for both domain verdicts and usecase failures.
var (
	ErrInvalidInput          = rule.ErrStructural
	ErrNotFound              = rule.ErrNotFound
	ErrConflict              = rule.ErrConflict
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
