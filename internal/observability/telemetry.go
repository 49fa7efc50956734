// Package observability starts the optional tracing and profiling backends
// a binary runs with and tears them down in reverse order.
package observability

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

const pprofStopTimeout = 5 * time.Second

// Telemetry owns whatever Start switched on. The zero value is a no-op.
type Telemetry struct {
	logger   *logging.Logger
	stoppers []stopper
}

type stopper struct {
	name string
	stop func(context.Context) error
}

// Start brings up Uptrace, Pyroscope and the pprof listener according to cfg.
// When one of them fails the ones already running are stopped before the
// error is returned.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", start: startTracing},
		{name: "pyroscope", start: startProfiler},
		{name: "pprof", start: startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, errors.Wrapf(err, "start %s", step.name)
		}
		if stop != nil {
			t.stoppers = append(t.stoppers, stopper{name: step.name, stop: stop})
		}
	}
	return t, nil
}

// Shutdown stops every backend, last started first, and reports all failures.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var combined error
	for i := len(t.stoppers) - 1; i >= 0; i-- {
		s := t.stoppers[i]
		if err := s.stop(ctx); err != nil {
			combined = errors.CombineErrors(combined, errors.Wrapf(err, "stop %s", s.name))
		}
	}
	t.stoppers = nil
	return combined
}

// Active lists the running backends in start order.
func (t *Telemetry) Active() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.stoppers))
	for _, s := range t.stoppers {
		names = append(names, s.name)
	}
	return names
}
