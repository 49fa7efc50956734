package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/fantasy-coach/internal/config"
	"github.com/riskibarqy/fantasy-coach/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-coach/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-coach/internal/domain/team"
	repocache "github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/cache"
	repocircuit "github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/circuit"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-coach/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-coach/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-coach/internal/platform/id"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
	"github.com/riskibarqy/fantasy-coach/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

// Container holds the services every binary shares.
type Container struct {
	GameweekService    *usecase.GameweekService
	TeamService        *usecase.TeamService
	MatchService       *usecase.MatchService
	PlayerStatsService *usecase.PlayerStatsService

	db *sqlx.DB
}

type repositories struct {
	gameweeks gameweek.Repository
	teams     team.Repository
	matches   fixture.Repository
	stats     playerstats.Repository
}

// Build opens the configured store and wires the services on top of it.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{}
	var repos repositories
	switch cfg.StoreDriver {
	case config.StoreMemory:
		repos = memoryRepositories()
	case config.StorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
		repos = postgresRepositories(db)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	// The breaker sits below the cache so cached reads survive an open circuit.
	breaker := resilience.FromConfig(cfg.StoreCircuit, resilience.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("store circuit changed state", "from", string(from), "to", string(to))
	}))
	if breaker != nil {
		repos.gameweeks = repocircuit.NewGameweekRepository(repos.gameweeks, breaker)
		repos.teams = repocircuit.NewTeamRepository(repos.teams, breaker)
		repos.matches = repocircuit.NewMatchRepository(repos.matches, breaker)
		repos.stats = repocircuit.NewPlayerStatsRepository(repos.stats, breaker)
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.gameweeks = repocache.NewGameweekRepository(repos.gameweeks, store)
		repos.teams = repocache.NewTeamRepository(repos.teams, store)
	}

	c.GameweekService = usecase.NewGameweekService(repos.gameweeks, repos.matches, repos.teams, logger)
	c.TeamService = usecase.NewTeamService(repos.teams, logger)
	c.MatchService = usecase.NewMatchService(repos.matches, repos.gameweeks, repos.teams, logger)
	c.PlayerStatsService = usecase.NewPlayerStatsService(repos.stats, idgen.NewUUIDGenerator(), logger)

	logger.Info("services wired",
		"store", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"store_circuit_enabled", breaker != nil,
	)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func memoryRepositories() repositories {
	gameweeks := memory.NewGameweekRepository(nil)
	return repositories{
		gameweeks: gameweeks,
		teams:     memory.NewTeamRepository(memory.SeedTeams()),
		matches:   memory.NewMatchRepository(gameweeks, nil),
		stats:     memory.NewPlayerStatsRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		gameweeks: postgres.NewGameweekRepository(db),
		teams:     postgres.NewTeamRepository(db),
		matches:   postgres.NewMatchRepository(db),
		stats:     postgres.NewPlayerStatsRepository(db),
	}
}

// importLimiter spreads perMinute imports evenly with a burst of the same
// size. Zero disables limiting.
func importLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if c == nil {
		return nil, fmt.Errorf("service container is required")
	}

	handler := httpapi.NewHandler(
		c.GameweekService,
		c.TeamService,
		c.MatchService,
		c.PlayerStatsService,
		logger,
		httpapi.WithImportMaxBytes(cfg.ImportMaxBytes),
	)
	router, err := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		APIVersion:         cfg.ServiceVersion,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ImportLimiter:      importLimiter(cfg.ImportRatePerMinute),
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
