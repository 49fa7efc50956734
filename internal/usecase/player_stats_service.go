package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-coach/internal/domain/paging"
	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
	"github.com/riskibarqy/fantasy-coach/internal/platform/csvrows"
	idgen "github.com/riskibarqy/fantasy-coach/internal/platform/id"
	"github.com/riskibarqy/fantasy-coach/internal/platform/logging"
)

type PlayerStatsService struct {
	statsRepo playerstats.Repository
	pipeline  *playerstats.Pipeline
	idGen     idgen.Generator
	logger    *logging.Logger
}

func NewPlayerStatsService(
	statsRepo playerstats.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}

	return &PlayerStatsService{
		statsRepo: statsRepo,
		pipeline:  playerstats.NewPipeline(storageUpserter{next: statsRepo}),
		idGen:     idGen,
		logger:    logger,
	}
}

func (s *PlayerStatsService) List(ctx context.Context, filter playerstats.Filter) (PlayerStatsPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.List")
	defer span.End()

	filter, err := playerstats.NormalizeFilter(filter)
	if err != nil {
		return PlayerStatsPage{}, err
	}

	items, total, err := s.statsRepo.List(ctx, filter)
	if err != nil {
		return PlayerStatsPage{}, fmt.Errorf("list player stats: %w", err)
	}
	return PlayerStatsPage{Items: items, Page: paging.NewResult(filter.PageRequest(), total)}, nil
}

// ImportCSV reads a whole CSV stream and imports it as one batch. A header
// that does not describe the import format rejects the file before any row is
// looked at; everything after that is reported through the summary, except an
// unavailable store, which is also returned as ErrDependencyUnavailable.
func (s *PlayerStatsService) ImportCSV(ctx context.Context, r io.Reader) (playerstats.ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ImportCSV")
	defer span.End()

	table, err := csvrows.Read(r, csvrows.WithHeaderNormalizer(playerstats.NormalizeColumn))
	if errors.Is(err, csvrows.ErrEmpty) {
		return playerstats.ImportSummary{}, rule.Structural("file", "CSV file has no header row")
	}
	if err != nil {
		batchID := s.newBatchID(ctx)
		s.logger.ErrorContext(ctx, "player stats import unreadable", "batch_id", batchID, "error", err)
		return playerstats.ImportSummary{
			BatchID: batchID,
			Success: false,
			Errors:  []string{"Import failed: " + err.Error()},
		}, nil
	}
	if err := playerstats.ValidateHeader(table.Header); err != nil {
		logRejection(ctx, s.logger, "playerstats.import", err)
		return playerstats.ImportSummary{}, err
	}

	rows := make([]playerstats.RawRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, playerstats.RawRow(row))
	}
	summary := s.ImportBatch(ctx, rows)
	if errors.Is(summary.StoreErr, ErrDependencyUnavailable) {
		return summary, errors.Wrap(summary.StoreErr, "import player stats")
	}
	return summary, nil
}

// ImportBatch validates rows one by one and commits the valid ones together.
func (s *PlayerStatsService) ImportBatch(ctx context.Context, rows []playerstats.RawRow) playerstats.ImportSummary {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ImportBatch")
	defer span.End()

	summary := s.pipeline.ImportBatch(ctx, rows)
	summary.BatchID = s.newBatchID(ctx)

	if !summary.Success {
		s.logger.ErrorContext(ctx, "player stats import failed",
			"batch_id", summary.BatchID,
			"rows", len(rows),
			"skipped", summary.SkippedCount,
		)
		return summary
	}
	s.logger.InfoContext(ctx, "player stats imported",
		"batch_id", summary.BatchID,
		"imported", summary.ImportedCount,
		"skipped", summary.SkippedCount,
	)
	return summary
}

func (s *PlayerStatsService) newBatchID(ctx context.Context) string {
	id, err := s.idGen.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate import batch id", "error", err)
		return ""
	}
	return id
}

// storageUpserter tags every upsert failure as a storage error so callers
// can tell it apart from row problems.
type storageUpserter struct {
	next playerstats.Upserter
}

func (u storageUpserter) UpsertBatch(ctx context.Context, records []playerstats.Record) error {
	if err := u.next.UpsertBatch(ctx, records); err != nil {
		return errors.Mark(err, playerstats.ErrStorage)
	}
	return nil
}
