package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
)

const defaultImportWorkers = 4

// ImportSource is one CSV file to import as its own batch.
type ImportSource struct {
	Name string
	Open func() (io.ReadCloser, error)
}

type FileImportResult struct {
	Name       string
	Summary    playerstats.ImportSummary
	Err        error
	DurationMs int64
}

// Failed reports whether the file was rejected or its batch was not committed.
func (r FileImportResult) Failed() bool {
	return r.Err != nil || !r.Summary.Success
}

type FileImportReport struct {
	Files        []FileImportResult
	SuccessCount int
	FailedCount  int
}

// ImportFiles runs every source as an independent batch on a bounded worker
// pool. Rows inside one file are still validated in order. Results come back
// sorted by name.
func (s *PlayerStatsService) ImportFiles(ctx context.Context, sources []ImportSource, workers int) (FileImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ImportFiles")
	defer span.End()

	if workers <= 0 {
		workers = defaultImportWorkers
	}
	if len(sources) == 0 {
		return FileImportReport{}, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return FileImportReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan FileImportResult, len(sources))
	var failed atomic.Int32

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			row := s.importFile(ctx, src)
			if row.Failed() {
				failed.Add(1)
			}
			results <- row
		}); err != nil {
			wg.Done()
			wg.Wait()
			return FileImportReport{}, fmt.Errorf("submit import to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	report := FileImportReport{Files: make([]FileImportResult, 0, len(sources))}
	for row := range results {
		report.Files = append(report.Files, row)
	}
	sort.SliceStable(report.Files, func(i, j int) bool {
		return report.Files[i].Name < report.Files[j].Name
	})
	report.FailedCount = int(failed.Load())
	report.SuccessCount = len(report.Files) - report.FailedCount

	s.logger.InfoContext(ctx, "player stats files imported",
		"files", len(report.Files),
		"succeeded", report.SuccessCount,
		"failed", report.FailedCount,
	)
	return report, nil
}

func (s *PlayerStatsService) importFile(ctx context.Context, src ImportSource) (row FileImportResult) {
	start := time.Now()
	row.Name = src.Name
	defer func() { row.DurationMs = time.Since(start).Milliseconds() }()

	if err := ctx.Err(); err != nil {
		row.Err = err
		return row
	}

	rc, err := src.Open()
	if err != nil {
		row.Err = fmt.Errorf("open %s: %w", src.Name, err)
		return row
	}
	defer rc.Close()

	row.Summary, row.Err = s.ImportCSV(ctx, rc)
	return row
}
