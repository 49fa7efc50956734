package playerstats

import (
	"context"
	"errors"
)

// Pipeline validates a batch row by row and commits the valid records in one upsert.
type Pipeline struct {
	store Upserter
}

func NewPipeline(store Upserter) *Pipeline {
	return &Pipeline{store: store}
}

// Validate splits rows into records and per-row errors. Rows are numbered from 1
// in the order given; a bad row never stops the scan.
func Validate(rows []RawRow) ([]Record, []*RowError) {
	records := make([]Record, 0, len(rows))
	var rowErrors []*RowError
	for i, row := range rows {
		rec, err := ValidateRecord(i+1, row)
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				rowErr = &RowError{Row: i + 1, Reason: err.Error()}
			}
			rowErrors = append(rowErrors, rowErr)
			continue
		}
		records = append(records, rec)
	}
	return records, rowErrors
}

// ImportBatch never returns an error: row problems and storage failures are
// both reported through the summary. A storage failure flips Success, adds
// one "Import failed" entry after the row errors and is kept in StoreErr.
// ImportedCount counts distinct (player, match) keys written.
func (p *Pipeline) ImportBatch(ctx context.Context, rows []RawRow) ImportSummary {
	records, rowErrors := Validate(rows)

	summary := ImportSummary{
		Success:      true,
		SkippedCount: len(rowErrors),
		Errors:       make([]string, 0, len(rowErrors)),
	}
	for _, e := range rowErrors {
		summary.Errors = append(summary.Errors, e.Error())
	}
	if len(records) == 0 {
		return summary
	}

	records = dedupe(records)
	if err := p.store.UpsertBatch(ctx, records); err != nil {
		summary.Success = false
		summary.StoreErr = err
		summary.Errors = append(summary.Errors, "Import failed: "+err.Error())
		return summary
	}
	summary.ImportedCount = len(records)
	return summary
}

// dedupe keeps the last record per key so a single upsert statement never
// touches the same row twice.
func dedupe(records []Record) []Record {
	index := make(map[Key]int, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if i, ok := index[rec.Key()]; ok {
			out[i] = rec
			continue
		}
		index[rec.Key()] = len(out)
		out = append(out, rec)
	}
	return out
}
