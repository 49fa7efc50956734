package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/fantasy-coach/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-coach/internal/domain/rule"
)

// multipartOverhead leaves room for boundaries and part headers on top of the
// file itself.
const multipartOverhead int64 = 64 << 10

func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerStats")
	defer span.End()

	q := r.URL.Query()
	var (
		filter playerstats.Filter
		err    error
	)
	if filter.MatchID, err = queryInt64(q, "matchId"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.PlayerID, err = queryInt64(q, "playerId"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.Sort, err = playerstats.ParseSort(q.Get("sort")); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.Descending, err = queryDescending(q); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.Page, err = queryInt(q, "page", 1); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.Limit, err = queryInt(q, "limit", 0); err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.playerStatsService.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "list player stats", err)
		return
	}

	items := make([]playerStatsDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, playerStatsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, pageDTO[playerStatsDTO]{Items: items, Pagination: paginationToDTO(page.Page)})
}

// ImportPlayerStats accepts a multipart upload in the "file" field and runs
// it as one batch. A batch that could not be committed is a 409 carrying the
// summary's errors; an unavailable store is a 503.
func (h *Handler) ImportPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportPlayerStats")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := h.readUpload(w, r, buf); err != nil {
		h.fail(ctx, w, "import player stats", err)
		return
	}

	summary, err := h.playerStatsService.ImportCSV(ctx, bytes.NewReader(buf.B))
	if err != nil {
		h.fail(ctx, w, "import player stats", err)
		return
	}
	if !summary.Success {
		writeError(ctx, w, rule.Conflict("file", "Import failed: %s", strings.Join(summary.Errors, ", ")))
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, importSummaryToDTO(summary))
}

// readUpload copies the uploaded CSV into buf after checking the rules that
// do not need its content.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, buf *bytebufferpool.ByteBuffer) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.importMaxBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return h.tooLarge()
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return rule.Structural("file", "File is required")
		default:
			return rule.Structural("file", "Invalid multipart upload: %s", err.Error())
		}
	}
	defer file.Close()

	if header.Size == 0 {
		return rule.Structural("file", "File cannot be empty")
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return rule.Structural("file", "Only CSV files are supported")
	}
	if header.Size > h.importMaxBytes {
		return h.tooLarge()
	}

	if _, err := buf.ReadFrom(io.LimitReader(file, h.importMaxBytes+1)); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if int64(buf.Len()) > h.importMaxBytes {
		return h.tooLarge()
	}
	return nil
}

func (h *Handler) tooLarge() error {
	return rule.Structural("file", "File too large. Maximum size: %s", formatBytes(h.importMaxBytes))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
