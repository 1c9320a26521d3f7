package httpapi

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/nlazarte/libromayor/internal/errs"
	"github.com/nlazarte/libromayor/internal/export"
)

// exportMonth handles GET /v1/entries/export?year=YYYY&month=1..12 and
// streams the month's report as CSV. An empty month produces no file.
func (s *Server) exportMonth(w http.ResponseWriter, r *http.Request) {
	year, month, filtered, err := monthQuery(r)
	if err != nil || !filtered {
		badRequest(w, "year and month are required")
		return
	}
	entries := s.svc.Month(r.Context(), year, month)

	var buf bytes.Buffer
	if err := export.MonthCSV(&buf, entries); err != nil {
		if errors.Is(err, errs.ErrNoMovements) {
			domainError(w, err)
			return
		}
		s.log.Error("csv export failed", "year", year, "month", int(month), "err", err)
		writeErr(w, http.StatusInternalServerError, "could not build report", "internal")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(year, month)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
