package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/nlazarte/libromayor/internal/errs"
)

const persistWarning = "change saved in memory but not persisted; it may not survive a restart"

func (s *Server) postEntry(w http.ResponseWriter, r *http.Request) {
	var req postEntryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	entry, err := s.svc.Record(r.Context(), req.toInput())
	switch {
	case err == nil:
		entriesMutated.WithLabelValues("created").Inc()
		toJSON(w, http.StatusCreated, toEntryResponse(entry))
	case errors.Is(err, errs.ErrPersistence):
		// Mutation committed in memory; surface the write failure to the user.
		entriesMutated.WithLabelValues("created").Inc()
		resp := toEntryResponse(entry)
		resp.Warning = persistWarning
		toJSON(w, http.StatusCreated, resp)
	default:
		_, code := domainError(w, err)
		entriesRejected.WithLabelValues(code).Inc()
	}
}

func (s *Server) putEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	var req postEntryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	entry, err := s.svc.Replace(r.Context(), id, req.toInput())
	switch {
	case err == nil:
		entriesMutated.WithLabelValues("updated").Inc()
		toJSON(w, http.StatusOK, toEntryResponse(entry))
	case errors.Is(err, errs.ErrPersistence):
		entriesMutated.WithLabelValues("updated").Inc()
		resp := toEntryResponse(entry)
		resp.Warning = persistWarning
		toJSON(w, http.StatusOK, resp)
	default:
		_, code := domainError(w, err)
		entriesRejected.WithLabelValues(code).Inc()
	}
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	err := s.svc.Delete(r.Context(), id)
	switch {
	case err == nil:
		entriesMutated.WithLabelValues("deleted").Inc()
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, errs.ErrPersistence):
		entriesMutated.WithLabelValues("deleted").Inc()
		toJSON(w, http.StatusOK, map[string]string{"warning": persistWarning})
	default:
		domainError(w, err)
	}
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}
	entry, err := s.svc.Find(r.Context(), id)
	if err != nil {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, toEntryResponse(entry))
}

// listEntries handles GET /v1/entries, optionally filtered to one calendar
// month via ?year=YYYY&month=1..12.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	year, month, filtered, err := monthQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entries := s.svc.Entries(r.Context())
	resp := listEntriesResponse{Items: make([]entryResponse, 0, len(entries))}
	if filtered {
		entries = s.svc.Month(r.Context(), year, month)
		resp.Year, resp.Month = year, int(month)
	}
	for _, e := range entries {
		resp.Items = append(resp.Items, toEntryResponse(e))
	}
	resp.Count = len(resp.Items)
	resp.Empty = resp.Count == 0
	toJSON(w, http.StatusOK, resp)
}

func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w, "invalid entry id")
		return 0, false
	}
	return id, true
}

// monthQuery parses the optional year/month pair. Supplying only one of the
// two is an error; supplying neither means no filtering.
func monthQuery(r *http.Request) (int, time.Month, bool, error) {
	q := r.URL.Query()
	rawYear, rawMonth := q.Get("year"), q.Get("month")
	if rawYear == "" && rawMonth == "" {
		return 0, 0, false, nil
	}
	if rawYear == "" || rawMonth == "" {
		return 0, 0, false, errors.New("year and month must be provided together")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return 0, 0, false, errors.New("invalid year")
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false, errors.New("invalid month")
	}
	return year, time.Month(month), true, nil
}
