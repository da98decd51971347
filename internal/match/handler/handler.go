package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"match-service/internal/fileio"
	"match-service/internal/match/model"
	"match-service/internal/match/service"
	"match-service/internal/metrics"
	"match-service/internal/middleware"
)

const (
	sourcePage = "page"
	sourceFile = "file"
)

// TableFetcher достаёт таблицы документа по id; в проде это fetch.Client.
type TableFetcher interface {
	FetchTables(ctx context.Context, id int) ([]*model.Table, error)
}

// Handler: HTTP-обвязка движка.
type Handler struct {
	Engine      *service.Engine
	Fetcher     TableFetcher
	Metrics     *metrics.Metrics
	MaxUploadMB int
	Log         zerolog.Logger
}

// GetMatch обслуживает GET /api/get-match/{pageID} по всем таблицам документа.
func (h *Handler) GetMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer h.Metrics.ObserveDuration(sourcePage, start)
		log := h.requestLogger(r)

		id, err := strconv.Atoi(chi.URLParam(r, "pageID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Could not fetch tables")
			return
		}
		tables, err := h.Fetcher.FetchTables(r.Context(), id)
		if err != nil {
			log.Warn().Err(err).Int("page_id", id).Msg("fetch tables")
			writeError(w, http.StatusBadRequest, "Could not fetch tables")
			return
		}

		recs, err := h.process(tables, sourcePage, log)
		if err != nil {
			log.Error().Err(err).Int("page_id", id).Msg("process tables")
			writeError(w, http.StatusInternalServerError, "Can not process tables")
			return
		}

		writeJSON(w, http.StatusOK, recs)
		log.Info().
			Int("page_id", id).
			Int("tables", len(tables)).
			Int("records", len(recs)).
			Dur("elapsed", time.Since(start)).
			Msg("get-match done")
	}
}

// GetMatchFromFile: POST /api/get-match-from-file/, поле "file".
func (h *Handler) GetMatchFromFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer h.Metrics.ObserveDuration(sourceFile, start)
		log := h.requestLogger(r)

		if err := r.ParseMultipartForm(int64(h.MaxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, "No file part")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file part")
			return
		}
		defer file.Close()

		if !fileio.Allowed(header.Filename) {
			writeError(w, http.StatusBadRequest, "Invalid file type")
			return
		}
		tbl, err := fileio.ReadTable(file, header.Filename)
		if err != nil {
			log.Warn().Err(err).Str("file", header.Filename).Msg("read table")
			writeError(w, http.StatusBadRequest, "Could not parse file")
			return
		}

		recs, err := h.process([]*model.Table{tbl}, sourceFile, log)
		if err != nil {
			log.Error().Err(err).Str("file", header.Filename).Msg("process table")
			writeError(w, http.StatusInternalServerError, "Can not process tables")
			return
		}

		writeJSON(w, http.StatusOK, recs)
		log.Info().
			Str("file", header.Filename).
			Int("records", len(recs)).
			Dur("elapsed", time.Since(start)).
			Msg("get-match-from-file done")
	}
}

// process прогоняет таблицы по очереди. Ошибка в любой таблице обрывает весь ответ.
func (h *Handler) process(tables []*model.Table, source string, log zerolog.Logger) ([]model.MatchRecord, error) {
	out := make([]model.MatchRecord, 0)
	for i, t := range tables {
		res, err := h.Engine.Run(t)
		if err != nil {
			h.Metrics.ObserveTable(source, "error", res.Columns.BrandStrategy, res.Columns.PartStrategy, 0)
			return nil, err
		}
		outcome := "ok"
		if res.Skipped {
			outcome = "skipped"
		}
		h.Metrics.ObserveTable(source, outcome, res.Columns.BrandStrategy, res.Columns.PartStrategy, len(res.Records))
		log.Debug().
			Int("table", i).
			Str("outcome", outcome).
			Int("records", len(res.Records)).
			Msg("table processed")
		out = append(out, res.Records...)
	}
	return out, nil
}

func (h *Handler) requestLogger(r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return h.Log.With().Str("req_id", rid).Logger()
	}
	return h.Log
}
