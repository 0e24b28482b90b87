package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/chain-atlas/pkg/adapters"
	"github.com/de-tools/chain-atlas/pkg/export"
	"github.com/de-tools/chain-atlas/pkg/models/api"
	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/server/metrics"
	"github.com/de-tools/chain-atlas/pkg/services/registry"
	"github.com/de-tools/chain-atlas/pkg/services/schema"
	sessions "github.com/de-tools/chain-atlas/pkg/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxUploadSize = 50 << 20 // 50 MB

type Handler struct {
	sessions *sessions.Manager
	registry registry.SourceRegistry
}

func NewHandler(manager *sessions.Manager, reg registry.SourceRegistry) *Handler {
	return &Handler{
		sessions: manager,
		registry: reg,
	}
}

// CreateSession runs the intake pipeline on a described or uploaded
// dataset and registers a session over the result. JSON bodies name a
// source by kind and location or by registry profile; multipart bodies
// carry the file itself.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	src, schemaPath, err := h.readSource(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var profile *schema.Profile
	if schemaPath != "" {
		profile, err = schema.LoadProfile(schemaPath)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to load schema profile: %v", err), http.StatusBadRequest)
			return
		}
	}

	started := time.Now()
	sess, err := h.sessions.OpenWithProfile(ctx, src, profile)
	if err != nil {
		metrics.SessionsOpened.WithLabelValues("error").Inc()
		writePipelineError(w, logger, err)
		return
	}

	metrics.DatasetLoadDuration.Observe(time.Since(started).Seconds())
	metrics.SessionsOpened.WithLabelValues("ok").Inc()
	metrics.SessionsOpen.Inc()
	metrics.RowsDropped.Add(float64(sess.Quality().DroppedRows))

	// headline figures ride along so the dashboard can render without a
	// second round trip; a dataset whose rows all dropped gets the empty
	// marker instead
	kpis := api.KPISnapshot{Empty: true}
	if snap, err := sess.Snapshot(); err == nil {
		kpis = adapters.MapKPISnapshotDomainToApi(snap)
	}

	writeJSON(w, logger, http.StatusCreated, api.Session{
		Id:        sess.ID,
		Source:    sess.Source,
		Profile:   sess.Profile,
		CreatedAt: sess.CreatedAt,
		Quality:   adapters.MapQualityReportDomainToApi(sess.Quality()),
		Kpis:      kpis,
	})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	dim := domain.Dimension(r.URL.Query().Get("dimension"))
	if dim == "" {
		dim = domain.DimensionRegion
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid 'limit': expected a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	table, err := sess.Summarize(dim, limit)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			writeJSON(w, logger, http.StatusOK, api.Summary{
				Dimension: string(dim),
				Rows:      []api.SummaryRow{},
				Empty:     true,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapSummaryDomainToApi(table))
}

func (h *Handler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var columns []string
	if raw := r.URL.Query().Get("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	matrix, err := sess.Correlate(columns)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := adapters.MapCorrelationDomainToApi(matrix)
	response.Empty = len(sess.Records()) == 0

	writeJSON(w, logger, http.StatusOK, response)
}

func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := sess.Snapshot()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			writeJSON(w, logger, http.StatusOK, api.KPISnapshot{Empty: true})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapKPISnapshotDomainToApi(snap))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	response := make([]api.ColumnProfile, 0, len(sess.Columns()))
	for _, col := range sess.Columns() {
		response = append(response, adapters.MapColumnProfileDomainToApi(col))
	}

	writeJSON(w, logger, http.StatusOK, response)
}

func (h *Handler) GetQuality(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, logger, http.StatusOK, adapters.MapQualityReportDomainToApi(sess.Quality()))
}

// Export streams the session's data as a download. The view query
// parameter picks records or summary, format picks csv or xlsx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	view := r.URL.Query().Get("view")
	if view == "" {
		view = "records"
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var err error
	switch {
	case view == "records" && format == "csv":
		setDownloadHeaders(w, "text/csv", "records.csv")
		err = export.WriteRecordsCSV(w, sess.Records())
	case view == "records" && format == "xlsx":
		setDownloadHeaders(w, xlsxContentType, "records.xlsx")
		err = export.WriteRecordsXLSX(w, sess.Records())
	case view == "summary":
		h.exportSummary(w, r, sess, format)
		return
	default:
		http.Error(w, fmt.Sprintf("unsupported view %q", view), http.StatusBadRequest)
		return
	}

	if err != nil {
		logger.Error().Err(err).Str("view", view).Str("format", format).Msg("failed to write export")
	}
}

func (h *Handler) exportSummary(w http.ResponseWriter, r *http.Request, sess *sessions.Session, format string) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	dim := domain.Dimension(r.URL.Query().Get("dimension"))
	if dim == "" {
		dim = domain.DimensionRegion
	}

	table, err := sess.Summarize(dim, 0)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			// header-only file so downloads never fail on an empty selection
			table = &domain.SummaryTable{Dimension: dim}
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	switch format {
	case "csv":
		setDownloadHeaders(w, "text/csv", fmt.Sprintf("summary_%s.csv", dim))
		err = export.WriteSummaryCSV(w, table)
	case "xlsx":
		setDownloadHeaders(w, xlsxContentType, fmt.Sprintf("summary_%s.xlsx", dim))
		err = export.WriteSummaryXLSX(w, table)
	default:
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}

	if err != nil {
		logger.Error().Err(err).Str("dimension", string(dim)).Msg("failed to write summary export")
	}
}

// SetFilter replaces the session's active filter. Dates use the
// YYYY-MM-DD form; from is inclusive and to exclusive.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.Filter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	filter, err := parseFilter(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.SetFilter(filter)
	writeJSON(w, logger, http.StatusOK, req)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session")
	if !h.sessions.Close(id) {
		http.Error(w, fmt.Sprintf("session %s not found", id), http.StatusNotFound)
		return
	}
	metrics.SessionsOpen.Dec()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	response := []api.SourceProfile{}
	if h.registry != nil {
		profiles, err := h.registry.GetProfiles()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, p := range profiles {
			response = append(response, adapters.MapSourceProfileDomainToApi(p))
		}
	}

	writeJSON(w, logger, http.StatusOK, response)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	id := chi.URLParam(r, "session")
	sess, ok := h.sessions.Get(id)
	if !ok {
		http.Error(w, fmt.Sprintf("session %s not found", id), http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (h *Handler) readSource(r *http.Request) (domain.Source, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return domain.Source{}, "", fmt.Errorf("failed to parse upload: %w", err)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return domain.Source{}, "", fmt.Errorf("missing 'file' form field: %w", err)
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			return domain.Source{}, "", fmt.Errorf("failed to read upload: %w", err)
		}

		return domain.Source{
			Kind:    domain.SourceKindInline,
			Name:    header.Filename,
			Payload: payload,
		}, r.FormValue("schema"), nil
	}

	var req api.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.Source{}, "", fmt.Errorf("invalid request body: %w", err)
	}

	if req.Profile != "" {
		if h.registry == nil {
			return domain.Source{}, "", errors.New("no sources config loaded")
		}
		p, err := h.registry.GetProfile(req.Profile)
		if err != nil {
			return domain.Source{}, "", err
		}
		schemaPath := req.Schema
		if schemaPath == "" {
			schemaPath = p.Schema
		}
		return p.Source(), schemaPath, nil
	}

	kind := domain.SourceKind(req.Kind)
	switch kind {
	case domain.SourceKindLocal, domain.SourceKindRemote, domain.SourceKindS3:
	default:
		return domain.Source{}, "", fmt.Errorf("unsupported source kind: %q", req.Kind)
	}
	if req.Location == "" {
		return domain.Source{}, "", errors.New("missing 'location'")
	}

	return domain.Source{Kind: kind, Location: req.Location}, req.Schema, nil
}

func parseFilter(req api.Filter) (domain.Filter, error) {
	var f domain.Filter

	if req.From != "" {
		t, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			return f, errors.New("invalid 'from' date format. Expected format: YYYY-MM-DD")
		}
		f.From = &t
	}
	if req.To != "" {
		t, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			return f, errors.New("invalid 'to' date format. Expected format: YYYY-MM-DD")
		}
		f.To = &t
	}
	f.Regions = req.Regions
	f.Modes = req.Modes

	return f, nil
}

func writePipelineError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var mismatch *domain.SchemaMismatchError

	switch {
	case errors.Is(err, domain.ErrSourceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSourceUnreachable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, domain.ErrBadFormat):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &mismatch):
		http.Error(w, mismatch.Error(), http.StatusUnprocessableEntity)
	default:
		logger.Error().Err(err).Msg("failed to open session")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func setDownloadHeaders(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
