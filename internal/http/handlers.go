package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"salesboard/internal/domain"
	"salesboard/internal/excel"
	"salesboard/internal/logger"
	"salesboard/internal/service"
)

type Handler struct {
	svc            *service.Service
	maxUploadBytes int64
}

func NewHandler(svc *service.Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeErrorKind(w, http.StatusBadRequest, "read_failure", "failed to read upload: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorKind(w, http.StatusBadRequest, "read_failure", "file field is required")
		return
	}
	defer file.Close()

	info, err := h.svc.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *Handler) CurrentBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.svc.Current()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batch.Info())
}

func (h *Handler) UploadHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.svc.UploadHistory(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.svc.Records(filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": records, "count": len(records)})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.svc.Summary(filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.svc.Options()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

func (h *Handler) TopClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := parseFilter(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseOptionalInt(query.Get("limit"), 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.svc.TopClients(filter, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) PaymentMethodDetail(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimSpace(chi.URLParam(r, "method"))
	if method == "" {
		writeError(w, http.StatusBadRequest, "payment method is required")
		return
	}
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	detail, err := h.svc.PaymentMethodDetail(filter, method)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.svc.Report(filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	name := fmt.Sprintf("relatorio-vendas-%s.json", report.GeneratedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

// parseFilter reads the filter descriptor from query parameters. A start or
// end bound without an explicit date mode implies the custom range.
func parseFilter(query url.Values) (domain.FilterState, error) {
	filter := domain.DefaultFilter()
	if value := strings.TrimSpace(query.Get("payment_method")); value != "" {
		filter.PaymentMethod = value
	}
	if value := strings.TrimSpace(query.Get("channel")); value != "" {
		filter.Channel = value
	}
	filter.DateRange = domain.DateRange{
		Start: strings.TrimSpace(query.Get("start")),
		End:   strings.TrimSpace(query.Get("end")),
	}

	mode := strings.TrimSpace(query.Get("date"))
	switch {
	case mode != "":
		filter.DateMode = domain.DateMode(mode)
	case filter.DateRange.Start != "" || filter.DateRange.End != "":
		filter.DateMode = domain.DateCustom
	}

	if filter.DateMode == domain.DateCustom {
		for _, bound := range []string{filter.DateRange.Start, filter.DateRange.End} {
			if bound == "" {
				continue
			}
			if _, err := time.Parse("2006-01-02", bound); err != nil {
				return domain.FilterState{}, fmt.Errorf("invalid date bound %q: use yyyy-mm-dd", bound)
			}
		}
	}
	return filter, nil
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, excel.ErrInputFormat):
		writeErrorKind(w, http.StatusUnsupportedMediaType, "input_format", "file must be an .xlsx or .csv spreadsheet; save legacy .xls files as .xlsx")
	case errors.Is(err, excel.ErrReadFailure):
		writeErrorKind(w, http.StatusBadRequest, "read_failure", err.Error())
	case errors.Is(err, excel.ErrEmptySheet):
		writeErrorKind(w, http.StatusBadRequest, "empty_sheet", err.Error())
	case errors.Is(err, excel.ErrNoValidRecords):
		writeErrorKind(w, http.StatusUnprocessableEntity, "no_valid_records", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoBatch), errors.Is(err, service.ErrHistoryDisabled):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseOptionalInt(raw string, defaultValue int) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %s", raw)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeErrorKind(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]any{"error": message, "kind": kind})
}
