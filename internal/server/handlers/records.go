package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/pkg/api"
)

// MaxBodySize ограничивает тело запроса на запись
const MaxBodySize = 10 << 20

// Параметры запроса, которые не являются фильтрами
const (
	paramSelect = "select"
	paramOrder  = "order"
)

// RecordHandler serves table rows over a PostgREST-style API
type RecordHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(logger *slog.Logger, storage storage.RecordStorage) *RecordHandler {
	return &RecordHandler{
		logger:  logger,
		storage: storage,
	}
}

// Select обрабатывает GET /rest/v1/{table}?select=*&order=col.asc&col=op.value
func (h *RecordHandler) Select(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")

	params := r.URL.Query()
	if sel := params.Get(paramSelect); sel != "" && sel != "*" {
		writeError(w, http.StatusBadRequest, "bad_request", "only select=* is supported")
		return
	}

	q := storage.Query{}
	if order := params.Get(paramOrder); order != "" {
		col, dir, _ := strings.Cut(order, ".")
		q.Order = strings.TrimSpace(col + " " + dir)
	}

	filters, err := parseFilters(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	q.Filters = filters

	rows, err := h.storage.Select(r.Context(), table, q)
	if err != nil {
		h.storageError(w, "select", table, err)
		return
	}

	h.logger.Debug("Rows selected", "table", table, "count", len(rows))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// Write обрабатывает POST /rest/v1/{table}
// С Prefer: resolution=merge-duplicates запрос работает как upsert
func (h *RecordHandler) Write(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")

	records, err := decodeRecords(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		h.logger.Warn("Failed to decode records", "table", table, "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	upsert := preferMergeDuplicates(r.Header.Values(api.HeaderPrefer))
	if upsert {
		err = h.storage.Upsert(r.Context(), table, records)
	} else {
		err = h.storage.Insert(r.Context(), table, records)
	}
	if err != nil {
		h.storageError(w, "write", table, err)
		return
	}

	h.logger.Debug("Rows written", "table", table, "count", len(records), "upsert", upsert)
	w.WriteHeader(http.StatusCreated)
}

// Delete обрабатывает DELETE /rest/v1/{table}?id=eq.value
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")

	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	n, err := h.storage.Delete(r.Context(), table, filters)
	if err != nil {
		h.storageError(w, "delete", table, err)
		return
	}

	h.logger.Debug("Rows deleted", "table", table, "count", n)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecordHandler) storageError(w http.ResponseWriter, op, table string, err error) {
	switch {
	case errors.Is(err, storage.ErrUnknownTable):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, storage.ErrDuplicate):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, storage.ErrUnknownColumn),
		errors.Is(err, storage.ErrInvalidRecord),
		errors.Is(err, storage.ErrMissingFilter):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		h.logger.Error("Storage failure", "op", op, "table", table, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// parseFilters превращает оставшиеся параметры в фильтры col=op.value
func parseFilters(params map[string][]string) (map[string]api.Filter, error) {
	filters := make(map[string]api.Filter)
	for name, values := range params {
		if name == paramSelect || name == paramOrder {
			continue
		}
		if len(values) != 1 {
			return nil, fmt.Errorf("filter %q given %d times", name, len(values))
		}
		f, err := api.ParseFilter(values[0])
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", name, err)
		}
		filters[name] = f
	}
	return filters, nil
}

// decodeRecords принимает один объект или массив объектов
func decodeRecords(body io.Reader) ([]models.Record, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty body")
	}

	var raws []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
	} else {
		raws = []json.RawMessage{data}
	}

	records := make([]models.Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := models.DecodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func preferMergeDuplicates(values []string) bool {
	for _, v := range values {
		for _, pref := range strings.Split(v, ",") {
			if strings.TrimSpace(pref) == api.PreferMergeDuplicates {
				return true
			}
		}
	}
	return false
}

// writeError пишет ответ в формате api.ErrorResponse
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}
