package delivery

import (
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

type RecordHandler struct {
	recordService ports.RecordService
	log           *logger.ZapLogger
}

func NewRecordHandler(recordService ports.RecordService, log *logger.ZapLogger) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		log:           log,
	}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.recordService.List(r.Context(), limit)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Service: "history", Error: err})
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []ports.Record{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.recordService.DeleteAll(r.Context()); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to clear history", Service: "history", Error: err})
		http.Error(w, "failed to delete records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
