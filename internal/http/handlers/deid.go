package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NotoMD-dev/notomed-deid/internal/deid"
	"github.com/NotoMD-dev/notomed-deid/internal/observability/metrics"
	"github.com/NotoMD-dev/notomed-deid/pkg/logging"
)

// DeidHandler serves the de-identification endpoints. The default path runs
// only the server safety net: name discovery needs the original document
// and is expected to have happened before transmission. The full pipeline
// is opt-in for first-party callers that submit originals.
type DeidHandler struct {
	logger        *logging.Logger
	metrics       *metrics.RedactionMetrics
	maxNoteBytes  int
	maxBatchNotes int
	fullPipeline  bool
}

// NewDeidHandler creates a new de-identification handler.
func NewDeidHandler(logger *logging.Logger, m *metrics.RedactionMetrics, maxNoteBytes, maxBatchNotes int, fullPipeline bool) *DeidHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DeidHandler{
		logger:        logger,
		metrics:       m,
		maxNoteBytes:  maxNoteBytes,
		maxBatchNotes: maxBatchNotes,
		fullPipeline:  fullPipeline,
	}
}

// DeidentifyRequest is the request body for POST /v1/deidentify.
type DeidentifyRequest struct {
	Notes []deid.Note `json:"notes"`
}

// DeidentifyResponse is the response body for POST /v1/deidentify.
type DeidentifyResponse struct {
	Results []deid.Result `json:"results"`
	Mode    string        `json:"mode"`
}

const (
	modeSafetyNet = "safety_net"
	modeFull      = "full"
)

// Deidentify handles POST /v1/deidentify. The raw payload is structurally
// scrubbed of banned field names before any note parsing, so identifiers
// smuggled in extra JSON fields never reach processing.
func (h *DeidHandler) Deidentify(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	scrubbed, err := json.Marshal(deid.ScrubFields(raw))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	var req DeidentifyRequest
	if err := json.Unmarshal(scrubbed, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Notes) == 0 {
		http.Error(w, "no notes provided", http.StatusBadRequest)
		return
	}
	if h.maxBatchNotes > 0 && len(req.Notes) > h.maxBatchNotes {
		http.Error(w, "too many notes", http.StatusRequestEntityTooLarge)
		return
	}
	for _, note := range req.Notes {
		if h.maxNoteBytes > 0 && len(note.Text) > h.maxNoteBytes {
			http.Error(w, "note too large", http.StatusRequestEntityTooLarge)
			return
		}
	}

	mode := modeSafetyNet
	if h.fullPipeline && r.URL.Query().Get("full") == "true" {
		mode = modeFull
	}

	results := make([]deid.Result, len(req.Notes))
	for i, note := range req.Notes {
		if note.ID == "" {
			note.ID = uuid.NewString()
		}
		start := time.Now()
		if mode == modeFull {
			results[i] = h.runFull(note)
		} else {
			results[i] = h.runSafetyNet(note)
		}
		h.metrics.ObserveLatency(mode, time.Since(start).Seconds())
		h.metrics.ObserveDocument(mode)
		h.countPlaceholders(results[i].Note)
	}

	h.logger.Info("notes de-identified", "mode", mode, "count", len(results))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(DeidentifyResponse{Results: results, Mode: mode})
}

func (h *DeidHandler) runFull(note deid.Note) deid.Result {
	return deid.Deidentify(note)
}

func (h *DeidHandler) runSafetyNet(note deid.Note) deid.Result {
	note.Title = deid.ScanServerSafetyNet(note.Title)
	note.Text = deid.ScanServerSafetyNet(note.Text)
	return deid.Result{Note: note}
}

func (h *DeidHandler) countPlaceholders(note deid.Note) {
	for category, n := range deid.CountPlaceholders(note.Title) {
		h.metrics.ObservePlaceholders(string(category), n)
	}
	for category, n := range deid.CountPlaceholders(note.Text) {
		h.metrics.ObservePlaceholders(string(category), n)
	}
}

// DiffRequest is the request body for POST /v1/diff.
type DiffRequest struct {
	Original string `json:"original"`
	Redacted string `json:"redacted"`
}

// DiffResponse is the response body for POST /v1/diff.
type DiffResponse struct {
	Segments []deid.Segment `json:"segments"`
}

// Diff handles POST /v1/diff. Segments are for human review only.
func (h *DeidHandler) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	segments := deid.Diff(req.Original, req.Redacted)
	if segments == nil {
		segments = []deid.Segment{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(DiffResponse{Segments: segments})
}

// HealthCheck handles GET /health.
func (h *DeidHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
