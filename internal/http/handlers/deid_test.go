package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotoMD-dev/notomed-deid/internal/deid"
)

func newTestHandler() *DeidHandler {
	return NewDeidHandler(nil, nil, 1024*1024, 10, true)
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestDeidentifySafetyNetDefault(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Deidentify, "/v1/deidentify",
		`{"notes":[{"id":"n1","title":"Visit","text":"MRN 1234567, call 555-123-4567. Sister: Maria."}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeidentifyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "safety_net", resp.Mode)

	text := resp.Results[0].Note.Text
	assert.Contains(t, text, "[REDACTED_ID]")
	assert.Contains(t, text, "[REDACTED_PHONE]")
	// The safety net never attempts name detection.
	assert.Contains(t, text, "Maria")
	assert.Empty(t, resp.Results[0].Segments)
}

func TestDeidentifyFullPipeline(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Deidentify, "/v1/deidentify?full=true",
		`{"notes":[{"id":"n1","title":"Visit","text":"Sister: Maria. Maria will call 555-123-4567."}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeidentifyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "full", resp.Mode)

	res := resp.Results[0]
	assert.NotContains(t, res.Note.Text, "Maria")
	assert.Contains(t, res.Note.Text, "[REDACTED_NAME]")
	assert.Contains(t, res.Note.Text, "[REDACTED_PHONE]")
	assert.NotEmpty(t, res.Segments)
	assert.Equal(t, 1, res.TokenCount)
}

func TestDeidentifyFullDisabled(t *testing.T) {
	h := NewDeidHandler(nil, nil, 0, 0, false)
	rec := postJSON(t, h.Deidentify, "/v1/deidentify?full=true",
		`{"notes":[{"id":"n1","text":"Sister: Maria."}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeidentifyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "safety_net", resp.Mode)
}

func TestDeidentifyStripsBannedFields(t *testing.T) {
	// Extra structured identifier fields are dropped before parsing, so a
	// smuggled mrn/name never reaches the pipeline or the response.
	h := newTestHandler()
	body := `{"mrn":"999","notes":[{"id":"n1","text":"ok","dob":"01/01/1990","name":"Jane"}]}`
	rec := postJSON(t, h.Deidentify, "/v1/deidentify", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "999")
	assert.NotContains(t, rec.Body.String(), "Jane")
	assert.NotContains(t, rec.Body.String(), "01/01/1990")
}

func TestDeidentifyAssignsID(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Deidentify, "/v1/deidentify", `{"notes":[{"text":"ok"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DeidentifyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Results[0].Note.ID)
}

func TestDeidentifyValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{notes}`, http.StatusBadRequest},
		{"no notes", `{"notes":[]}`, http.StatusBadRequest},
		{"too many notes", tooManyNotesBody(11), http.StatusRequestEntityTooLarge},
	}
	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Deidentify, "/v1/deidentify", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDeidentifyNoteTooLarge(t *testing.T) {
	h := NewDeidHandler(nil, nil, 8, 10, true)
	rec := postJSON(t, h.Deidentify, "/v1/deidentify",
		`{"notes":[{"text":"this body is longer than eight bytes"}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func tooManyNotesBody(n int) string {
	var buf bytes.Buffer
	buf.WriteString(`{"notes":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"text":"x"}`)
	}
	buf.WriteString(`]}`)
	return buf.String()
}

func TestDiffEndpoint(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Diff, "/v1/diff",
		`{"original":"call Maria now","redacted":"call [REDACTED_NAME] now"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DiffResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Segments, 3)
	assert.Equal(t, deid.SegmentChanged, resp.Segments[1].Kind)
	assert.Equal(t, "[REDACTED_NAME]", resp.Segments[1].Text)
}

func TestDiffEndpointEmpty(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Diff, "/v1/diff", `{"original":"","redacted":""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"segments":[]}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
