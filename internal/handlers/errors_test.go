package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status ok", body)
	}
}

func TestRespondWithJSONNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithJSON(rec, http.StatusNoContent, nil)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestRespondWithErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusInternalServerError, ErrInternalServerError, "db exploded", nil)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["error"] != ErrInternalServerError {
		t.Errorf("error message = %q, want %q", body["error"], ErrInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "db exploded") {
		t.Error("internal log message leaked into the response body")
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name": "Heat"}`, false},
		{"unknown field rejected", `{"name": "Heat", "rating": 9}`, true},
		{"malformed", `{"name": `, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var dst payload
			err := decodeJSON(r, &dst)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeJSON(%q) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
		})
	}
}
