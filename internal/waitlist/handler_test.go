package waitlist_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"waitlist-backend/internal/bootstrap"
	"waitlist-backend/internal/shared/config"
)

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.BuildWithStorage(config.Config{Port: "0", Env: "dev"}, nil)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func TestWaitlistSubmitAndList(t *testing.T) {
	router := buildRouter(t)

	payload, _ := json.Marshal(map[string]any{
		"email":          "user@example.com",
		"name":           "Jordan",
		"position":       "Founder",
		"industry":       "SaaS",
		"leads_per_week": 25,
		"company_size":   "1-10",
		"use_case":       "outbound",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("submit status %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	if created.ID == "" || created.Email != "user@example.com" {
		t.Fatalf("unexpected created entry: %+v", created)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/waitlist/entries", nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("entries status %d: %s", respGet.Code, respGet.Body.String())
	}
	var listed struct {
		Entries []struct {
			Email        string `json:"email"`
			LeadsPerWeek int    `json:"leads_per_week"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&listed); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(listed.Entries) != 1 || listed.Entries[0].LeadsPerWeek != 25 {
		t.Fatalf("unexpected entries: %+v", listed.Entries)
	}
}

func TestWaitlistSubmitRejectsMissingEmail(t *testing.T) {
	router := buildRouter(t)

	payload, _ := json.Marshal(map[string]any{"name": "Jordan"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
