package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/ivankudzin/soulmate/backend/internal/app/apiapp"
	"github.com/ivankudzin/soulmate/backend/internal/config"
)

const adminToken = "integration-admin-token"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	cfg.Redis.Addr = mr.Addr()
	cfg.Admin.Token = adminToken

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestPredictionFlowWithoutCredentials(t *testing.T) {
	ts := newTestServer(t)

	body := `{"gender":"男","birthdate":"1996-02-14","introvert":55,"emotional":40,"keywords":["阳光","幽默"]}`
	resp, err := http.Post(ts.URL+"/v1/predictions", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post prediction: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var prediction struct {
		Title    string         `json:"title"`
		ImageURL *string        `json:"image_url"`
		Radar    map[string]int `json:"radar"`
		Zodiac   string         `json:"zodiac"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		t.Fatalf("decode prediction: %v", err)
	}
	if prediction.Title == "" {
		t.Fatal("expected fallback title")
	}
	if prediction.ImageURL != nil {
		t.Fatalf("expected no image url without credentials, got %q", *prediction.ImageURL)
	}
	if prediction.Zodiac != "水瓶座" {
		t.Fatalf("zodiac = %q, want 水瓶座", prediction.Zodiac)
	}
	if len(prediction.Radar) != 5 {
		t.Fatalf("radar has %d categories, want 5", len(prediction.Radar))
	}

	shareBody, err := json.Marshal(map[string]any{
		"kind":    "prediction",
		"payload": map[string]any{"title": prediction.Title},
	})
	if err != nil {
		t.Fatalf("marshal share body: %v", err)
	}

	shareResp, err := http.Post(ts.URL+"/v1/share", "application/json", strings.NewReader(string(shareBody)))
	if err != nil {
		t.Fatalf("post share: %v", err)
	}
	defer shareResp.Body.Close()

	if shareResp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected share status: %d", shareResp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(shareResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode share response: %v", err)
	}

	cardResp, err := http.Get(ts.URL + "/v1/share/" + created.ID)
	if err != nil {
		t.Fatalf("get share card: %v", err)
	}
	defer cardResp.Body.Close()

	if cardResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected card status: %d", cardResp.StatusCode)
	}
}

func TestAdminStatsAfterRequests(t *testing.T) {
	ts := newTestServer(t)

	body := `{"text":"最近压力很大，晚上总是睡不着。"}`
	resp, err := http.Post(ts.URL+"/v1/analyses", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post analysis: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected analysis status: %d", resp.StatusCode)
	}

	anonResp, err := http.Get(ts.URL + "/admin/stats")
	if err != nil {
		t.Fatalf("get admin stats anonymously: %v", err)
	}
	anonResp.Body.Close()
	if anonResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous stats status = %d, want %d", anonResp.StatusCode, http.StatusUnauthorized)
	}

	statsReq, err := http.NewRequest(http.MethodGet, ts.URL+"/admin/stats", nil)
	if err != nil {
		t.Fatalf("build stats request: %v", err)
	}
	statsReq.Header.Set("X-Admin-Token", adminToken)

	statsResp, err := http.DefaultClient.Do(statsReq)
	if err != nil {
		t.Fatalf("get admin stats: %v", err)
	}
	defer statsResp.Body.Close()

	if statsResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected stats status: %d", statsResp.StatusCode)
	}

	var stats struct {
		Counts map[string]int64 `json:"counts"`
	}
	if err := json.NewDecoder(statsResp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Counts["analyses"] != 1 {
		t.Fatalf("analyses = %d, want 1", stats.Counts["analyses"])
	}
}
