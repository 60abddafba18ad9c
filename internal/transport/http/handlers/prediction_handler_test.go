package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ivankudzin/soulmate/backend/internal/domain/model"
	redrepo "github.com/ivankudzin/soulmate/backend/internal/repo/redis"
	predictionsvc "github.com/ivankudzin/soulmate/backend/internal/services/prediction"
	ratesvc "github.com/ivankudzin/soulmate/backend/internal/services/rate"
)

func validPredictionBody() string {
	return `{"gender":"女","birthdate":"1998-07-21","introvert":30,"emotional":70,"keywords":["温柔","幽默"]}`
}

func postPrediction(t *testing.T, h *PredictionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Handle(rr, req)
	return rr
}

func TestPredictionHandlerRespondsWithCompleteResult(t *testing.T) {
	// Without generators the service runs entirely on fallback content.
	h := NewPredictionHandler(predictionsvc.NewService(nil, nil))

	rr := postPrediction(t, h, validPredictionBody())
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Title            string         `json:"title"`
		Description      string         `json:"description"`
		Tip              string         `json:"tip"`
		ImageDescription string         `json:"image_description"`
		ImageURL         *string        `json:"image_url"`
		Radar            map[string]int `json:"radar"`
		Zodiac           string         `json:"zodiac"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Title == "" || resp.Description == "" || resp.Tip == "" || resp.ImageDescription == "" {
		t.Fatalf("incomplete result: %+v", resp)
	}
	if resp.ImageURL != nil {
		t.Fatalf("image_url = %v, want null without image generator", *resp.ImageURL)
	}
	if resp.Zodiac != "巨蟹座" {
		t.Fatalf("zodiac = %q, want 巨蟹座", resp.Zodiac)
	}
	for _, category := range model.RadarCategories() {
		if _, ok := resp.Radar[category]; !ok {
			t.Fatalf("radar missing category %s", category)
		}
	}
}

func TestPredictionHandlerValidation(t *testing.T) {
	h := NewPredictionHandler(predictionsvc.NewService(nil, nil))

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{broken`},
		{"unknown field", `{"gender":"女","birthdate":"1998-07-21","introvert":30,"emotional":70,"keywords":["温柔"],"extra":1}`},
		{"bad gender", `{"gender":"other","birthdate":"1998-07-21","introvert":30,"emotional":70,"keywords":["温柔"]}`},
		{"bad birthdate", `{"gender":"女","birthdate":"21.07.1998","introvert":30,"emotional":70,"keywords":["温柔"]}`},
		{"slider below range", `{"gender":"女","birthdate":"1998-07-21","introvert":-1,"emotional":70,"keywords":["温柔"]}`},
		{"slider above range", `{"gender":"女","birthdate":"1998-07-21","introvert":30,"emotional":101,"keywords":["温柔"]}`},
		{"no keywords", `{"gender":"女","birthdate":"1998-07-21","introvert":30,"emotional":70,"keywords":[]}`},
		{"only unknown keywords", `{"gender":"女","birthdate":"1998-07-21","introvert":30,"emotional":70,"keywords":["机智"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postPrediction(t, h, tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestPredictionHandlerRateLimits(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := NewPredictionHandler(predictionsvc.NewService(nil, nil))
	h.AttachLimiter(ratesvc.NewLimiter(redrepo.NewRateRepo(client), 1, 0))

	if rr := postPrediction(t, h, validPredictionBody()); rr.Code != http.StatusOK {
		t.Fatalf("first request status %d", rr.Code)
	}

	rr := postPrediction(t, h, validPredictionBody())
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status %d, want 429", rr.Code)
	}

	var resp struct {
		Code          string `json:"code"`
		RetryAfterSec int64  `json:"retry_after_sec"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "RATE_LIMITED" {
		t.Fatalf("code = %q", resp.Code)
	}
	if resp.RetryAfterSec <= 0 {
		t.Fatalf("retry_after_sec = %d", resp.RetryAfterSec)
	}
	if rr.Header().Get("Retry-After") != strconv.FormatInt(resp.RetryAfterSec, 10) {
		t.Fatalf("Retry-After header = %q, want %d", rr.Header().Get("Retry-After"), resp.RetryAfterSec)
	}
}

func TestPredictionHandlerAllowsWhenLimiterIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := NewPredictionHandler(predictionsvc.NewService(nil, nil))
	h.AttachLimiter(ratesvc.NewLimiter(redrepo.NewRateRepo(client), 1, 0))

	mr.Close()

	if rr := postPrediction(t, h, validPredictionBody()); rr.Code != http.StatusOK {
		t.Fatalf("request with unreachable limiter store: status %d, want 200", rr.Code)
	}
}

func TestPredictionHandlerWithoutService(t *testing.T) {
	h := NewPredictionHandler(nil)

	rr := postPrediction(t, h, validPredictionBody())
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rr.Code)
	}
}
