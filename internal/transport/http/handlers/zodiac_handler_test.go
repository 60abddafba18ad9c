package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestZodiacHandlerMapsDateToSign(t *testing.T) {
	h := NewZodiacHandler()

	cases := []struct {
		date string
		want string
	}{
		{"1999-12-25", "摩羯座"},
		{"2000-01-19", "摩羯座"},
		{"2000-01-20", "水瓶座"},
		{"1995-08-01", "狮子座"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/zodiac?date="+tc.date, nil)
		rr := httptest.NewRecorder()
		h.Handle(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", tc.date, rr.Code)
		}

		var resp struct {
			Date   string `json:"date"`
			Zodiac string `json:"zodiac"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode response: %v", tc.date, err)
		}
		if resp.Date != tc.date {
			t.Fatalf("date = %q, want %q", resp.Date, tc.date)
		}
		if resp.Zodiac != tc.want {
			t.Fatalf("%s: zodiac = %q, want %q", tc.date, resp.Zodiac, tc.want)
		}
	}
}

func TestZodiacHandlerValidation(t *testing.T) {
	h := NewZodiacHandler()

	cases := []struct {
		name string
		url  string
	}{
		{"missing date", "/v1/zodiac"},
		{"empty date", "/v1/zodiac?date="},
		{"bad format", "/v1/zodiac?date=25-12-1999"},
		{"not a date", "/v1/zodiac?date=yesterday"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			h.Handle(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status %d", rr.Code)
			}
		})
	}
}
