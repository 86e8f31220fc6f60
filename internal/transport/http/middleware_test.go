package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 50, wantOffset: 0},
		{name: "explicit", query: "?limit=20&offset=40", wantLimit: 20, wantOffset: 40},
		{name: "limit clamped high", query: "?limit=9999", wantLimit: 500, wantOffset: 0},
		{name: "limit clamped low", query: "?limit=0", wantLimit: 1, wantOffset: 0},
		{name: "negative offset", query: "?offset=-5", wantLimit: 50, wantOffset: 0},
		{name: "garbage ignored", query: "?limit=abc&offset=xyz", wantLimit: 50, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			limit, offset := ParsePagination(r)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestCheckAdminAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Admin-Key", "secret")
	if !CheckAdminAuth(r, "secret") {
		t.Fatalf("header key rejected")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer secret")
	if !CheckAdminAuth(r, "secret") {
		t.Fatalf("bearer key rejected")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Admin-Key", "wrong")
	if CheckAdminAuth(r, "secret") {
		t.Fatalf("wrong key accepted")
	}
}
