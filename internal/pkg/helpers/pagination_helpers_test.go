package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func listContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseListParamsDefaults(t *testing.T) {
	page, limit := ParseListParams(listContext(""), MaxLimit)
	if page != 1 || limit != 10 {
		t.Fatalf("got page=%d limit=%d, want 1 and 10", page, limit)
	}
}

func TestParseListParamsMalformedValues(t *testing.T) {
	page, limit := ParseListParams(listContext("page=abc&limit=xyz"), MaxLimit)
	if page != 1 || limit != 10 {
		t.Fatalf("malformed values should fall back to defaults, got page=%d limit=%d", page, limit)
	}
}

func TestParseListParamsZeroPage(t *testing.T) {
	page, _ := ParseListParams(listContext("page=0"), MaxLimit)
	if page != 1 {
		t.Fatalf("page=0 should behave as 1, got %d", page)
	}
}

func TestParseListParamsCapsLimit(t *testing.T) {
	_, limit := ParseListParams(listContext("limit=500"), MaxLimit)
	if limit != MaxLimit {
		t.Fatalf("limit should be capped at %d, got %d", MaxLimit, limit)
	}
}

func TestParseListParamsUncappedEndpoint(t *testing.T) {
	_, limit := ParseListParams(listContext("limit=500"), 0)
	if limit != 500 {
		t.Fatalf("uncapped endpoint should keep limit=500, got %d", limit)
	}
}

func TestNormalizeLimitFloorsNegatives(t *testing.T) {
	if got := NormalizeLimit(-3, MaxLimit); got != 1 {
		t.Fatalf("negative limit should floor at 1, got %d", got)
	}
	if got := NormalizeLimit(0, MaxLimit); got != DefaultLimit {
		t.Fatalf("zero limit should take the default, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		page, limit int
		want        uint64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}
	for _, tc := range cases {
		if got := Offset(tc.page, tc.limit); got != tc.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}
