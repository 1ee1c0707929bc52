package match

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShouArchie/UofT-Hacks/internal/auth"
)

type fakeMatchService struct {
	matches []*RankedMatch
	err     error
}

func (f *fakeMatchService) GetMatches(ctx context.Context, userID int64) ([]*RankedMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func doGetMatches(t *testing.T, svc Service, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	if authenticated {
		req = req.WithContext(auth.WithUserID(req.Context(), 1))
	}

	rr := httptest.NewRecorder()
	handler.GetMatches(rr, req)
	return rr
}

func TestGetMatchesHandlerOK(t *testing.T) {
	feed := []*RankedMatch{
		{Profile: candidate(2, "Toronto"), CompatibilityScore: 80, CompatibilityReason: "r", IsFromToronto: true, TotalProfiles: 1, CurrentIndex: 1, CurrentUserCity: "Toronto"},
	}

	rr := doGetMatches(t, &fakeMatchService{matches: feed}, true)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0]["compatibilityScore"].(float64) != 80 {
		t.Fatalf("unexpected score: %v", got[0]["compatibilityScore"])
	}
	if got[0]["isFromToronto"] != true {
		t.Fatalf("isFromToronto missing or false: %v", got[0]["isFromToronto"])
	}
}

func TestGetMatchesHandlerEmptyFeed(t *testing.T) {
	rr := doGetMatches(t, &fakeMatchService{matches: []*RankedMatch{}}, true)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" && body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestGetMatchesHandlerNoProfile(t *testing.T) {
	rr := doGetMatches(t, &fakeMatchService{err: ErrProfileNotFound}, true)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["error"] != "Profile not found" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestGetMatchesHandlerUnauthorized(t *testing.T) {
	rr := doGetMatches(t, &fakeMatchService{}, false)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGetMatchesHandlerInternalError(t *testing.T) {
	rr := doGetMatches(t, &fakeMatchService{err: errors.New("db down")}, true)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
