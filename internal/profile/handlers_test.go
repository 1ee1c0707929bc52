package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ShouArchie/UofT-Hacks/internal/auth"
)

type fakeService struct {
	profile   *Profile
	createErr error
	getErr    error
}

func (f *fakeService) CreateProfile(ctx context.Context, userID int64, req *CreateProfileRequest) (*Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.profile, nil
}

func (f *fakeService) GetMyProfile(ctx context.Context, userID int64) (*Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeService) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	return f.GetMyProfile(ctx, userID)
}

func (f *fakeService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeService) ListProfiles(ctx context.Context) ([]*Profile, error) {
	return []*Profile{f.profile}, nil
}

func (f *fakeService) UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	return "https://cdn.example.com/p.jpg", nil
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(auth.WithUserID(req.Context(), 1))
}

func TestCreateProfileHandler(t *testing.T) {
	svc := &fakeService{profile: &Profile{ID: 1, UserID: 1, PreferredName: "Alex"}}
	handler := NewHandler(svc)

	body, _ := json.Marshal(validCreateRequest())
	rr := httptest.NewRecorder()
	handler.CreateProfile(rr, authedRequest(http.MethodPost, "/api/profile", body))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateProfileHandlerInvalidBody(t *testing.T) {
	handler := NewHandler(&fakeService{})

	rr := httptest.NewRecorder()
	handler.CreateProfile(rr, authedRequest(http.MethodPost, "/api/profile", []byte("{not json")))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateProfileHandlerValidation(t *testing.T) {
	handler := NewHandler(&fakeService{})

	req := validCreateRequest()
	req.Age = 12
	body, _ := json.Marshal(req)

	rr := httptest.NewRecorder()
	handler.CreateProfile(rr, authedRequest(http.MethodPost, "/api/profile", body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateProfileHandlerConflict(t *testing.T) {
	handler := NewHandler(&fakeService{createErr: ErrProfileExists})

	body, _ := json.Marshal(validCreateRequest())
	rr := httptest.NewRecorder()
	handler.CreateProfile(rr, authedRequest(http.MethodPost, "/api/profile", body))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestGetMyProfileHandlerNotFound(t *testing.T) {
	handler := NewHandler(&fakeService{getErr: ErrProfileNotFound})

	rr := httptest.NewRecorder()
	handler.GetMyProfile(rr, authedRequest(http.MethodGet, "/api/profile", nil))

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

func TestGetMyProfileHandlerUnauthenticated(t *testing.T) {
	handler := NewHandler(&fakeService{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	handler.GetMyProfile(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
