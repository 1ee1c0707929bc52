package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

type fakeProfileRepo struct {
	profiles map[int64]*profile.Profile

	listErr    error
	lastFilter *profile.CandidateFilter
}

func (f *fakeProfileRepo) CreateProfile(ctx context.Context, p *profile.Profile) error {
	return errors.New("not implemented")
}

func (f *fakeProfileRepo) GetProfileByUserID(ctx context.Context, userID int64) (*profile.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) UpdateProfile(ctx context.Context, userID int64, req *profile.UpdateProfileRequest) (*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfileRepo) UpdatePhoto(ctx context.Context, userID int64, url string) error {
	return errors.New("not implemented")
}

func (f *fakeProfileRepo) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfileRepo) ListCandidates(ctx context.Context, excludeUserID int64, filter *profile.CandidateFilter) ([]*profile.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastFilter = filter

	var out []*profile.Profile
	for id := int64(1); id <= int64(len(f.profiles)); id++ {
		p, ok := f.profiles[id]
		if !ok || p.UserID == excludeUserID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func newTestService(repo *fakeProfileRepo, gen *stubGenerator) Service {
	scorer := NewScorer(gen, ScorerConfig{Batch: true, Timeout: time.Second})
	return NewService(repo, scorer, Config{PriorityCity: "Toronto"})
}

func TestGetMatchesRequesterWithoutProfile(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[int64]*profile.Profile{}}
	svc := newTestService(repo, &stubGenerator{})

	_, err := svc.GetMatches(context.Background(), 42)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetMatchesEmptyPool(t *testing.T) {
	requester := requesterProfile()
	repo := &fakeProfileRepo{profiles: map[int64]*profile.Profile{
		requester.UserID: requester,
	}}
	gen := &stubGenerator{}
	svc := newTestService(repo, gen)

	matches, err := svc.GetMatches(context.Background(), requester.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty slice, got %v", matches)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("scorer should not be called for an empty pool")
	}
}

func TestGetMatchesFallbackRanking(t *testing.T) {
	requester := requesterProfile()
	requester.UserID = 4

	repo := &fakeProfileRepo{profiles: map[int64]*profile.Profile{
		1: candidate(1, "Ottawa"),
		2: candidate(2, "Toronto"),
		3: candidate(3, "Vancouver"),
		4: requester,
	}}
	svc := newTestService(repo, &stubGenerator{err: errors.New("unavailable")})

	matches, err := svc.GetMatches(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	// Toronto candidate leads at the local band, others follow at 50
	if matches[0].UserID != 2 || matches[0].CompatibilityScore != 80 {
		t.Fatalf("unexpected first match: user %d score %d", matches[0].UserID, matches[0].CompatibilityScore)
	}
	if !matches[0].IsFromToronto {
		t.Fatal("first match should carry the local tier flag")
	}
	for _, m := range matches[1:] {
		if m.CompatibilityScore != 50 || m.IsFromToronto {
			t.Fatalf("unexpected other-tier match: %+v", m)
		}
		if m.CompatibilityReason != fallbackReason {
			t.Fatalf("unexpected reason: %q", m.CompatibilityReason)
		}
	}

	// Navigation fields cover the whole feed
	if matches[0].CurrentIndex != 1 || matches[2].CurrentIndex != 3 {
		t.Fatalf("navigation indices wrong: %d, %d", matches[0].CurrentIndex, matches[2].CurrentIndex)
	}
	if matches[0].CurrentUserCity != "Toronto" {
		t.Fatalf("currentUserCity = %q", matches[0].CurrentUserCity)
	}
}

func TestGetMatchesScoredRanking(t *testing.T) {
	requester := requesterProfile()
	requester.UserID = 4

	repo := &fakeProfileRepo{profiles: map[int64]*profile.Profile{
		1: candidate(1, "Toronto"),
		2: candidate(2, "Toronto"),
		3: candidate(3, "Ottawa"),
		4: requester,
	}}
	gen := &stubGenerator{response: `[
		{"id": 1, "score": 72, "reason": "Decent overlap"},
		{"id": 2, "score": 91, "reason": "Strong communicator"},
		{"id": 3, "score": 99, "reason": "Great on paper, wrong city"}
	]`}
	svc := newTestService(repo, gen)

	matches, err := svc.GetMatches(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{2, 1, 3}
	for i, id := range want {
		if matches[i].UserID != id {
			t.Fatalf("position %d: expected user %d, got %d", i, id, matches[i].UserID)
		}
	}
}

func TestGetMatchesAgeBandFilter(t *testing.T) {
	requester := requesterProfile()
	repo := &fakeProfileRepo{profiles: map[int64]*profile.Profile{
		requester.UserID: requester,
	}}
	scorer := NewScorer(&stubGenerator{}, ScorerConfig{Batch: true, Timeout: time.Second})
	svc := NewService(repo, scorer, Config{PriorityCity: "Toronto", AgeBandYears: 5})

	if _, err := svc.GetMatches(context.Background(), requester.UserID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastFilter == nil {
		t.Fatal("expected a candidate filter")
	}
	if repo.lastFilter.MinAge != 20 || repo.lastFilter.MaxAge != 30 {
		t.Fatalf("unexpected age band: %d-%d", repo.lastFilter.MinAge, repo.lastFilter.MaxAge)
	}
}

func TestGetMatchesStorageError(t *testing.T) {
	requester := requesterProfile()
	repo := &fakeProfileRepo{
		profiles: map[int64]*profile.Profile{requester.UserID: requester},
		listErr:  errors.New("connection refused"),
	}
	svc := newTestService(repo, &stubGenerator{})

	if _, err := svc.GetMatches(context.Background(), requester.UserID); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}
