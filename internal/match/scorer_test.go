package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

type stubGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string

	// respond overrides response when set; receives the prompt
	respond func(prompt string) (string, error)
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	respond := s.respond
	s.mu.Unlock()

	if respond != nil {
		return respond(prompt)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func requesterProfile() *profile.Profile {
	return &profile.Profile{
		UserID:                  100,
		PreferredName:           "Alex",
		Age:                     25,
		City:                    "Toronto",
		DebateStyle:             profile.DebateStyleCasual,
		CommunicationPreference: profile.CommunicationText,
		ConflictQuestions:       []string{"How do you handle disagreements?"},
		ConflictAnswers:         []string{"I talk them through calmly."},
	}
}

func TestScorerBatchSuccess(t *testing.T) {
	stub := &stubGenerator{response: `[
		{"id": 1, "score": 88, "reason": "Same city, similar style"},
		{"id": 2, "score": 45, "reason": "Different city"}
	]`}
	scorer := NewScorer(stub, ScorerConfig{Batch: true, Timeout: time.Second})

	local := []*profile.Profile{candidate(1, "Toronto")}
	other := []*profile.Profile{candidate(2, "Ottawa")}

	results := scorer.Score(context.Background(), requesterProfile(), local, other)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Score != 88 || results[2].Score != 45 {
		t.Fatalf("unexpected scores: %+v", results)
	}
	if len(stub.prompts) != 1 {
		t.Fatalf("expected a single batched call, got %d", len(stub.prompts))
	}
	if !strings.Contains(stub.prompts[0], "Lives in Toronto") {
		t.Fatalf("prompt missing requester city: %q", stub.prompts[0])
	}
}

func TestScorerBatchFallbackOnError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	scorer := NewScorer(stub, ScorerConfig{Batch: true, Timeout: time.Second})

	local := []*profile.Profile{candidate(1, "Toronto")}
	other := []*profile.Profile{candidate(2, "Ottawa"), candidate(3, "Vancouver")}

	results := scorer.Score(context.Background(), requesterProfile(), local, other)

	if results[1].Score != fallbackLocalScore {
		t.Fatalf("local fallback score = %d, want %d", results[1].Score, fallbackLocalScore)
	}
	for _, id := range []int64{2, 3} {
		if results[id].Score != fallbackOtherScore {
			t.Fatalf("other fallback score = %d, want %d", results[id].Score, fallbackOtherScore)
		}
		if results[id].Reason != fallbackReason {
			t.Fatalf("unexpected fallback reason: %q", results[id].Reason)
		}
	}
}

func TestScorerBatchFallbackOnUnparsableResponse(t *testing.T) {
	stub := &stubGenerator{response: "I'm sorry, I can't rate these profiles."}
	scorer := NewScorer(stub, ScorerConfig{Batch: true, Timeout: time.Second})

	local := []*profile.Profile{candidate(1, "Toronto")}

	results := scorer.Score(context.Background(), requesterProfile(), local, nil)

	if results[1].Score != fallbackLocalScore || results[1].Reason != fallbackReason {
		t.Fatalf("unexpected result: %+v", results[1])
	}
}

func TestScorerBatchMissingCandidate(t *testing.T) {
	// The model only scored one of two candidates
	stub := &stubGenerator{response: `[{"id": 1, "score": 80, "reason": "Good fit"}]`}
	scorer := NewScorer(stub, ScorerConfig{Batch: true, Timeout: time.Second})

	local := []*profile.Profile{candidate(1, "Toronto"), candidate(2, "Toronto")}

	results := scorer.Score(context.Background(), requesterProfile(), local, nil)

	if results[1].Score != 80 {
		t.Fatalf("scored candidate got %d", results[1].Score)
	}
	if results[2].Score != 0 || results[2].Reason != missingRankingReason {
		t.Fatalf("missing candidate result: %+v", results[2])
	}
}

func TestScorerPerCandidateMode(t *testing.T) {
	stub := &stubGenerator{
		respond: func(prompt string) (string, error) {
			// Candidate 2's call fails; the rest succeed.
			if strings.Contains(prompt, `"id": 2,`) {
				return "", errors.New("timeout")
			}
			for id := int64(1); id <= 3; id++ {
				if strings.Contains(prompt, fmt.Sprintf(`"id": %d,`, id)) {
					return fmt.Sprintf(`{"id": %d, "score": %d, "reason": "scored"}`, id, 60+id), nil
				}
			}
			return "", errors.New("unknown candidate")
		},
	}
	scorer := NewScorer(stub, ScorerConfig{Batch: false, Timeout: time.Second})

	local := []*profile.Profile{candidate(1, "Toronto"), candidate(2, "Toronto")}
	other := []*profile.Profile{candidate(3, "Ottawa")}

	results := scorer.Score(context.Background(), requesterProfile(), local, other)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Score != 61 || results[3].Score != 63 {
		t.Fatalf("unexpected scored results: %+v", results)
	}
	// Failed local candidate degrades alone, at the local band
	if results[2].Score != fallbackLocalScore || results[2].Reason != fallbackReason {
		t.Fatalf("unexpected fallback result: %+v", results[2])
	}
}

// blockingGenerator hangs until the call's context is cancelled
type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestScorerTimeoutFallsBack(t *testing.T) {
	scorer := NewScorer(blockingGenerator{}, ScorerConfig{Batch: true, Timeout: 50 * time.Millisecond})

	local := []*profile.Profile{candidate(1, "Toronto")}
	other := []*profile.Profile{candidate(2, "Ottawa")}

	start := time.Now()
	results := scorer.Score(context.Background(), requesterProfile(), local, other)
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Fatalf("hung generator stalled scoring for %v", elapsed)
	}
	if results[1].Score != fallbackLocalScore || results[2].Score != fallbackOtherScore {
		t.Fatalf("expected fallback bands, got %+v", results)
	}
	if results[1].Reason != fallbackReason {
		t.Fatalf("unexpected reason: %q", results[1].Reason)
	}
}

func TestScorerTimeoutPerCandidateMode(t *testing.T) {
	scorer := NewScorer(blockingGenerator{}, ScorerConfig{Batch: false, Timeout: 50 * time.Millisecond})

	local := []*profile.Profile{candidate(1, "Toronto")}
	other := []*profile.Profile{candidate(2, "Ottawa")}

	start := time.Now()
	results := scorer.Score(context.Background(), requesterProfile(), local, other)
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Fatalf("hung generator stalled scoring for %v", elapsed)
	}
	if results[1].Score != fallbackLocalScore || results[2].Score != fallbackOtherScore {
		t.Fatalf("expected fallback bands, got %+v", results)
	}
}

func TestScorerEmptyPool(t *testing.T) {
	stub := &stubGenerator{}
	scorer := NewScorer(stub, ScorerConfig{Batch: true, Timeout: time.Second})

	results := scorer.Score(context.Background(), requesterProfile(), nil, nil)

	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if len(stub.prompts) != 0 {
		t.Fatalf("expected no generation calls, got %d", len(stub.prompts))
	}
}
