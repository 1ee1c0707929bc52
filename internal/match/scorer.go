// internal/match/scorer.go

package match

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ShouArchie/UofT-Hacks/internal/gemini"
	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// Fallback bands used when scoring is unavailable or unparsable
const (
	fallbackLocalScore = 80
	fallbackOtherScore = 50
	fallbackReason     = "Basic compatibility score based on location"

	missingRankingReason = "Analysis not available"
)

// ScorerConfig configures the compatibility scorer
type ScorerConfig struct {
	// Timeout bounds each generation call
	Timeout time.Duration

	// Batch scores every candidate in one call when true; otherwise
	// each candidate is scored in its own concurrent call.
	Batch bool
}

// Scorer assigns compatibility scores to partitioned candidates.
// It never fails: any scoring error degrades to the location-based
// fallback at the granularity of the failed call.
type Scorer struct {
	generator gemini.Generator
	config    ScorerConfig
}

// NewScorer creates a new compatibility scorer
func NewScorer(generator gemini.Generator, config ScorerConfig) *Scorer {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Scorer{generator: generator, config: config}
}

// Score returns a compatibility result for every candidate, keyed by user ID
func (s *Scorer) Score(ctx context.Context, requester *profile.Profile, local, other []*profile.Profile) map[int64]CompatibilityResult {
	if len(local)+len(other) == 0 {
		return map[int64]CompatibilityResult{}
	}

	if s.config.Batch {
		return s.scoreBatch(ctx, requester, local, other)
	}
	return s.scoreEach(ctx, requester, local, other)
}

func (s *Scorer) scoreBatch(ctx context.Context, requester *profile.Profile, local, other []*profile.Profile) map[int64]CompatibilityResult {
	rankings, err := s.rank(ctx, requester, local, other)
	if err != nil {
		log.Printf("match: batch scoring failed, using fallback: %v", err)
		scoringFallbacksTotal.WithLabelValues("batch").Inc()
		return fallbackResults(local, other)
	}

	byID := make(map[int64]ranking, len(rankings))
	for _, r := range rankings {
		byID[r.ID] = r
	}

	results := make(map[int64]CompatibilityResult, len(local)+len(other))
	assign := func(candidates []*profile.Profile) {
		for _, c := range candidates {
			if r, ok := byID[c.UserID]; ok {
				results[c.UserID] = resultFromRanking(r)
				compatibilityScores.Observe(float64(r.Score))
			} else {
				results[c.UserID] = CompatibilityResult{Score: 0, Reason: missingRankingReason}
			}
		}
	}
	assign(local)
	assign(other)

	return results
}

func (s *Scorer) scoreEach(ctx context.Context, requester *profile.Profile, local, other []*profile.Profile) map[int64]CompatibilityResult {
	results := make(map[int64]CompatibilityResult, len(local)+len(other))

	var mu sync.Mutex
	var wg sync.WaitGroup

	score := func(candidate *profile.Profile, isLocal bool) {
		defer wg.Done()

		result, err := s.rankOne(ctx, requester, candidate)
		if err != nil {
			log.Printf("match: scoring candidate %d failed, using fallback: %v", candidate.UserID, err)
			scoringFallbacksTotal.WithLabelValues("single").Inc()
			result = fallbackResult(isLocal)
		} else {
			compatibilityScores.Observe(float64(result.Score))
		}

		mu.Lock()
		results[candidate.UserID] = result
		mu.Unlock()
	}

	for _, c := range local {
		wg.Add(1)
		go score(c, true)
	}
	for _, c := range other {
		wg.Add(1)
		go score(c, false)
	}
	wg.Wait()

	return results
}

func (s *Scorer) rank(ctx context.Context, requester *profile.Profile, local, other []*profile.Profile) ([]ranking, error) {
	prompt, err := buildBatchPrompt(requester, local, other)
	if err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	rankings, err := parseRankings(raw)
	if err != nil {
		log.Printf("match: unparsable scoring response: %q", raw)
		return nil, err
	}

	return rankings, nil
}

func (s *Scorer) rankOne(ctx context.Context, requester, candidate *profile.Profile) (CompatibilityResult, error) {
	prompt, err := buildSinglePrompt(requester, candidate)
	if err != nil {
		return CompatibilityResult{}, err
	}

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return CompatibilityResult{}, err
	}

	rankings, err := parseRankings(raw)
	if err != nil {
		log.Printf("match: unparsable scoring response: %q", raw)
		return CompatibilityResult{}, err
	}

	return resultFromRanking(rankings[0]), nil
}

func resultFromRanking(r ranking) CompatibilityResult {
	return CompatibilityResult{
		Score:               r.Score,
		Reason:              r.Reason,
		KeyStrengths:        r.KeyStrengths,
		PotentialChallenges: r.PotentialChallenges,
	}
}

func (s *Scorer) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompt)
	scoringDuration.Observe(time.Since(start).Seconds())

	return raw, err
}

func fallbackResults(local, other []*profile.Profile) map[int64]CompatibilityResult {
	results := make(map[int64]CompatibilityResult, len(local)+len(other))
	for _, c := range local {
		results[c.UserID] = fallbackResult(true)
	}
	for _, c := range other {
		results[c.UserID] = fallbackResult(false)
	}
	return results
}

func fallbackResult(isLocal bool) CompatibilityResult {
	score := fallbackOtherScore
	if isLocal {
		score = fallbackLocalScore
	}
	return CompatibilityResult{Score: score, Reason: fallbackReason}
}
