// internal/match/service.go

package match

import (
	"context"

	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// ErrProfileNotFound indicates the requester has no profile yet
var ErrProfileNotFound = profile.ErrProfileNotFound

// Config configures the match pipeline
type Config struct {
	// PriorityCity names the city whose residents form the local tier
	PriorityCity string

	// AgeBandYears narrows candidates to requester age +/- band.
	// Zero disables the filter.
	AgeBandYears int
}

// Service defines the match service interface
type Service interface {
	// GetMatches runs the ranking pipeline for the given user:
	// collect candidates, partition by city, score, assemble.
	GetMatches(ctx context.Context, userID int64) ([]*RankedMatch, error)
}

type service struct {
	profiles profile.Repository
	scorer   *Scorer
	config   Config
}

// NewService creates a new match service
func NewService(profiles profile.Repository, scorer *Scorer, config Config) Service {
	if config.PriorityCity == "" {
		config.PriorityCity = "Toronto"
	}
	return &service{
		profiles: profiles,
		scorer:   scorer,
		config:   config,
	}
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*RankedMatch, error) {
	requester, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.profiles.ListCandidates(ctx, userID, s.candidateFilter(requester))
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return []*RankedMatch{}, nil
	}

	local, other := partitionByCity(requester.City, s.config.PriorityCity, candidates)
	results := s.scorer.Score(ctx, requester, local, other)

	return assemble(requester.City, local, other, results), nil
}

func (s *service) candidateFilter(requester *profile.Profile) *profile.CandidateFilter {
	if s.config.AgeBandYears <= 0 {
		return nil
	}

	minAge := requester.Age - s.config.AgeBandYears
	if minAge < 0 {
		minAge = 0
	}

	return &profile.CandidateFilter{
		MinAge: minAge,
		MaxAge: requester.Age + s.config.AgeBandYears,
	}
}
