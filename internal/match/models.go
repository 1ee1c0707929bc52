// internal/match/models.go

package match

import (
	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// CompatibilityResult is the scorer's verdict for one candidate
type CompatibilityResult struct {
	Score               int
	Reason              string
	KeyStrengths        []string
	PotentialChallenges []string
}

// RankedMatch is one entry of the ranked match feed: the candidate's
// profile plus the compatibility verdict and navigation fields.
type RankedMatch struct {
	*profile.Profile

	CompatibilityScore  int      `json:"compatibilityScore"`
	CompatibilityReason string   `json:"compatibilityReason"`
	KeyStrengths        []string `json:"keyStrengths,omitempty"`
	PotentialChallenges []string `json:"potentialChallenges,omitempty"`
	IsFromToronto       bool     `json:"isFromToronto"`

	TotalProfiles   int    `json:"totalProfiles"`
	CurrentIndex    int    `json:"currentIndex"`
	HasNext         bool   `json:"hasNext"`
	HasPrevious     bool   `json:"hasPrevious"`
	CurrentUserCity string `json:"currentUserCity"`
}
