// internal/match/assembler.go

package match

import (
	"sort"

	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// assemble builds the final ranked feed: the local tier sorted by score
// descending, then the other tier sorted the same way, with 1-based
// navigation fields attached. Sorting is stable, so candidates with
// equal scores keep their collection order.
func assemble(requesterCity string, local, other []*profile.Profile, results map[int64]CompatibilityResult) []*RankedMatch {
	matches := make([]*RankedMatch, 0, len(local)+len(other))

	tier := func(candidates []*profile.Profile, isLocal bool) []*RankedMatch {
		ranked := make([]*RankedMatch, 0, len(candidates))
		for _, c := range candidates {
			result := results[c.UserID]
			ranked = append(ranked, &RankedMatch{
				Profile:             c,
				CompatibilityScore:  result.Score,
				CompatibilityReason: result.Reason,
				KeyStrengths:        result.KeyStrengths,
				PotentialChallenges: result.PotentialChallenges,
				IsFromToronto:       isLocal,
			})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].CompatibilityScore > ranked[j].CompatibilityScore
		})
		return ranked
	}

	matches = append(matches, tier(local, true)...)
	matches = append(matches, tier(other, false)...)

	total := len(matches)
	for i, m := range matches {
		m.TotalProfiles = total
		m.CurrentIndex = i + 1
		m.HasNext = i < total-1
		m.HasPrevious = i > 0
		m.CurrentUserCity = requesterCity
	}

	return matches
}
