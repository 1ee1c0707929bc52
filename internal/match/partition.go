// internal/match/partition.go

package match

import (
	"strings"

	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// partitionByCity splits candidates into a local tier and an other tier.
// A candidate is local when its city equals the requester's city
// (case-insensitive) or contains the priority city. Relative order
// within each tier is preserved.
func partitionByCity(requesterCity, priorityCity string, candidates []*profile.Profile) (local, other []*profile.Profile) {
	requesterCity = strings.ToLower(strings.TrimSpace(requesterCity))
	priorityCity = strings.ToLower(strings.TrimSpace(priorityCity))

	for _, c := range candidates {
		if isLocalCity(c.City, requesterCity, priorityCity) {
			local = append(local, c)
		} else {
			other = append(other, c)
		}
	}

	return local, other
}

func isLocalCity(candidateCity, requesterCity, priorityCity string) bool {
	city := strings.ToLower(strings.TrimSpace(candidateCity))
	if city == "" {
		return false
	}
	if requesterCity != "" && city == requesterCity {
		return true
	}
	return priorityCity != "" && strings.Contains(city, priorityCity)
}
