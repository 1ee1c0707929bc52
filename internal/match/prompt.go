// internal/match/prompt.go

package match

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// candidateView is the candidate payload embedded in scoring prompts.
// Only fields relevant to compatibility are sent to the model.
type candidateView struct {
	ID                      int64    `json:"id"`
	PreferredName           string   `json:"preferredName"`
	Age                     int      `json:"age"`
	Gender                  string   `json:"gender"`
	City                    string   `json:"city"`
	Bio                     string   `json:"bio"`
	Occupation              string   `json:"occupation"`
	DebateStyle             string   `json:"debateStyle"`
	CommunicationPreference string   `json:"communicationPreference"`
	ConflictQuestions       []string `json:"conflictQuestions"`
	ConflictAnswers         []string `json:"conflictAnswers"`
}

func toCandidateView(p *profile.Profile) candidateView {
	return candidateView{
		ID:                      p.UserID,
		PreferredName:           p.PreferredName,
		Age:                     p.Age,
		Gender:                  p.Gender,
		City:                    p.City,
		Bio:                     p.Bio,
		Occupation:              p.Occupation,
		DebateStyle:             p.DebateStyle,
		CommunicationPreference: p.CommunicationPreference,
		ConflictQuestions:       p.ConflictQuestions,
		ConflictAnswers:         p.ConflictAnswers,
	}
}

func requesterSummary(requester *profile.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Lives in %s\n", requester.City)
	fmt.Fprintf(&b, "- Aged %d\n", requester.Age)
	fmt.Fprintf(&b, "- Prefers %s communication and a %s debate style\n",
		requester.CommunicationPreference, requester.DebateStyle)

	for i, q := range requester.ConflictQuestions {
		if i < len(requester.ConflictAnswers) {
			fmt.Fprintf(&b, "- When asked %q they answered %q\n", q, requester.ConflictAnswers[i])
		}
	}

	return b.String()
}

// buildBatchPrompt builds the single-call scoring prompt. Local-tier
// candidates are listed before the others, matching the order the
// results are assembled in.
func buildBatchPrompt(requester *profile.Profile, local, other []*profile.Profile) (string, error) {
	views := make([]candidateView, 0, len(local)+len(other))
	for _, p := range local {
		views = append(views, toCandidateView(p))
	}
	for _, p := range other {
		views = append(views, toCandidateView(p))
	}

	payload, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates: %w", err)
	}

	prompt := fmt.Sprintf(`As a matchmaker, rate these dating profiles' compatibility with someone who:
%s
Rate each profile from 0-100, ensuring scores are well-distributed and distinct.
Guidelines:
- Same city as the requester: 70-100 range
- Strong communicators: higher scores
- Growth mindset: higher scores
- Nearby cities: 40-70 range
- Others: 0-40 range

Return a JSON array with objects in this exact format:
[
  {
    "id": profile_id,
    "score": number (make sure scores are different for each profile),
    "reason": "One clear sentence about why this score was given",
    "keyStrengths": ["up to three short phrases"],
    "potentialChallenges": ["up to three short phrases"]
  }
]

Profiles to analyze:
%s`, requesterSummary(requester), payload)

	return prompt, nil
}

// buildSinglePrompt builds the per-candidate scoring prompt used in
// concurrent fan-out mode.
func buildSinglePrompt(requester, candidate *profile.Profile) (string, error) {
	payload, err := json.MarshalIndent(toCandidateView(candidate), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate: %w", err)
	}

	prompt := fmt.Sprintf(`As a matchmaker, rate this dating profile's compatibility with someone who:
%s
Rate the profile from 0-100.

Return a single JSON object in this exact format:
{
  "id": profile_id,
  "score": number,
  "reason": "One clear sentence about why this score was given",
  "keyStrengths": ["up to three short phrases"],
  "potentialChallenges": ["up to three short phrases"]
}

Profile to analyze:
%s`, requesterSummary(requester), payload)

	return prompt, nil
}
