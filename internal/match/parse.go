// internal/match/parse.go

package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceStart = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEnd   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// ranking is one scored candidate as returned by the model.
// The strengths/challenges arrays are optional; the model does not
// always produce them.
type ranking struct {
	ID                  int64    `json:"id"`
	Score               int      `json:"score"`
	Reason              string   `json:"reason"`
	KeyStrengths        []string `json:"keyStrengths"`
	PotentialChallenges []string `json:"potentialChallenges"`
}

// cleanResponse strips markdown code fences and a BOM, leaving the raw payload
func cleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStart.ReplaceAllString(s, "")
	s = fenceEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractFirstJSON returns the first complete JSON array or object in
// the input, tracking string literals and escapes so braces inside
// reasons do not break the scan.
func extractFirstJSON(input string) string {
	start := strings.IndexAny(input, "[{")
	if start == -1 {
		return ""
	}

	open := input[start]
	var close byte = ']'
	if open == '{' {
		close = '}'
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}

// parseRankings parses the model output into scored candidates.
// Accepts either a JSON array or a single object. Scores are clamped
// to [0,100]; an entry without a reason is rejected.
func parseRankings(raw string) ([]ranking, error) {
	payload := extractFirstJSON(cleanResponse(raw))
	if payload == "" {
		return nil, errors.New("no JSON payload in response")
	}

	var rankings []ranking
	if payload[0] == '{' {
		var single ranking
		if err := json.Unmarshal([]byte(payload), &single); err != nil {
			return nil, fmt.Errorf("failed to parse ranking object: %w", err)
		}
		rankings = []ranking{single}
	} else {
		if err := json.Unmarshal([]byte(payload), &rankings); err != nil {
			return nil, fmt.Errorf("failed to parse ranking array: %w", err)
		}
	}

	if len(rankings) == 0 {
		return nil, errors.New("response contained no rankings")
	}

	for i := range rankings {
		if strings.TrimSpace(rankings[i].Reason) == "" {
			return nil, fmt.Errorf("ranking for id %d has no reason", rankings[i].ID)
		}
		rankings[i].Score = clampScore(rankings[i].Score)
	}

	return rankings, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
