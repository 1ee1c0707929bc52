// internal/chat/service.go

package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShouArchie/UofT-Hacks/internal/gemini"
	"github.com/ShouArchie/UofT-Hacks/internal/profile"
)

// Service defines the chat roleplay service interface
type Service interface {
	// Reply generates an in-character reply from the match to the
	// user's message.
	Reply(ctx context.Context, message string, match *profile.Profile) (string, error)
}

type service struct {
	generator gemini.Generator
}

// NewService creates a new chat service
func NewService(generator gemini.Generator) Service {
	return &service{generator: generator}
}

func (s *service) Reply(ctx context.Context, message string, match *profile.Profile) (string, error) {
	reply, err := s.generator.Generate(ctx, buildRoleplayPrompt(message, match))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func buildRoleplayPrompt(message string, match *profile.Profile) string {
	return fmt.Sprintf(`You are roleplaying as %s, a romantically interested person in a dating app chat. Here's your profile:
Age: %d
City: %s
Occupation: %s
Communication Style: %s
Debate Approach: %s
Bio: %s

Respond to this message from your match: %q

Guidelines for your response:
1. Stay in character as %s
2. Be flirty but respectful
3. Show genuine interest in getting to know your match
4. Reference your profile details naturally when relevant
5. Keep responses concise (1-3 sentences)
6. Use your defined communication style and debate approach
7. Be authentic and engaging

Remember: You're interested in this person romantically but want to get to know them better through meaningful conversation.`,
		match.PreferredName,
		match.Age,
		match.City,
		match.Occupation,
		match.CommunicationPreference,
		match.DebateStyle,
		match.Bio,
		message,
		match.PreferredName,
	)
}
