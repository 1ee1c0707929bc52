// internal/gemini/disabled.go

package gemini

import (
	"context"
	"errors"
)

// Disabled is a Generator used when no API key is configured.
// Every call fails, which pushes callers onto their fallback paths.
type Disabled struct{}

// Generate always returns an error
func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("gemini is not configured")
}
