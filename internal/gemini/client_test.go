package gemini

import (
	"context"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "gemini-pro"); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := NewClient(context.Background(), "   ", "gemini-pro"); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestDisabledGeneratorAlwaysFails(t *testing.T) {
	var g Generator = Disabled{}

	if _, err := g.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from disabled generator")
	}
}
