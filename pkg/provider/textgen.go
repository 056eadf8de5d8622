package provider

import "context"

// TextGenerator abstracts the opaque text-generation service used for
// recommendation insight copy. Implementations fall back to static text
// on any upstream failure rather than surfacing errors to callers.
type TextGenerator interface {
	// GenerateInsight produces a short bilingual insight for a user's
	// recommendation set from a plain-text prompt.
	GenerateInsight(ctx context.Context, prompt string) (string, error)
}
