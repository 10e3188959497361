// Package inspire supplies the short motivational quote or Bible verse shown
// on the dashboard.
//
// Content comes from a Provider, normally a generative-text HTTP API. Every
// failure (no credential, network error, rate limit, empty answer) resolves
// to a fixed fallback string, so callers always get something to show.
package inspire

import "fmt"

// Kind selects the flavour of content.
type Kind string

const (
	Quote Kind = "quote"
	Verse Kind = "verse"
)

// Kinds lists every Kind.
var Kinds = []Kind{Quote, Verse}

const (
	fallbackQuote = "The most beautiful thing you can wear is confidence. - Blake Lively"
	fallbackVerse = "For I know the plans I have for you, declares the Lord, plans for welfare and not for evil, to give you a future and a hope. - Jeremiah 29:11"
)

// ParseKind parses "quote" or "verse".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Quote, Verse:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown inspiration kind %q, must be quote or verse", s)
}

// Fallback returns the fixed text for k.
func Fallback(k Kind) string {
	if k == Verse {
		return fallbackVerse
	}
	return fallbackQuote
}

// Prompt returns the instruction sent to a generative provider for k.
func Prompt(k Kind) string {
	if k == Verse {
		return "Generate a single, inspirational Bible verse, including the book, chapter, and verse number (e.g., Philippians 4:13)."
	}
	return "Generate a single, short, uplifting and elegant motivational quote for a woman."
}
