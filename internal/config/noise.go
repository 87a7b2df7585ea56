package config

import (
	"os"
	"strings"
)

const defaultNoisePatterns = "PAGSEGURO"

// NoisePatterns returns the description substrings that mark non-bank feed
// entries (card-processor payouts and the like) to drop from reconciliation
// candidates. Comma-separated override via NOISE_EXCLUDE_PATTERNS.
func NoisePatterns() []string {
	raw := os.Getenv("NOISE_EXCLUDE_PATTERNS")
	if raw == "" {
		raw = defaultNoisePatterns
	}

	var patterns []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
