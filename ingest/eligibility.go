package ingest

import (
	"strings"
	"time"

	"tcheplay/youtube"
)

// minMovieDuration separates feature-length movies from clips and trailers.
const minMovieDuration = 20 * time.Minute

// Keyword tables for the text heuristics. All matching is a case-insensitive
// substring check over title plus description.
var (
	reviewTerms = []string{"review", "resenha", "análise"}

	dubTerms = []string{
		"dublado", "dublada", "dublagem",
		"pt-br", "ptbr",
		"português", "portugues",
		"áudio português", "audio português", "audio portugues",
	}

	// Markers that announce subtitles. They disqualify a video only when no
	// explicit dub marker is present: listings often advertise both options.
	subtitleTerms    = []string{"legendado", "leg.", "leg ", "[leg]", "subtitulado", "com legendas"}
	explicitDubTerms = []string{"dublado", "dublada", "dublagem"}
)

// IsEligible reports whether a fetched video belongs in the catalog. All
// predicates must hold: embeddable, feature length, not a review, and
// recognizably dubbed in Portuguese.
func IsEligible(v youtube.Video) bool {
	return v.Embeddable &&
		ParseISODuration(v.Duration) >= minMovieDuration &&
		!LooksLikeReview(v.Title, v.Description) &&
		IsDubbedPortuguese(v.Title, v.Description)
}

// LooksLikeReview flags review and analysis videos that a movie search
// surfaces alongside the movies themselves.
func LooksLikeReview(title, description string) bool {
	return containsAny(normalize(title, description), reviewTerms)
}

// IsDubbedPortuguese classifies a video as carrying a Portuguese dub based on
// its title and description. A subtitle marker without any dub marker wins
// over everything else; otherwise any dub marker qualifies.
func IsDubbedPortuguese(title, description string) bool {
	text := normalize(title, description)

	subtitleOnly := containsAny(text, subtitleTerms) && !containsAny(text, explicitDubTerms)
	if subtitleOnly {
		return false
	}

	return containsAny(text, dubTerms)
}

func normalize(title, description string) string {
	return strings.ToLower(title + " " + description)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
