// Package entity implements the deterministic regex pass over a user
// message: email, phone, LinkedIn URL, generic website, and integer years.
// Its output feeds the classifier's prompt and serves as its fallback when
// the LLM call fails or times out.
package entity

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	linkedinRe = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
	websiteRe  = regexp.MustCompile(`https?://(?:www\.)?[\w.\-]+\.[a-zA-Z]{2,}(?:/[\w.\-]*)*`)
	yearsRe    = regexp.MustCompile(`(?i)\b(\d+)\s*(?:years?|yrs?)\b`)
)

// Entities holds whatever deterministic matches were found in a message.
// A zero value field means that entity type was not present.
type Entities struct {
	Email    string
	Phone    string
	LinkedIn string
	Website  string
	Years    int
	HasYears bool
}

// Extract runs every regex pass over message and returns whatever matched.
// Phone numbers are normalized to NNN-NNN-NNNN (the country-code digit is
// stripped automatically since the pattern only captures the 10 local
// digits).
func Extract(message string) Entities {
	var e Entities

	if m := emailRe.FindString(message); m != "" {
		e.Email = m
	}
	if m := phoneRe.FindStringSubmatch(message); m != nil {
		e.Phone = m[1] + "-" + m[2] + "-" + m[3]
	}
	if m := linkedinRe.FindString(message); m != "" {
		e.LinkedIn = m
	}
	// Prefer the more specific LinkedIn match over the generic website
	// pattern so a message with only a LinkedIn URL doesn't also produce
	// a duplicate (and less useful) Website hit.
	if m := websiteRe.FindString(message); m != "" && !strings.Contains(m, "linkedin.com") {
		e.Website = m
	}
	if m := yearsRe.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			e.Years = n
			e.HasYears = true
		}
	}

	return e
}

// Any reports whether at least one entity was extracted.
func (e Entities) Any() bool {
	return e.Email != "" || e.Phone != "" || e.LinkedIn != "" || e.Website != "" || e.HasYears
}
