package response

import "strings"

// softLengthCap is the point past which a short conversational reply gets
// trimmed to its first two sentences. Summaries and reviews are exempt -
// they're expected to run long - via the markers below.
const softLengthCap = 300

var lengthCapExemptMarkers = []string{
	"Here's your complete profile:",
	"Here's what I have so far:",
}

// EnsureQuality is the exported entrypoint the orchestrator calls on every
// reply right before it leaves the engine, matching spec.md §4.8's final
// output quality pass. None of the Handle*/Build methods in this package
// apply it themselves, since several of them return early with handled=false
// for the caller to try the next handler - only the orchestrator knows
// which return is actually final for the turn.
func EnsureQuality(text string) string { return ensureQuality(text) }

// ensureQuality runs every reply through the same cleanup pass
// ensure_response_quality applies: collapse runs of whitespace within each
// line (newlines are structural and preserved), guarantee terminal
// punctuation, cap length for non-summary replies, and drop immediately
// repeated words.
func ensureQuality(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	if text != "" {
		last := text[len(text)-1]
		if last != '.' && last != '!' && last != '?' {
			text += "."
		}
	}

	if len(text) > softLengthCap && !containsAny(text, lengthCapExemptMarkers) {
		sentences := strings.Split(text, ". ")
		if len(sentences) > 2 {
			text = strings.Join(sentences[:2], ". ") + "."
		}
	}

	lines = strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		words := strings.Fields(line)
		cleaned := words[:0:0]
		for j, w := range words {
			if j > 0 {
				prev := cleaned[len(cleaned)-1]
				if strings.EqualFold(w, prev) {
					continue
				}
				// "Great great," keeps the second word's punctuation: "Great,".
				core := strings.TrimRight(w, ".,!?;:")
				if core != "" && core != w && strings.EqualFold(core, prev) {
					cleaned[len(cleaned)-1] = prev + w[len(core):]
					continue
				}
			}
			cleaned = append(cleaned, w)
		}
		lines[i] = strings.Join(cleaned, " ")
	}
	return strings.Join(lines, "\n")
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
