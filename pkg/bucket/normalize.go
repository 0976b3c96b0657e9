package bucket

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonDigitRe      = regexp.MustCompile(`\D`)
	linkedInSlugRe  = regexp.MustCompile(`linkedin\.com/in/([\w-]+)`)
	yearsNumericRe  = regexp.MustCompile(`^(\d+)`)
	titleWords      = map[string]string{
		"dr": "Dr.", "dr.": "Dr.",
		"mr": "Mr.", "mr.": "Mr.",
		"ms": "Ms.", "ms.": "Ms.",
		"mrs": "Mrs.", "mrs.": "Mrs.",
		"prof": "Prof.", "prof.": "Prof.",
	}
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone reduces a phone number to digits and reformats US-style
// numbers as NNN-NNN-NNNN, stripping a leading country code of 1. Numbers
// that don't match a recognized length are returned unchanged.
func NormalizePhone(phone string) string {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return digits[1:4] + "-" + digits[4:7] + "-" + digits[7:]
	default:
		return phone
	}
}

// NormalizeLinkedInURL canonicalizes a LinkedIn profile reference to
// https://www.linkedin.com/in/<slug>.
func NormalizeLinkedInURL(url string) string {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	if m := linkedInSlugRe.FindStringSubmatch(strings.ToLower(url)); m != nil {
		return "https://www.linkedin.com/in/" + m[1]
	}
	return url
}

// NormalizeWebsite ensures a website URL carries an https:// prefix.
func NormalizeWebsite(url string) string {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	return url
}

// NormalizeName title-cases a name while preserving honorific titles
// (Dr., Mr., Ms., Mrs., Prof.) with a trailing period.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(strings.TrimSpace(name)), " ")
	words := strings.Split(name, " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if title, ok := titleWords[strings.ToLower(w)]; ok {
			out = append(out, title)
			continue
		}
		out = append(out, capitalize(w))
	}
	return strings.Join(out, " ")
}

// NormalizeYearsExperience extracts the leading integer from a free-form
// years-of-experience value ("4 years", "15+ years", "7") and returns it
// as an int, per the Open Question decision recorded in SPEC_FULL.md: the
// raw string form is discarded, not retained.
func NormalizeYearsExperience(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	m := yearsNumericRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
