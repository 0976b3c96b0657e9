package bucket

import (
	"regexp"
	"strings"
)

// SocialProfile is the structured representation of one social media
// profile, decomposed from whatever free-form string the user wrote.
type SocialProfile struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle,omitempty"`
	URL      string `json:"url,omitempty"`
	Display  string `json:"display_format"`
}

// String renders the profile back to a user-friendly line, preferring the
// user's original phrasing when one was recorded.
func (p SocialProfile) String() string {
	if p.Display != "" {
		return p.Display
	}
	switch {
	case p.URL != "":
		return titleCase(p.Platform) + ": " + p.URL
	case p.Handle != "":
		return titleCase(p.Platform) + ": @" + p.Handle
	default:
		return titleCase(p.Platform) + " profile"
	}
}

type platformPattern struct {
	platform string
	re       *regexp.Regexp
}

// platformPatterns mirrors SocialMediaExtractor.PLATFORM_PATTERNS.
var platformPatterns = []platformPattern{
	{"twitter", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?twitter\.com/(\w+)`)},
	{"twitter", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?x\.com/(\w+)`)},
	{"instagram", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?instagram\.com/(\w+)`)},
	{"linkedin", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/([\w-]+)`)},
	{"youtube", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/(?:c|channel|user)/([\w-]+)`)},
	{"facebook", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?facebook\.com/([\w.]+)`)},
	{"facebook", regexp.MustCompile(`(?i)fb\.com/([\w.]+)`)},
	{"tiktok", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?tiktok\.com/@([\w.]+)`)},
	{"github", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([\w-]+)`)},
	{"medium", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?medium\.com/@([\w.]+)`)},
	{"substack", regexp.MustCompile(`(?i)(?:https?://)?([\w-]+)\.substack\.com`)},
}

var (
	urlInTextRe    = regexp.MustCompile(`https?://\S+`)
	genericLineRe  = regexp.MustCompile(`^(\w+):\s*(.+)$`)
	socialKeywords = []string{"twitter", "instagram", "linkedin", "facebook", "youtube", "tiktok", "github", "medium", "substack"}
)

// ParseSocialProfiles decomposes free-form social-media text (one profile
// per line) into structured profiles. It tries, per line: known platform
// URL/handle patterns, then a generic "platform: value" shape, then a
// last-resort keyword match, mirroring SocialMediaExtractor in the source
// this was distilled from.
func ParseSocialProfiles(text string) []SocialProfile {
	var profiles []SocialProfile
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if p, ok := parseSocialLine(line); ok {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

func parseSocialLine(text string) (SocialProfile, bool) {
	for _, pp := range platformPatterns {
		m := pp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		handle := ""
		if len(m) > 1 {
			handle = m[1]
		}
		url := ""
		if um := urlInTextRe.FindString(text); um != "" {
			url = um
		}
		return SocialProfile{Platform: pp.platform, Handle: handle, URL: url, Display: text}, true
	}

	if m := genericLineRe.FindStringSubmatch(text); m != nil {
		platform := strings.ToLower(m[1])
		value := strings.TrimSpace(m[2])
		var handle, url string
		switch {
		case strings.HasPrefix(value, "@"):
			handle = strings.TrimPrefix(value, "@")
		case strings.HasPrefix(value, "http"):
			url = value
		default:
			handle = strings.ReplaceAll(value, "@", "")
		}
		return SocialProfile{Platform: platform, Handle: handle, URL: url, Display: text}, true
	}

	lower := strings.ToLower(text)
	for _, kw := range socialKeywords {
		if strings.Contains(lower, kw) {
			return SocialProfile{Platform: kw, Display: text}, true
		}
	}

	return SocialProfile{}, false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
