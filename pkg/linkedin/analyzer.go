// Package linkedin implements the orchestrator.LinkedInAnalyzer
// collaborator (spec.md §6 item 2) by fetching a public LinkedIn profile
// page and scraping its visible about/experience text with goquery, the
// same fallback-parsing approach beeper-ai-bridge's link previewer uses
// when a page carries no usable OpenGraph data.
package linkedin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/orchestrator"
)

// DefaultMaxPageBytes caps how much of a profile page gets downloaded.
const DefaultMaxPageBytes = 5 * 1024 * 1024

// Analyzer fetches and scrapes a public LinkedIn profile page.
type Analyzer struct {
	httpClient   *http.Client
	maxPageBytes int64
	userAgent    string
	log          zerolog.Logger
}

// New builds an Analyzer. A nil client falls back to http.DefaultClient.
func New(client *http.Client, log zerolog.Logger) *Analyzer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Analyzer{
		httpClient:   client,
		maxPageBytes: DefaultMaxPageBytes,
		userAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		log:          log.With().Str("component", "linkedin").Logger(),
	}
}

var _ orchestrator.LinkedInAnalyzer = (*Analyzer)(nil)

var yearsRe = regexp.MustCompile(`(\d{1,2})\+?\s*years?`)

// Analyze fetches url and extracts the fields orchestrator.LinkedInProfile
// names. LinkedIn serves most profile detail only to signed-in sessions,
// so this stays best-effort: a thin page that still returns 2xx yields a
// mostly-empty profile rather than an error. A request, read or parse
// failure, or a non-2xx status, returns an error, which the caller logs
// and swallows.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*orchestrator.LinkedInProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin: build request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin: fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("linkedin: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("linkedin: read profile: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("linkedin: parse profile: %w", err)
	}

	return extractProfile(doc), nil
}

func extractProfile(doc *goquery.Document) *orchestrator.LinkedInProfile {
	profile := &orchestrator.LinkedInProfile{}

	if desc, exists := doc.Find("meta[name='description']").First().Attr("content"); exists {
		profile.ProfessionalBio = strings.TrimSpace(desc)
	}
	if profile.ProfessionalBio == "" {
		profile.ProfessionalBio = strings.TrimSpace(doc.Find("section.summary p, .pv-about__summary-text").First().Text())
	}

	headline := strings.TrimSpace(doc.Find(".top-card-layout__headline, .pv-text-details__left-panel h2").First().Text())
	if headline != "" {
		profile.UniquePerspective = headline
	}

	if m := yearsRe.FindStringSubmatch(doc.Find("body").Text()); len(m) == 2 {
		fmt.Sscanf(m[1], "%d", &profile.YearsExperience)
	}

	doc.Find(".top-card__badge, .pv-top-card--experience-list-item").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			profile.ExpertiseKeywords = append(profile.ExpertiseKeywords, text)
		}
	})

	doc.Find(".experience-item h3, .pv-entity__summary-info h3").Each(func(i int, sel *goquery.Selection) {
		if i >= 5 {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			profile.KeyAchievements = append(profile.KeyAchievements, text)
		}
	})

	return profile
}
