package response

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// summaryCategory groups buckets under one heading for the full-profile
// summary, mirroring _build_complete_summary's contact/professional/
// expertise/podcast/additional sections. interesting_hooks,
// controversial_takes, fun_fact, and media_experience from the original's
// podcast/additional groups are dropped - this catalog never declares
// them - and ideal_podcast, which the original left uncategorized, is
// folded into PODCAST FOCUS since it's clearly podcast-facing.
var summaryCategories = []struct {
	heading string
	buckets []bucket.ID
}{
	{"CONTACT INFORMATION", []bucket.ID{bucket.FullName, bucket.Email, bucket.Phone, bucket.LinkedInURL, bucket.Website, bucket.SocialMedia}},
	{"PROFESSIONAL BACKGROUND", []bucket.ID{bucket.CurrentRole, bucket.Company, bucket.YearsExperience, bucket.ProfessionalBio}},
	{"EXPERTISE & ACCOMPLISHMENTS", []bucket.ID{bucket.ExpertiseKeywords, bucket.SuccessStories, bucket.Achievements, bucket.UniquePerspective}},
	{"PODCAST FOCUS", []bucket.ID{bucket.PodcastTopics, bucket.TargetAudience, bucket.KeyMessage, bucket.SpeakingExperience, bucket.IdealPodcast}},
	{"ADDITIONAL INFORMATION", []bucket.ID{bucket.SchedulingPreference, bucket.PromotionItems}},
}

// buildCompleteSummary renders every filled bucket, grouped under the
// category headings above, in the order each group lists its buckets.
// Trailing blank lines between sections are trimmed.
func buildCompleteSummary(store *convstate.Store) string {
	cat := store.Catalog()
	added := make(map[bucket.ID]bool)
	var parts []string
	lastHeading := ""

	for _, group := range summaryCategories {
		var lines []string
		for _, id := range group.buckets {
			entries := store.Entries(id)
			if len(entries) == 0 {
				continue
			}
			def, _ := cat.Get(id)
			lines = append(lines, fmt.Sprintf("• %s: %s", def.Name, formatBucketValue(id, entries)))
			added[id] = true
		}
		if len(lines) > 0 {
			lastHeading = group.heading
			parts = append(parts, group.heading+":")
			parts = append(parts, lines...)
			parts = append(parts, "")
		}
	}

	// Any bucket filled but not covered by a category above still shows up,
	// appended to ADDITIONAL INFORMATION (creating that section if every
	// category above happened to be empty).
	var leftover []string
	for _, d := range cat.List() {
		if added[d.ID] {
			continue
		}
		entries := store.Entries(d.ID)
		if len(entries) == 0 {
			continue
		}
		leftover = append(leftover, fmt.Sprintf("• %s: %s", d.Name, formatBucketValue(d.ID, entries)))
	}
	if len(leftover) > 0 {
		if len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
		if lastHeading != "ADDITIONAL INFORMATION" {
			if len(parts) > 0 {
				parts = append(parts, "")
			}
			parts = append(parts, "ADDITIONAL INFORMATION:")
		}
		parts = append(parts, leftover...)
	}

	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "\n")
}

// formatBucketValue renders one bucket's stored entries for display,
// mirroring _format_bucket_value's per-bucket special cases.
func formatBucketValue(id bucket.ID, entries []convstate.BucketEntry) string {
	if len(entries) == 1 && entries[0].Value.String() == convstate.NoneMarker {
		return "None provided"
	}

	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = e.Value.String()
	}

	switch id {
	case bucket.ExpertiseKeywords:
		return strings.Join(items, ", ")
	case bucket.PodcastTopics, bucket.SuccessStories, bucket.Achievements:
		var b strings.Builder
		for i, item := range items {
			b.WriteString("\n  ")
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
			b.WriteString(item)
		}
		return b.String()
	case bucket.SocialMedia:
		var b strings.Builder
		for _, item := range items {
			b.WriteString("\n  - ")
			b.WriteString(item)
		}
		return b.String()
	default:
		if len(items) > 1 {
			return strings.Join(items, ", ")
		}
		if len(items) == 1 {
			return items[0]
		}
		return ""
	}
}
