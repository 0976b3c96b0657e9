package bucket

import "testing"

func TestDefaultCatalogHasTwentyBuckets(t *testing.T) {
	c := Default()
	if got := len(c.List()); got != 20 {
		t.Fatalf("len(List()) = %d, want 20", got)
	}
}

func TestRequiredIDsMatchSpec(t *testing.T) {
	c := Default()
	want := map[ID]bool{
		FullName: true, Email: true, CurrentRole: true, ProfessionalBio: true,
		ExpertiseKeywords: true, SuccessStories: true, UniquePerspective: true,
		PodcastTopics: true, TargetAudience: true, KeyMessage: true,
	}
	got := c.RequiredIDs()
	if len(got) != len(want) {
		t.Fatalf("RequiredIDs() = %v, want %d entries", got, len(want))
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected required bucket %q", id)
		}
	}
}

func TestValidateValueEmail(t *testing.T) {
	c := Default()
	if !c.ValidateValue(Email, "jane@acme.io") {
		t.Error("expected valid email to pass")
	}
	if c.ValidateValue(Email, "not-an-email") {
		t.Error("expected invalid email to fail")
	}
}

func TestValidateValueUnknownBucket(t *testing.T) {
	if Default().ValidateValue(ID("nope"), "x") {
		t.Error("unknown bucket should never validate")
	}
}

func TestExpertiseKeywordsRequiresThree(t *testing.T) {
	c := Default()
	if c.ValidateValue(ExpertiseKeywords, []string{"AI", "ML"}) {
		t.Error("two keywords should fail the min-3 rule")
	}
	if !c.ValidateValue(ExpertiseKeywords, []string{"AI", "ML", "Data"}) {
		t.Error("three keywords should pass")
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  john   smith  ": "John Smith",
		"dr. michael chen": "Dr. Michael Chen",
		"ms jane doe":       "Ms. Jane Doe",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"555-123-4567":     "555-123-4567",
		"(555) 123-4567":   "555-123-4567",
		"15551234567":      "555-123-4567",
		"not a phone":      "not a phone",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLinkedInURL(t *testing.T) {
	cases := map[string]string{
		"linkedin.com/in/janedoe":              "https://www.linkedin.com/in/janedoe",
		"https://www.linkedin.com/in/jane-doe": "https://www.linkedin.com/in/jane-doe",
	}
	for in, want := range cases {
		if got := NormalizeLinkedInURL(in); got != want {
			t.Errorf("NormalizeLinkedInURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeYearsExperience(t *testing.T) {
	cases := map[string]int{
		"4 years":  4,
		"15+ years": 15,
		"7":        7,
	}
	for in, want := range cases {
		got, ok := NormalizeYearsExperience(in)
		if !ok || got != want {
			t.Errorf("NormalizeYearsExperience(%q) = (%d,%v), want %d", in, got, ok, want)
		}
	}
	if _, ok := NormalizeYearsExperience("a while"); ok {
		t.Error("expected non-numeric input to fail")
	}
}

func TestParseSocialProfiles(t *testing.T) {
	text := "Instagram: @myhandle\nhttps://twitter.com/john\nI'm on LinkedIn at linkedin.com/in/jane"
	profiles := ParseSocialProfiles(text)
	if len(profiles) != 3 {
		t.Fatalf("len(profiles) = %d, want 3", len(profiles))
	}
	if profiles[0].Platform != "instagram" || profiles[0].Handle != "myhandle" {
		t.Errorf("profile[0] = %+v", profiles[0])
	}
	if profiles[1].Platform != "twitter" {
		t.Errorf("profile[1] = %+v", profiles[1])
	}
	if profiles[2].Platform != "linkedin" {
		t.Errorf("profile[2] = %+v", profiles[2])
	}
}

func TestLoadOverlayMissingFileErrors(t *testing.T) {
	if _, err := LoadOverlay("/nonexistent/overlay.yaml"); err == nil {
		t.Error("expected error for missing overlay file")
	}
}
