package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

const samplePage = `<html><head>
<meta name="description" content="Helping founders tell better stories. 12 years experience in podcast production.">
</head><body>
<div class="pv-text-details__left-panel"><h2>Podcast producer and audio storyteller</h2></div>
<p>12 years experience in podcast production.</p>
</body></html>`

func TestAnalyzeExtractsBioAndHeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	a := New(srv.Client(), zerolog.Nop())
	profile, err := a.Analyze(context.Background(), srv.URL+"/in/someone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ProfessionalBio == "" {
		t.Fatal("expected a professional bio to be extracted from meta description")
	}
	if profile.UniquePerspective != "Podcast producer and audio storyteller" {
		t.Fatalf("expected headline extracted, got %q", profile.UniquePerspective)
	}
	if profile.YearsExperience != 12 {
		t.Fatalf("expected years experience parsed from body text, got %d", profile.YearsExperience)
	}
}

func TestAnalyzeReturnsErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := New(srv.Client(), zerolog.Nop())
	if _, err := a.Analyze(context.Background(), srv.URL+"/in/blocked"); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}
