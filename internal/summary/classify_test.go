package summary

import (
	"testing"

	"github.com/adpulse/ingestor/internal/models"
)

func TestClassifyLink(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantType   models.FunnelType
		wantDomain string
		wantPath   string
	}{
		{"app store", "https://apps.apple.com/app/id123", models.FunnelAppStore, "apps.apple.com", "/app/id123"},
		{"play store", "https://play.google.com/store/apps/details?id=com.acme", models.FunnelAppStore, "play.google.com", "/store/apps/details"},
		{"quiz subdomain", "https://quiz.example.com/start", models.FunnelQuiz, "quiz.example.com", "/start"},
		{"tracking path", "https://track.example.com/campaign-1", models.FunnelTrackingLink, "track.example.com", "/campaign-1"},
		{"shortener", "https://bit.ly/3xyz", models.FunnelTrackingLink, "bit.ly", "/3xyz"},
		{"landing page", "https://example.com/product-1", models.FunnelLandingPage, "example.com", "/product-1"},
		{"root path dropped", "https://example.com/", models.FunnelLandingPage, "example.com", ""},
	}
	for _, tc := range cases {
		c := ClassifyLink(tc.raw)
		if c.Type != tc.wantType {
			t.Fatalf("%s: expected type %s, got %s", tc.name, tc.wantType, c.Type)
		}
		if c.Domain != tc.wantDomain {
			t.Fatalf("%s: expected domain %s, got %s", tc.name, tc.wantDomain, c.Domain)
		}
		if tc.wantPath == "" {
			if c.Path != nil {
				t.Fatalf("%s: expected no path, got %s", tc.name, *c.Path)
			}
		} else if c.Path == nil || *c.Path != tc.wantPath {
			t.Fatalf("%s: expected path %s, got %v", tc.name, tc.wantPath, c.Path)
		}
	}
}

func TestClassifyLinkQuizBeatsTracking(t *testing.T) {
	// "typeform.com/to/x?track=1" carries both keyword families; quiz wins.
	c := ClassifyLink("https://typeform.com/to/x?track=1")
	if c.Type != models.FunnelQuiz {
		t.Fatalf("expected quiz to win ordering, got %s", c.Type)
	}
}

func TestClassifyLinkUnparseable(t *testing.T) {
	c := ClassifyLink("not a url at all")
	if c.Type != models.FunnelUnknown {
		t.Fatalf("expected unknown, got %s", c.Type)
	}
	if c.Domain != "not a url at all" {
		t.Fatalf("expected raw string kept as domain, got %q", c.Domain)
	}
	if c.Path != nil {
		t.Fatalf("expected no path, got %v", c.Path)
	}
}

func TestClassifyLinkUnparseableWithKeyword(t *testing.T) {
	c := ClassifyLink("see our quiz at ???")
	if c.Type != models.FunnelQuiz {
		t.Fatalf("expected keyword match on unparseable input, got %s", c.Type)
	}
}
