package summary

import (
	"net/url"
	"strings"

	"github.com/adpulse/ingestor/internal/models"
)

// Classification is the parsed and classified form of a destination URL.
type Classification struct {
	Domain string
	Path   *string
	Type   models.FunnelType
}

var appStoreDomains = []string{
	"apps.apple.com",
	"itunes.apple.com",
	"play.google.com",
	"appgallery.huawei.com",
}

var quizKeywords = []string{"quiz", "survey", "assessment", "typeform"}

var trackingKeywords = []string{
	"track", "click", "redirect", "affiliate",
	"bit.ly", "tinyurl", "shorturl", "rebrand.ly", "lnkd.in",
}

// ClassifyLink parses a destination URL into domain and path and applies the
// ordered pattern rules: app store, quiz/survey, tracking link, landing page.
// Unparseable URLs keep the raw string as the domain; they classify to
// unknown unless a keyword rule still matches. Best-effort metadata only.
func ClassifyLink(raw string) Classification {
	lowered := strings.ToLower(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Classification{Domain: raw, Type: matchType(lowered, false)}
	}

	c := Classification{Domain: u.Host}
	if u.Path != "" && u.Path != "/" {
		p := u.Path
		c.Path = &p
	}
	c.Type = matchType(lowered, true)
	return c
}

func matchType(lowered string, parsed bool) models.FunnelType {
	for _, domain := range appStoreDomains {
		if strings.Contains(lowered, domain) {
			return models.FunnelAppStore
		}
	}
	for _, kw := range quizKeywords {
		if strings.Contains(lowered, kw) {
			return models.FunnelQuiz
		}
	}
	for _, kw := range trackingKeywords {
		if strings.Contains(lowered, kw) {
			return models.FunnelTrackingLink
		}
	}
	if parsed {
		return models.FunnelLandingPage
	}
	return models.FunnelUnknown
}
