package crawl

import "strings"

var (
	navHighValue = []string{
		"home", "about", "services", "products", "features", "pricing",
		"contact", "portfolio", "solutions", "demo", "tour", "overview",
	}
	navMediumValue = []string{
		"blog", "news", "resources", "docs", "documentation", "help", "support",
		"team", "company", "careers", "clients", "testimonials",
	}
	navLowValue = []string{"privacy", "terms", "legal", "sitemap", "rss"}

	contentHighValue = []string{
		"getting started", "tutorial", "guide", "how to", "how-to", "introduction",
		"overview", "features", "benefits", "advantages", "comparison",
	}
)

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// textLen counts characters, not bytes.
func textLen(s string) int {
	return len([]rune(s))
}

// scoreNavigation scores a link found in a navigation region.
func scoreNavigation(text string) int {
	lower := strings.ToLower(text)
	score := 50

	if containsAny(lower, navHighValue) {
		score += 30
	} else if containsAny(lower, navMediumValue) {
		score += 15
	}

	// Short labels are usually top-level menu entries.
	n := textLen(lower)
	if n <= 20 {
		score += 10
	}
	if n <= 10 {
		score += 5
	}

	if containsAny(lower, navLowValue) {
		score -= 20
	}
	return max(0, score)
}

// scoreContent scores a link found in main content or a heading.
func scoreContent(text string) int {
	lower := strings.ToLower(text)
	score := 30

	if containsAny(lower, contentHighValue) {
		score += 25
	}
	if n := textLen(lower); n > 10 && n < 50 {
		score += 10
	}
	return max(0, score)
}

// scoreGeneric scores any other link.
func scoreGeneric(text string) int {
	score := 10
	if n := textLen(text); n > 5 && n < 30 {
		score += 5
	}
	return max(0, score)
}
