// Package crawl — URL filtering rules.
// Provides helpers to filter, normalize, and validate candidate page URLs.
package crawl

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// staticExtensions are file extensions that never point at a sampleable page.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// excludedPathRegex matches authentication, account, commerce and admin pages.
var excludedPathRegex = regexp.MustCompile(`(?i)/(login|register|signup|cart|checkout|account|profile|admin|dashboard|settings|logout)`)

// IsSameOrigin reports whether rawURL has the scheme and host of origin.
func IsSameOrigin(rawURL string, origin *url.URL) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || origin == nil {
		return false
	}
	return strings.EqualFold(parsed.Scheme, origin.Scheme) && strings.EqualFold(parsed.Host, origin.Host)
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// IsExcludedPath reports whether the URL path looks like a non-content page.
func IsExcludedPath(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	return excludedPathRegex.MatchString(parsed.Path)
}

// NormalizeURL strips fragments and trailing slashes for comparison.
// Scheme and host are lower-cased, and an empty path is the root "/".
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Remove fragment.
	parsed.Fragment = ""
	parsed.RawFragment = ""

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove trailing slash (but keep root "/").
	if parsed.Path == "" {
		parsed.Path = "/"
		parsed.RawPath = ""
	} else if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
		parsed.RawPath = ""
	}

	return parsed.String()
}

// NormalizeInput turns user input into an absolute URL, defaulting to https.
func NormalizeInput(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}

// Origin returns scheme://host for rawURL.
func Origin(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}, nil
}

// resolveURL resolves href against base. It returns "" for fragment-only
// references, non-http schemes and unparsable input. Fragments are stripped.
func resolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved.String()
}
