package screenshot

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
)

// Filename names the i-th (0-based) screenshot inside a package, e.g.
// "screenshot-1-Full-Page---pricing.png".
func Filename(i int, s core.Screenshot) string {
	return fmt.Sprintf("screenshot-%d-%s.%s", i+1, labelSlug(s.Label), Extension(s.ContentType))
}

// Extension maps an image content type to a file extension.
func Extension(contentType string) string {
	sub, _, _ := strings.Cut(strings.TrimPrefix(strings.ToLower(contentType), "image/"), ";")
	switch sub = strings.TrimSpace(sub); sub {
	case "jpeg", "pjpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	case "":
		return "png"
	default:
		return sub
	}
}

func labelSlug(label string) string {
	var b strings.Builder
	for _, ch := range label {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}
