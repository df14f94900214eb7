package images

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	placeholderBaseURL  = "https://placehold.co/600x400"
	placeholderLabelMax = 30
	placeholderFallback = "Photo"
)

// PlaceholderURL builds the cascade's terminal fallback: a stable
// placeholder-image URL whose visible label is the query with
// non-alphanumeric runs collapsed to single spaces, truncated to 30
// characters. No network call is involved, so this step cannot fail.
func PlaceholderURL(query string) string {
	label := collapseLabel(query)
	if len(label) > placeholderLabelMax {
		label = strings.TrimSpace(label[:placeholderLabelMax])
	}
	if label == "" {
		label = placeholderFallback
	}
	return placeholderBaseURL + "?text=" + url.QueryEscape(label)
}

func collapseLabel(query string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}
