package blocks

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Sanitize validates untyped block candidates against the canonical model.
// Unknown types, candidates missing required fields, and cards whose image
// URL is not an absolute http(s) URL are dropped item by item, never as a
// batch. Containers whose sanitized children are empty are dropped too.
// Surviving blocks keep their input order. Sanitize is total: it never
// returns an error, and returns nil when nothing survives.
func Sanitize(candidates []json.RawMessage) []Block {
	out := make([]Block, 0, len(candidates))
	for _, raw := range candidates {
		if block, ok := sanitizeOne(raw); ok {
			out = append(out, block)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sanitizeOne(raw json.RawMessage) (Block, bool) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Block{}, false
	}
	switch probe.Type {
	case TypeImageCard:
		var card ImageCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return Block{}, false
		}
		clean, ok := sanitizeCard(card)
		if !ok {
			return Block{}, false
		}
		return Block{Type: TypeImageCard, Card: &clean}, true
	case TypeImageGallery:
		var gallery ImageGallery
		if err := json.Unmarshal(raw, &gallery); err != nil {
			return Block{}, false
		}
		items := make([]ImageCard, 0, len(gallery.Items))
		for _, item := range gallery.Items {
			if clean, ok := sanitizeCard(item); ok {
				items = append(items, clean)
			}
		}
		if len(items) == 0 {
			return Block{}, false
		}
		return Block{Type: TypeImageGallery, Gallery: &ImageGallery{Items: items}}, true
	case TypeOptionSet:
		var set OptionSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return Block{}, false
		}
		prompt := strings.TrimSpace(set.Prompt)
		if prompt == "" {
			return Block{}, false
		}
		items := make([]OptionItem, 0, len(set.Items))
		for _, item := range set.Items {
			clean, ok := sanitizeCard(item.Card)
			if !ok {
				continue
			}
			// Stored indices are untrusted: reassign positionally.
			items = append(items, OptionItem{Index: len(items) + 1, Card: clean})
		}
		if len(items) == 0 {
			return Block{}, false
		}
		return Block{Type: TypeOptionSet, OptionSet: &OptionSet{Prompt: prompt, Items: items}}, true
	default:
		// Models may emit experimental block shapes; not an error.
		return Block{}, false
	}
}

func sanitizeCard(card ImageCard) (ImageCard, bool) {
	card.Title = strings.TrimSpace(card.Title)
	if card.Title == "" {
		return ImageCard{}, false
	}
	card.ImageURL = strings.TrimSpace(card.ImageURL)
	if !IsAbsoluteHTTPURL(card.ImageURL) {
		return ImageCard{}, false
	}
	if strings.TrimSpace(card.Alt) == "" {
		return ImageCard{}, false
	}
	return card, true
}

// IsAbsoluteHTTPURL reports whether raw parses as an absolute URL with an
// http or https scheme and a host.
func IsAbsoluteHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
