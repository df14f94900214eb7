package share

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/waypointhq/waypoint/internal/blocks"
)

// ErrNoShareTarget indicates the stored message has no card to share or the
// selected card has no outbound link. This is the one failure the pipeline
// surfaces to callers.
var ErrNoShareTarget = errors.New("no shareable target")

// Target is the resolved outbound destination for one shared card.
type Target struct {
	Card      blocks.ImageCard
	TargetURL string
}

// Flatten expands nested block containers into the ordered list of leaf
// cards: a card contributes itself, a gallery each item in order, an option
// set each item's card in order.
func Flatten(list []blocks.Block) []blocks.ImageCard {
	var cards []blocks.ImageCard
	for _, block := range list {
		switch block.Type {
		case blocks.TypeImageCard:
			if block.Card != nil {
				cards = append(cards, *block.Card)
			}
		case blocks.TypeImageGallery:
			if block.Gallery != nil {
				cards = append(cards, block.Gallery.Items...)
			}
		case blocks.TypeOptionSet:
			if block.OptionSet != nil {
				for _, item := range block.OptionSet.Items {
					cards = append(cards, item.Card)
				}
			}
		}
	}
	return cards
}

// Resolve picks the index-th card (1-based) from the stored message content.
// Stored blocks pass through sanitization again since persisted data may
// pre-date schema tightening. An out-of-range index is clamped into
// [1, len]: a share link degrades to the nearest card rather than 404 when
// any card exists.
func Resolve(content json.RawMessage, index int) (Target, error) {
	var stored struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if len(content) > 0 {
		// Unparseable content is the same as content without blocks.
		_ = json.Unmarshal(content, &stored)
	}
	cards := Flatten(blocks.Sanitize(stored.Blocks))
	if len(cards) == 0 {
		return Target{}, ErrNoShareTarget
	}
	if index < 1 {
		index = 1
	}
	if index > len(cards) {
		index = len(cards)
	}
	card := cards[index-1]
	target := strings.TrimSpace(card.ActionURL)
	if target == "" {
		// Nothing to redirect to.
		return Target{}, ErrNoShareTarget
	}
	return Target{Card: card, TargetURL: target}, nil
}
