package blocks

import (
	"encoding/json"
	"fmt"
)

// Block type discriminators.
const (
	TypeImageCard    = "image_card"
	TypeImageGallery = "image_gallery"
	TypeOptionSet    = "option_set"
)

// ImageCard is the leaf unit of renderable visual content.
type ImageCard struct {
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle,omitempty"`
	ImageURL   string            `json:"imageUrl"`
	Alt        string            `json:"alt"`
	Meta       map[string]string `json:"meta,omitempty"`
	ActionURL  string            `json:"actionUrl,omitempty"`
	SourceName string            `json:"sourceName,omitempty"`
}

// ImageGallery is an ordered sequence of cards rendered as one unit.
type ImageGallery struct {
	Items []ImageCard `json:"items"`
}

// OptionItem pairs a card with its 1-based presentation index.
type OptionItem struct {
	Index int       `json:"index"`
	Card  ImageCard `json:"card"`
}

// OptionSet presents a prompt and a numbered choice of cards. Item indices
// are 1-based and contiguous in presentation order; consumers flattening a
// set must reconstruct indices positionally since the set may have been
// edited after storage.
type OptionSet struct {
	Prompt string       `json:"prompt"`
	Items  []OptionItem `json:"items"`
}

// Block is the canonical tagged representation of one unit of structured
// content. Exactly one variant pointer is set, matching Type.
type Block struct {
	Type      string
	Card      *ImageCard
	Gallery   *ImageGallery
	OptionSet *OptionSet
}

// AssistantMessage is the validated, typed message representation safe for
// storage and rendering. Blocks is nil, not empty, when there is nothing to
// render beyond text.
type AssistantMessage struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

// MarshalJSON flattens the active variant into a single object carrying the
// type tag.
func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Type {
	case TypeImageCard:
		return json.Marshal(struct {
			Type string `json:"type"`
			*ImageCard
		}{TypeImageCard, b.Card})
	case TypeImageGallery:
		return json.Marshal(struct {
			Type string `json:"type"`
			*ImageGallery
		}{TypeImageGallery, b.Gallery})
	case TypeOptionSet:
		return json.Marshal(struct {
			Type string `json:"type"`
			*OptionSet
		}{TypeOptionSet, b.OptionSet})
	default:
		return nil, fmt.Errorf("unknown block type: %q", b.Type)
	}
}

// UnmarshalJSON dispatches on the type tag and decodes the matching variant.
func (b *Block) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case TypeImageCard:
		var card ImageCard
		if err := json.Unmarshal(data, &card); err != nil {
			return err
		}
		*b = Block{Type: TypeImageCard, Card: &card}
	case TypeImageGallery:
		var gallery ImageGallery
		if err := json.Unmarshal(data, &gallery); err != nil {
			return err
		}
		*b = Block{Type: TypeImageGallery, Gallery: &gallery}
	case TypeOptionSet:
		var set OptionSet
		if err := json.Unmarshal(data, &set); err != nil {
			return err
		}
		*b = Block{Type: TypeOptionSet, OptionSet: &set}
	default:
		return fmt.Errorf("unknown block type: %q", probe.Type)
	}
	return nil
}
