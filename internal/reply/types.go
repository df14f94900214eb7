package reply

import "encoding/json"

// RawOption is a pre-enrichment option emitted by the model. It lives only
// for the duration of a single enrichment call and is never stored.
type RawOption struct {
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle,omitempty"`
	Category   string            `json:"category,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	ActionURL  string            `json:"actionUrl,omitempty"`
	SourceName string            `json:"sourceName,omitempty"`
}

// RawPayload is the extractor's output: free text plus either raw options or
// pre-built blocks. When both are present the pre-built blocks win, since
// the model is asserting it already built the UI.
type RawPayload struct {
	Text    string            `json:"text"`
	Options []RawOption       `json:"options,omitempty"`
	Blocks  []json.RawMessage `json:"blocks,omitempty"`
}
