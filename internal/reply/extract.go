package reply

import (
	"encoding/json"
	"strings"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// Parse turns a raw model reply into a structured payload. Models frequently
// wrap valid JSON in prose or code fences, or append commentary after the
// object, so recovery stages are tried in order and the first success wins.
// Parse is total: when no stage succeeds it returns the trimmed input as
// plain text, and no failure ever escapes.
func Parse(raw string) RawPayload {
	trimmed := strings.TrimSpace(raw)
	if payload, ok := parseDirect(trimmed); ok {
		return payload
	}
	if payload, ok := parseFenced(trimmed); ok {
		return payload
	}
	if payload, ok := parseEmbedded(trimmed); ok {
		return payload
	}
	return RawPayload{Text: trimmed}
}

// parseDirect handles input that is a bare JSON object.
func parseDirect(trimmed string) (RawPayload, bool) {
	if !strings.HasPrefix(trimmed, "{") {
		return RawPayload{}, false
	}
	return decodePayload(trimmed)
}

// parseFenced extracts a ```json fenced region and treats anything before
// the fence as conversational preamble.
func parseFenced(trimmed string) (RawPayload, bool) {
	start := strings.Index(trimmed, fenceOpen)
	if start < 0 {
		return RawPayload{}, false
	}
	rest := trimmed[start+len(fenceOpen):]
	end := strings.Index(rest, fenceClose)
	if end < 0 {
		return RawPayload{}, false
	}
	payload, ok := decodePayload(strings.TrimSpace(rest[:end]))
	if !ok {
		return RawPayload{}, false
	}
	return mergePreamble(strings.TrimSpace(trimmed[:start]), payload), true
}

// parseEmbedded recovers a JSON object preceded by prose. It first tries
// parsing from the first brace to the end of input; failing that it scans for
// the balanced closing brace, which recovers an object the model followed
// with trailing commentary.
func parseEmbedded(trimmed string) (RawPayload, bool) {
	start := strings.Index(trimmed, "{")
	if start < 0 {
		return RawPayload{}, false
	}
	preamble := strings.TrimSpace(trimmed[:start])
	if payload, ok := decodePayload(trimmed[start:]); ok {
		return mergePreamble(preamble, payload), true
	}
	if span, ok := balancedSpan(trimmed[start:]); ok {
		if payload, ok := decodePayload(span); ok {
			return mergePreamble(preamble, payload), true
		}
	}
	return RawPayload{}, false
}

// balancedSpan returns the prefix of s ending where the brace depth opened by
// its first character returns to zero. Braces inside JSON string literals do
// not affect the depth.
func balancedSpan(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], true
				}
			}
		}
	}
	return "", false
}

// decodePayload accepts a candidate only when it is a JSON object carrying a
// string "text" field.
func decodePayload(candidate string) (RawPayload, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return RawPayload{}, false
	}
	rawText, found := probe["text"]
	if !found {
		return RawPayload{}, false
	}
	var text string
	if err := json.Unmarshal(rawText, &text); err != nil {
		return RawPayload{}, false
	}
	var payload RawPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return RawPayload{}, false
	}
	payload.Text = text
	return payload, true
}

// mergePreamble prepends the prose the model emitted before its JSON object,
// joined by a blank line, unless the payload text already starts with it.
// When the payload paraphrases the preamble instead of repeating it verbatim
// this can duplicate phrasing; the prefix check is a known approximation,
// not a lossless merge.
func mergePreamble(preamble string, payload RawPayload) RawPayload {
	if preamble == "" || strings.HasPrefix(payload.Text, preamble) {
		return payload
	}
	if payload.Text == "" {
		payload.Text = preamble
		return payload
	}
	payload.Text = preamble + "\n\n" + payload.Text
	return payload
}
