package reply

import (
	"testing"
)

func TestParseDirectObject(t *testing.T) {
	t.Parallel()

	payload := Parse(`{"text":"Hello there","options":[{"title":"Blue Note Jazz Club","category":"venue"}]}`)
	if payload.Text != "Hello there" {
		t.Fatalf("expected text %q, got %q", "Hello there", payload.Text)
	}
	if len(payload.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(payload.Options))
	}
	if payload.Options[0].Title != "Blue Note Jazz Club" {
		t.Fatalf("unexpected option title %q", payload.Options[0].Title)
	}
}

func TestParseDirectObjectWithWhitespace(t *testing.T) {
	t.Parallel()

	payload := Parse("  \n {\"text\":\"padded\"} \n ")
	if payload.Text != "padded" {
		t.Fatalf("expected text %q, got %q", "padded", payload.Text)
	}
}

func TestParseFencedBlock(t *testing.T) {
	t.Parallel()

	raw := "Sure, here you go:\n```json\n{\"text\":\"Two picks for tonight\",\"options\":[{\"title\":\"A\"},{\"title\":\"B\"}]}\n```\nLet me know what you think!"
	payload := Parse(raw)
	if payload.Text != "Sure, here you go:\n\nTwo picks for tonight" {
		t.Fatalf("unexpected merged text %q", payload.Text)
	}
	if len(payload.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(payload.Options))
	}
}

func TestParseFencedBlockPreambleAlreadyPrefix(t *testing.T) {
	t.Parallel()

	raw := "Two picks\n```json\n{\"text\":\"Two picks for tonight\"}\n```"
	payload := Parse(raw)
	if payload.Text != "Two picks for tonight" {
		t.Fatalf("expected no duplicated preamble, got %q", payload.Text)
	}
}

func TestParsePreambleThenObjectToEnd(t *testing.T) {
	t.Parallel()

	raw := `I found something. {"text":"The Grand Hotel","options":[{"title":"The Grand Hotel"}]}`
	payload := Parse(raw)
	if payload.Text != "I found something.\n\nThe Grand Hotel" {
		t.Fatalf("unexpected merged text %q", payload.Text)
	}
	if len(payload.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(payload.Options))
	}
}

func TestParseBalancedObjectWithTrailingProse(t *testing.T) {
	t.Parallel()

	raw := `Here: {"text":"A quiet bistro","options":[{"title":"Chez Nous"}]} Hope that helps, tell me if you want more.`
	payload := Parse(raw)
	if payload.Text != "Here:\n\nA quiet bistro" {
		t.Fatalf("unexpected merged text %q", payload.Text)
	}
	if len(payload.Options) != 1 || payload.Options[0].Title != "Chez Nous" {
		t.Fatalf("unexpected options %+v", payload.Options)
	}
}

func TestParseBalancedScanHonorsStringBraces(t *testing.T) {
	t.Parallel()

	raw := `Look: {"text":"brace } inside a string"} trailing`
	payload := Parse(raw)
	if payload.Text != "Look:\n\nbrace } inside a string" {
		t.Fatalf("unexpected text %q", payload.Text)
	}
}

func TestParsePlainTextFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "prose", raw: "  Just a friendly reply.  ", want: "Just a friendly reply."},
		{name: "object without text field", raw: `{"title":"no text key"}`, want: `{"title":"no text key"}`},
		{name: "unterminated object", raw: `Sure: {"text":"never closed`, want: `Sure: {"text":"never closed`},
		{name: "empty", raw: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			payload := Parse(tt.raw)
			if payload.Text != tt.want {
				t.Fatalf("expected text %q, got %q", tt.want, payload.Text)
			}
			if payload.Options != nil || payload.Blocks != nil {
				t.Fatalf("expected plain-text payload, got %+v", payload)
			}
		})
	}
}

func TestParseKeepsPrebuiltBlocks(t *testing.T) {
	t.Parallel()

	payload := Parse(`{"text":"ready","blocks":[{"type":"image_card","title":"X","imageUrl":"https://example.com/x.jpg","alt":"X"}]}`)
	if len(payload.Blocks) != 1 {
		t.Fatalf("expected 1 raw block, got %d", len(payload.Blocks))
	}
}

func TestParseNonStringTextRejected(t *testing.T) {
	t.Parallel()

	payload := Parse(`{"text":42}`)
	if payload.Text != `{"text":42}` {
		t.Fatalf("expected plain-text fallback, got %q", payload.Text)
	}
}
