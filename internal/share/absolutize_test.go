package share

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waypointhq/waypoint/internal/blocks"
)

func TestAbsolutize(t *testing.T) {
	t.Parallel()

	a := NewAbsolutizer("https://waypoint.example.com")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "relative path", in: "/img/card.jpg", want: "https://waypoint.example.com/img/card.jpg"},
		{name: "already absolute", in: "https://cdn.example.com/a.jpg", want: "https://cdn.example.com/a.jpg"},
		{name: "empty", in: "", want: ""},
		{name: "padded relative", in: "  /img/x.jpg ", want: "https://waypoint.example.com/img/x.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, a.Absolutize(tt.in))
		})
	}
}

func TestAbsolutizeNoBaseConfigured(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"", "   ", "%%%bad", "/just/a/path"} {
		a := NewAbsolutizer(base)
		assert.Equal(t, "/img/card.jpg", a.Absolutize("/img/card.jpg"), "base %q", base)
	}
}

func TestPreviewMetadata(t *testing.T) {
	t.Parallel()

	a := NewAbsolutizer("https://waypoint.example.com")
	preview := a.Preview(Target{
		Card: blocks.ImageCard{
			Title:    "Blue Note",
			Subtitle: "Live jazz nightly",
			ImageURL: "/img/blue-note.jpg",
		},
		TargetURL: "/go/blue-note",
	})
	assert.Equal(t, "Blue Note", preview.Title)
	assert.Equal(t, "Live jazz nightly", preview.Description)
	assert.Equal(t, "https://waypoint.example.com/img/blue-note.jpg", preview.ImageURL)
	assert.Equal(t, "https://waypoint.example.com/go/blue-note", preview.TargetURL)
}
