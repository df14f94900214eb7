package enrich

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waypointhq/waypoint/internal/blocks"
	"github.com/waypointhq/waypoint/internal/images"
	"github.com/waypointhq/waypoint/internal/reply"
)

// placeholderResolver mirrors a resolver with no cache and no configured
// providers: every option lands on the deterministic placeholder.
type placeholderResolver struct {
	mu      sync.Mutex
	queries []string
}

func (r *placeholderResolver) Resolve(_ context.Context, option reply.RawOption) string {
	r.mu.Lock()
	r.queries = append(r.queries, images.SearchQuery(option))
	r.mu.Unlock()
	return images.PlaceholderURL(images.SearchQuery(option))
}

func TestEnrichPlainText(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), "Just joining the dots, nothing visual here.")
	assert.Equal(t, "Just joining the dots, nothing visual here.", msg.Text)
	assert.Nil(t, msg.Blocks)
}

func TestEnrichFencedReplyWithTwoOptions(t *testing.T) {
	t.Parallel()

	raw := "Sure! ```json\n{\"text\":\"Here are 2 picks\",\"options\":[{\"title\":\"A\"},{\"title\":\"B\"}]}\n```"
	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), raw)

	assert.Equal(t, "Sure!\n\nHere are 2 picks", msg.Text)
	require.Len(t, msg.Blocks, 1)
	require.Equal(t, blocks.TypeOptionSet, msg.Blocks[0].Type)
	set := msg.Blocks[0].OptionSet
	require.NotNil(t, set)
	assert.Equal(t, OptionPrompt, set.Prompt)
	require.Len(t, set.Items, 2)
	for i, item := range set.Items {
		assert.Equal(t, i+1, item.Index)
		assert.True(t, strings.HasPrefix(item.Card.ImageURL, "https://placehold.co/"), "item %d image %q", i, item.Card.ImageURL)
	}
	assert.Equal(t, "A", set.Items[0].Card.Title)
	assert.Equal(t, "B", set.Items[1].Card.Title)
}

func TestEnrichSingleOptionBecomesImageCard(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), `{"text":"One pick","options":[{"title":"Blue Note","subtitle":"Live jazz nightly","category":"venue","actionUrl":"https://maps.example.com/blue-note"}]}`)

	require.Len(t, msg.Blocks, 1)
	require.Equal(t, blocks.TypeImageCard, msg.Blocks[0].Type)
	card := msg.Blocks[0].Card
	require.NotNil(t, card)
	assert.Equal(t, "Blue Note", card.Title)
	assert.Equal(t, "Live jazz nightly", card.Subtitle)
	assert.Equal(t, "Blue Note", card.Alt)
	assert.Equal(t, "https://maps.example.com/blue-note", card.ActionURL)
	assert.True(t, blocks.IsAbsoluteHTTPURL(card.ImageURL))
}

func TestEnrichPrebuiltBlocksWinOverOptions(t *testing.T) {
	t.Parallel()

	resolver := &placeholderResolver{}
	svc := NewService(nil, resolver)
	raw := `{"text":"built it myself","options":[{"title":"ignored"}],"blocks":[{"type":"image_card","title":"Prebuilt","imageUrl":"https://img.example.com/p.jpg","alt":"p"}]}`
	msg := svc.Enrich(context.Background(), raw)

	require.Len(t, msg.Blocks, 1)
	assert.Equal(t, "Prebuilt", msg.Blocks[0].Card.Title)
	assert.Empty(t, resolver.queries, "options must not be resolved when pre-built blocks are present")
}

func TestEnrichPrebuiltBlocksAllInvalid(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), `{"text":"tried","blocks":[{"type":"image_card","title":"Bad","imageUrl":"bogus","alt":"b"}]}`)
	assert.Equal(t, "tried", msg.Text)
	assert.Nil(t, msg.Blocks)
}

func TestEnrichSkipsTitlelessOptions(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), `{"text":"picks","options":[{"title":"  "},{"title":"Kept"}]}`)

	require.Len(t, msg.Blocks, 1)
	require.Equal(t, blocks.TypeImageCard, msg.Blocks[0].Type)
	assert.Equal(t, "Kept", msg.Blocks[0].Card.Title)
}

func TestEnrichAllOptionsTitleless(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), `{"text":"picks","options":[{"title":""},{"subtitle":"orphan"}]}`)
	assert.Nil(t, msg.Blocks)
}

func TestEnrichPreservesOptionOrder(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &placeholderResolver{})
	msg := svc.Enrich(context.Background(), `{"text":"picks","options":[{"title":"N1"},{"title":"N2"},{"title":"N3"},{"title":"N4"},{"title":"N5"},{"title":"N6"}]}`)

	require.Len(t, msg.Blocks, 1)
	set := msg.Blocks[0].OptionSet
	require.NotNil(t, set)
	require.Len(t, set.Items, 6)
	for i, item := range set.Items {
		assert.Equal(t, i+1, item.Index)
		assert.Equal(t, []string{"N1", "N2", "N3", "N4", "N5", "N6"}[i], item.Card.Title)
	}
}
