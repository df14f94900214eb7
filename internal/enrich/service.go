package enrich

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/waypointhq/waypoint/internal/blocks"
	"github.com/waypointhq/waypoint/internal/reply"
)

// OptionPrompt introduces a multi-option card set.
const OptionPrompt = "Here are your options — tap one to explore further:"

// resolveConcurrency bounds the image resolution fan-out within one call.
const resolveConcurrency = 4

// ImageResolver resolves a representative image URL for one raw option.
type ImageResolver interface {
	Resolve(ctx context.Context, option reply.RawOption) string
}

// Service turns raw model replies into canonical assistant messages.
type Service struct {
	resolver ImageResolver
	logger   *slog.Logger
}

// NewService creates an enrichment service.
func NewService(log *slog.Logger, resolver ImageResolver) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		resolver: resolver,
		logger:   log.With(slog.String("service", "enrich")),
	}
}

// Enrich converts a raw model reply into a canonical message. It is total:
// malformed input degrades to plain text and provider failures surface as
// placeholder images, never as errors.
func (s *Service) Enrich(ctx context.Context, raw string) blocks.AssistantMessage {
	payload := reply.Parse(raw)

	if len(payload.Blocks) > 0 {
		// The model asserts it already built the UI; validate, don't rebuild.
		return blocks.AssistantMessage{Text: payload.Text, Blocks: blocks.Sanitize(payload.Blocks)}
	}

	options := make([]reply.RawOption, 0, len(payload.Options))
	for _, option := range payload.Options {
		if strings.TrimSpace(option.Title) != "" {
			options = append(options, option)
		}
	}
	if len(options) == 0 {
		return blocks.AssistantMessage{Text: payload.Text}
	}

	cards := s.resolveCards(ctx, options)
	if len(cards) == 1 {
		return blocks.AssistantMessage{
			Text:   payload.Text,
			Blocks: []blocks.Block{{Type: blocks.TypeImageCard, Card: &cards[0]}},
		}
	}
	items := make([]blocks.OptionItem, len(cards))
	for i, card := range cards {
		items[i] = blocks.OptionItem{Index: i + 1, Card: card}
	}
	return blocks.AssistantMessage{
		Text: payload.Text,
		Blocks: []blocks.Block{{
			Type:      blocks.TypeOptionSet,
			OptionSet: &blocks.OptionSet{Prompt: OptionPrompt, Items: items},
		}},
	}
}

// resolveCards fans image resolution out over the options and joins before
// returning, so total latency is bounded by the slowest single option.
func (s *Service) resolveCards(ctx context.Context, options []reply.RawOption) []blocks.ImageCard {
	cards := make([]blocks.ImageCard, len(options))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(resolveConcurrency)
	for i, option := range options {
		group.Go(func() error {
			cards[i] = buildCard(option, s.resolver.Resolve(groupCtx, option))
			return nil
		})
	}
	// Resolution is total per option; no task returns an error.
	_ = group.Wait()
	return cards
}

func buildCard(option reply.RawOption, imageURL string) blocks.ImageCard {
	title := strings.TrimSpace(option.Title)
	return blocks.ImageCard{
		Title:      title,
		Subtitle:   strings.TrimSpace(option.Subtitle),
		ImageURL:   imageURL,
		Alt:        title,
		Meta:       option.Meta,
		ActionURL:  strings.TrimSpace(option.ActionURL),
		SourceName: strings.TrimSpace(option.SourceName),
	}
}
