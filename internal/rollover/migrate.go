package rollover

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/h0rv/dayroll/internal/domain"
)

// API is the slice of the board service client the rollover engine consumes.
type API interface {
	GetLists(ctx context.Context, boardID string) ([]domain.List, error)
	GetCards(ctx context.Context, listID string) ([]domain.Card, error)
	GetLabels(ctx context.Context, boardID string) (map[domain.Color]string, error)
	CreateList(ctx context.Context, boardID, name string) (*domain.List, error)
	CreateCard(ctx context.Context, draft domain.CardDraft) (*domain.Card, error)
	UpdateCardDesc(ctx context.Context, cardID, desc string) error
	AddLabelToCard(ctx context.Context, cardID, labelID string) error
}

// Migrator moves unfinished cards from yesterday's list into today's,
// rewriting label state as it goes. One failed card never blocks the rest.
type Migrator struct {
	api API
	log zerolog.Logger
}

// NewMigrator creates a Migrator.
func NewMigrator(api API, log zerolog.Logger) *Migrator {
	return &Migrator{api: api, log: log}
}

// MigrateUnfinished processes every card in yesterday's list:
//
//  1. Hyperlinks found in the card name are prepended to its description and
//     persisted, even for cards that end up not migrating.
//  2. Cards carrying a green or blue label are resolved and skipped; for the
//     rest, every non-red label is collected for carry-over (red is a
//     transient still-open marker that must not be re-stacked).
//  3. A card whose name already exists in today's list is treated as already
//     migrated and skipped.
//  4. Eligible cards are copied into today's list, tagged with the carried
//     labels plus yellow, and the original is re-tagged red.
//
// Returns the number of cards successfully created in today's list.
func (m *Migrator) MigrateUnfinished(ctx context.Context, todayListID string, yesterdayCards, todayCards []domain.Card, labels map[domain.Color]string) int {
	migrated := 0

	for _, card := range yesterdayCards {
		m.annotateLinks(ctx, &card)

		carry, eligible := carryoverLabels(card)
		if !eligible {
			m.log.Debug().Str("card", card.Name).Msg("card resolved, not migrating")
			continue
		}

		if hasCardNamed(todayCards, card.Name) {
			m.log.Debug().Str("card", card.Name).Msg("card already in today's list, skipping")
			continue
		}

		created, err := m.api.CreateCard(ctx, domain.CardDraft{
			ListID:       todayListID,
			Name:         card.Name,
			Desc:         card.Desc,
			SourceCardID: card.ID,
		})
		if err != nil || created == nil || created.ID == "" {
			m.log.Warn().Err(err).Str("card", card.Name).Msg("failed to migrate card")
			continue
		}
		migrated++

		if yellowID, ok := labels[domain.ColorYellow]; ok {
			carry = append(carry, yellowID)
		}
		for _, labelID := range carry {
			if err := m.api.AddLabelToCard(ctx, created.ID, labelID); err != nil {
				m.log.Warn().Err(err).Str("card", card.Name).Msg("failed to tag migrated card")
			}
		}

		// The original only gets its red tag after the copy exists.
		if redID, ok := labels[domain.ColorRed]; ok {
			if err := m.api.AddLabelToCard(ctx, card.ID, redID); err != nil {
				m.log.Warn().Err(err).Str("card", card.Name).Msg("failed to re-tag original card")
			}
		}
	}

	return migrated
}

// annotateLinks prepends a markdown link line to the card description for
// every URL-like token in the card name not already present in the
// description, persisting the new description when anything changed.
func (m *Migrator) annotateLinks(ctx context.Context, card *domain.Card) {
	desc := card.Desc
	changed := false

	for _, token := range strings.Fields(card.Name) {
		if !looksLikeURL(token) {
			continue
		}
		if strings.Contains(desc, token) {
			continue
		}
		desc = fmt.Sprintf("[link](%s)\n%s", token, desc)
		changed = true
	}

	if !changed {
		return
	}
	if err := m.api.UpdateCardDesc(ctx, card.ID, desc); err != nil {
		m.log.Warn().Err(err).Str("card", card.Name).Msg("failed to annotate card description")
		return
	}
	card.Desc = desc
}

// carryoverLabels inspects a card's label set. A green or blue label marks
// the card resolved: not eligible, and anything collected so far is
// discarded. Otherwise every non-red label ID is carried over.
func carryoverLabels(card domain.Card) (carry []string, eligible bool) {
	for _, label := range card.Labels {
		switch label.Color {
		case domain.ColorGreen, domain.ColorBlue:
			return nil, false
		case domain.ColorRed:
			// still-open marker, never carried forward
		default:
			carry = append(carry, label.ID)
		}
	}
	return carry, true
}

func looksLikeURL(token string) bool {
	return strings.HasPrefix(token, "http") || strings.Contains(token, "://")
}

func hasCardNamed(cards []domain.Card, name string) bool {
	for _, c := range cards {
		if c.Name == name {
			return true
		}
	}
	return false
}
