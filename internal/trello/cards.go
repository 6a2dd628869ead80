package trello

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/h0rv/dayroll/internal/domain"
)

// cardResponse is the wire shape of a card.
type cardResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	Labels []struct {
		ID    string `json:"id"`
		Color string `json:"color"`
	} `json:"labels"`
}

// GetCards returns the open cards of a list in display order.
func (c *Client) GetCards(ctx context.Context, listID string) ([]domain.Card, error) {
	query := url.Values{}
	query.Set("fields", "name,desc,labels")

	var resp []cardResponse
	if err := c.do(ctx, http.MethodGet, "/lists/"+listID+"/cards", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return cardsFromResponse(resp), nil
}

// CreateCard creates a card in the target list. When the draft names a source
// card, the service copies due dates, comments, attachments, checklists,
// members, and stickers from it.
func (c *Client) CreateCard(ctx context.Context, draft domain.CardDraft) (*domain.Card, error) {
	query := url.Values{}
	query.Set("idList", draft.ListID)
	query.Set("name", draft.Name)
	query.Set("desc", draft.Desc)
	query.Set("pos", "bottom")
	if draft.SourceCardID != "" {
		query.Set("idCardSource", draft.SourceCardID)
		query.Set("keepFromSource", "all")
	}

	var resp cardResponse
	if err := c.do(ctx, http.MethodPost, "/cards", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	card := cardFromResponse(resp)
	return &card, nil
}

// UpdateCardDesc replaces a card's description.
func (c *Client) UpdateCardDesc(ctx context.Context, cardID, desc string) error {
	query := url.Values{}
	query.Set("desc", desc)

	if err := c.do(ctx, http.MethodPut, "/cards/"+cardID, query, nil); err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	return nil
}

// AddLabelToCard attaches an existing board label to a card.
func (c *Client) AddLabelToCard(ctx context.Context, cardID, labelID string) error {
	query := url.Values{}
	query.Set("value", labelID)

	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID+"/idLabels", query, nil); err != nil {
		return fmt.Errorf("failed to add label: %w", err)
	}
	return nil
}

// DeleteLabelFromCard detaches a label from a card.
func (c *Client) DeleteLabelFromCard(ctx context.Context, cardID, labelID string) error {
	if err := c.do(ctx, http.MethodDelete, "/cards/"+cardID+"/idLabels/"+labelID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func cardsFromResponse(resp []cardResponse) []domain.Card {
	cards := make([]domain.Card, 0, len(resp))
	for _, c := range resp {
		cards = append(cards, cardFromResponse(c))
	}
	return cards
}

func cardFromResponse(resp cardResponse) domain.Card {
	card := domain.Card{
		ID:   resp.ID,
		Name: resp.Name,
		Desc: resp.Desc,
	}
	for _, l := range resp.Labels {
		card.Labels = append(card.Labels, domain.Label{ID: l.ID, Color: domain.Color(l.Color)})
	}
	return card
}
