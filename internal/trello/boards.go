package trello

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/h0rv/dayroll/internal/domain"
)

// ErrBoardNotFound indicates no board with the requested name exists among
// the user's boards.
var ErrBoardNotFound = errors.New("board not found")

// boardResponse is the wire shape of a board.
type boardResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Organization *struct {
		DisplayName string `json:"displayName"`
	} `json:"organization"`
}

// listResponse is the wire shape of a list, optionally with attached cards.
type listResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Cards []cardResponse `json:"cards"`
}

// labelResponse is the wire shape of a board label.
type labelResponse struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// GetBoards returns all boards the authenticated user is a member of.
func (c *Client) GetBoards(ctx context.Context) ([]domain.Board, error) {
	query := url.Values{}
	query.Set("fields", "name,url")
	query.Set("organization", "true")

	var resp []boardResponse
	if err := c.do(ctx, http.MethodGet, "/members/me/boards", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to get boards: %w", err)
	}

	boards := make([]domain.Board, 0, len(resp))
	for _, b := range resp {
		board := domain.Board{
			ID:   b.ID,
			Name: b.Name,
			URL:  b.URL,
		}
		if b.Organization != nil {
			board.OrgName = b.Organization.DisplayName
		}
		boards = append(boards, board)
	}
	return boards, nil
}

// FindBoard resolves a board by display name (case-insensitive).
// Returns ErrBoardNotFound when no board matches.
func (c *Client) FindBoard(ctx context.Context, name string) (*domain.Board, error) {
	boards, err := c.GetBoards(ctx)
	if err != nil {
		return nil, err
	}
	for i := range boards {
		if strings.EqualFold(boards[i].Name, name) {
			return &boards[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrBoardNotFound, name)
}

// GetLists returns the board's lists in display order, without cards.
func (c *Client) GetLists(ctx context.Context, boardID string) ([]domain.List, error) {
	query := url.Values{}
	query.Set("fields", "name")

	var resp []listResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID+"/lists", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	return listsFromResponse(resp), nil
}

// GetListsWithCards returns the board's lists in display order with open
// cards attached, saving one round trip per list for scan-heavy callers.
func (c *Client) GetListsWithCards(ctx context.Context, boardID string) ([]domain.List, error) {
	query := url.Values{}
	query.Set("fields", "name")
	query.Set("cards", "open")
	query.Set("card_fields", "name,desc,labels")

	var resp []listResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID+"/lists", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	return listsFromResponse(resp), nil
}

// GetLabels returns the board's label catalogue as a color-to-identifier map.
// Only the first label seen per color is kept.
func (c *Client) GetLabels(ctx context.Context, boardID string) (map[domain.Color]string, error) {
	var resp []labelResponse
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID+"/labels", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get labels: %w", err)
	}

	labels := make(map[domain.Color]string, len(resp))
	for _, l := range resp {
		color := domain.Color(l.Color)
		if _, seen := labels[color]; !seen {
			labels[color] = l.ID
		}
	}
	return labels, nil
}

// CreateList creates a new list at the top of the board.
func (c *Client) CreateList(ctx context.Context, boardID, name string) (*domain.List, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("idBoard", boardID)
	query.Set("pos", "top")

	var resp listResponse
	if err := c.do(ctx, http.MethodPost, "/lists", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &domain.List{ID: resp.ID, Name: resp.Name}, nil
}

func listsFromResponse(resp []listResponse) []domain.List {
	lists := make([]domain.List, 0, len(resp))
	for _, l := range resp {
		list := domain.List{ID: l.ID, Name: l.Name}
		if l.Cards != nil {
			list.Cards = cardsFromResponse(l.Cards)
		}
		lists = append(lists, list)
	}
	return lists
}
