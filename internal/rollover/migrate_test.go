package rollover

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dayroll/internal/domain"
)

// fakeAPI is an in-memory board service used by the rollover tests.
type fakeAPI struct {
	lists  []domain.List
	cards  map[string][]domain.Card
	labels map[domain.Color]string

	createdDrafts []domain.CardDraft
	labelAdds     map[string][]string // cardID -> added label IDs
	descUpdates   map[string]string   // cardID -> new desc

	failCreateFor map[string]bool // card names whose creation fails
	nextID        int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cards: map[string][]domain.Card{},
		labels: map[domain.Color]string{
			domain.ColorRed:    "lbl_red",
			domain.ColorYellow: "lbl_yellow",
			domain.ColorGreen:  "lbl_green",
			domain.ColorBlue:   "lbl_blue",
			"purple":           "lbl_purple",
		},
		labelAdds:     map[string][]string{},
		descUpdates:   map[string]string{},
		failCreateFor: map[string]bool{},
	}
}

func (f *fakeAPI) GetLists(ctx context.Context, boardID string) ([]domain.List, error) {
	return f.lists, nil
}

func (f *fakeAPI) GetCards(ctx context.Context, listID string) ([]domain.Card, error) {
	return f.cards[listID], nil
}

func (f *fakeAPI) GetLabels(ctx context.Context, boardID string) (map[domain.Color]string, error) {
	return f.labels, nil
}

func (f *fakeAPI) CreateList(ctx context.Context, boardID, name string) (*domain.List, error) {
	f.nextID++
	list := domain.List{ID: fmt.Sprintf("list_%d", f.nextID), Name: name}
	f.lists = append(f.lists, list)
	return &list, nil
}

func (f *fakeAPI) CreateCard(ctx context.Context, draft domain.CardDraft) (*domain.Card, error) {
	if f.failCreateFor[draft.Name] {
		return nil, errors.New("boom")
	}
	f.createdDrafts = append(f.createdDrafts, draft)
	f.nextID++
	card := domain.Card{ID: fmt.Sprintf("card_%d", f.nextID), Name: draft.Name, Desc: draft.Desc}
	f.cards[draft.ListID] = append(f.cards[draft.ListID], card)
	return &card, nil
}

func (f *fakeAPI) UpdateCardDesc(ctx context.Context, cardID, desc string) error {
	f.descUpdates[cardID] = desc
	return nil
}

func (f *fakeAPI) AddLabelToCard(ctx context.Context, cardID, labelID string) error {
	f.labelAdds[cardID] = append(f.labelAdds[cardID], labelID)
	return nil
}

func newTestMigrator(api *fakeAPI) *Migrator {
	return NewMigrator(api, zerolog.Nop())
}

func TestMigrate_UnlabeledCardCarriedOver(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{{ID: "y1", Name: "Task A"}}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.Equal(t, 1, count)
	require.Len(t, api.createdDrafts, 1)
	assert.Equal(t, "Task A", api.createdDrafts[0].Name)
	assert.Equal(t, "y1", api.createdDrafts[0].SourceCardID, "copy should retain the source card")

	// New card gets yellow, original gets red.
	newID := api.cards["today"][0].ID
	assert.Equal(t, []string{"lbl_yellow"}, api.labelAdds[newID])
	assert.Equal(t, []string{"lbl_red"}, api.labelAdds["y1"])
}

func TestMigrate_GreenAndBlueAreResolved(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{
		{ID: "y1", Name: "Done", Labels: []domain.Label{{ID: "lbl_green", Color: domain.ColorGreen}}},
		{ID: "y2", Name: "Also done", Labels: []domain.Label{{ID: "lbl_blue", Color: domain.ColorBlue}}},
		{ID: "y3", Name: "Mixed", Labels: []domain.Label{
			{ID: "lbl_purple", Color: "purple"},
			{ID: "lbl_green", Color: domain.ColorGreen},
		}},
	}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.Equal(t, 0, count)
	assert.Empty(t, api.createdDrafts)
	assert.Empty(t, api.labelAdds)
}

func TestMigrate_RedNotRestacked(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{{
		ID:   "y1",
		Name: "Still open",
		Labels: []domain.Label{
			{ID: "lbl_red", Color: domain.ColorRed},
			{ID: "lbl_purple", Color: "purple"},
		},
	}}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.Equal(t, 1, count)
	newID := api.cards["today"][0].ID

	// Purple carries over and yellow is stacked on top; red is not copied to
	// the new card but is re-applied to the original.
	assert.ElementsMatch(t, []string{"lbl_purple", "lbl_yellow"}, api.labelAdds[newID])
	assert.Equal(t, []string{"lbl_red"}, api.labelAdds["y1"])
}

func TestMigrate_DuplicateNameSkipped(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{{ID: "y1", Name: "Task A"}}
	today := []domain.Card{{ID: "t1", Name: "Task A"}}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, today, api.labels)

	assert.Equal(t, 0, count)
	assert.Empty(t, api.createdDrafts)
}

func TestMigrate_LinkAnnotationPersistsEvenWhenNotMigrated(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{{
		ID:     "y1",
		Name:   "Review https://example.com/pr/1 today",
		Labels: []domain.Label{{ID: "lbl_green", Color: domain.ColorGreen}},
	}}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.Equal(t, 0, count, "resolved card must not migrate")
	assert.Equal(t, "[link](https://example.com/pr/1)\n", api.descUpdates["y1"],
		"description update happens before eligibility is evaluated")
}

func TestMigrate_LinkAlreadyInDescriptionUntouched(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{{
		ID:   "y1",
		Name: "Review https://example.com/pr/1",
		Desc: "[link](https://example.com/pr/1)\nnotes",
	}}

	m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.NotContains(t, api.descUpdates, "y1")
}

func TestMigrate_AnnotatedDescriptionCopiedForward(t *testing.T) {
	api := newFakeAPI()
	m := newTestMigrator(api)

	yesterday := []domain.Card{{ID: "y1", Name: "foo://bar fix"}}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.Equal(t, 1, count)
	require.Len(t, api.createdDrafts, 1)
	assert.Equal(t, "[link](foo://bar)\n", api.createdDrafts[0].Desc)
}

func TestMigrate_FailedCreateDoesNotBlockOthers(t *testing.T) {
	api := newFakeAPI()
	api.failCreateFor["Task A"] = true
	m := newTestMigrator(api)

	yesterday := []domain.Card{
		{ID: "y1", Name: "Task A"},
		{ID: "y2", Name: "Task B"},
	}

	count := m.MigrateUnfinished(context.Background(), "today", yesterday, nil, api.labels)

	assert.Equal(t, 1, count)
	require.Len(t, api.createdDrafts, 1)
	assert.Equal(t, "Task B", api.createdDrafts[0].Name)
	assert.NotContains(t, api.labelAdds, "y1", "failed card must not be re-tagged red")
}
