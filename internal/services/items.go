package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/store"
)

// ItemService owns the master grocery list.
type ItemService struct {
	state   *store.State
	repo    repository.ResourceRepository
	clipper *Clipper
}

func NewItemService(state *store.State, repo repository.ResourceRepository, clipper *Clipper) *ItemService {
	return &ItemService{state: state, repo: repo, clipper: clipper}
}

func (service *ItemService) List() []models.Item {
	service.state.Lock()
	defer service.state.Unlock()
	return append([]models.Item(nil), service.state.Items...)
}

func (service *ItemService) Get(id string) (models.Item, error) {
	service.state.Lock()
	defer service.state.Unlock()
	item, ok := service.state.ItemByID(id)
	if !ok {
		return models.Item{}, store.ErrNotFound
	}
	return *item, nil
}

func (service *ItemService) Create(ctx context.Context, item models.Item) (models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return models.Item{}, fmt.Errorf("item needs a name")
	}

	service.state.Lock()
	defer service.state.Unlock()
	created := service.state.AddItem(item)
	return created, service.save(ctx)
}

// FindOrCreate backs the ad-hoc entry flows: an existing item wins by
// case-insensitive name, otherwise one is created from the defaults.
func (service *ItemService) FindOrCreate(ctx context.Context, name string, defaults store.ItemDefaults) (models.Item, error) {
	if strings.TrimSpace(name) == "" {
		return models.Item{}, fmt.Errorf("item needs a name")
	}

	service.state.Lock()
	defer service.state.Unlock()
	item, created := service.state.FindOrCreateItem(name, defaults)
	if !created {
		return item, nil
	}
	return item, service.save(ctx)
}

// ItemPatch holds the fields an update may overwrite; nil fields are left
// untouched.
type ItemPatch struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Unit     *string          `json:"unit"`
	Sources  *[]models.Source `json:"sources"`
}

func (service *ItemService) Update(ctx context.Context, id string, patch ItemPatch) (models.Item, error) {
	service.state.Lock()
	defer service.state.Unlock()

	item, ok := service.state.ItemByID(id)
	if !ok {
		return models.Item{}, store.ErrNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Sources != nil {
		item.Sources = *patch.Sources
	}
	return *item, service.save(ctx)
}

// Delete removes an item from the master list. Bundle references stay
// behind as dangling ids for the resolver to skip; the shopping list also
// keeps whatever it already captured.
func (service *ItemService) Delete(ctx context.Context, id string) error {
	service.state.Lock()
	defer service.state.Unlock()

	if err := service.state.DeleteItem(id); err != nil {
		return err
	}
	return service.save(ctx)
}

// AddSource attaches a retailer source to an item. When clip is set the
// product page is fetched and its title recorded as the source note; a
// failed clip is logged and the source attached without one.
func (service *ItemService) AddSource(ctx context.Context, id string, source models.Source, clip bool) (models.Item, error) {
	if clip && service.clipper != nil && source.URL != "" {
		note, err := service.clipper.PageTitle(ctx, source.URL)
		if err != nil {
			slog.Warn("clipping source page", "url", source.URL, "error", err)
		} else {
			source.Note = note
		}
	}

	service.state.Lock()
	defer service.state.Unlock()

	item, ok := service.state.ItemByID(id)
	if !ok {
		return models.Item{}, store.ErrNotFound
	}
	item.Sources = append(item.Sources, source)
	return *item, service.save(ctx)
}

func (service *ItemService) save(ctx context.Context) error {
	if err := saveResource(ctx, service.repo, repository.ResourceItems, service.state.Items); err != nil {
		slog.Error("saving items", "error", err)
		return err
	}
	return nil
}
