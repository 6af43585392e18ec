package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/quantity"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/store"
	"github.com/google/uuid"
)

// BundleService owns CRUD over bundles and their item references, plus the
// selection state used to stage items for the shopping list.
type BundleService struct {
	state     *store.State
	repo      repository.ResourceRepository
	selection *Selection
}

func NewBundleService(state *store.State, repo repository.ResourceRepository, selection *Selection) *BundleService {
	return &BundleService{state: state, repo: repo, selection: selection}
}

func (service *BundleService) List() []models.Bundle {
	service.state.Lock()
	defer service.state.Unlock()
	return append([]models.Bundle(nil), service.state.Bundles...)
}

func (service *BundleService) Get(id string) (models.Bundle, error) {
	service.state.Lock()
	defer service.state.Unlock()
	bundle, ok := service.state.BundleByID(id)
	if !ok {
		return models.Bundle{}, store.ErrNotFound
	}
	return *bundle, nil
}

// Resolved joins a bundle's item references against the master list,
// dropping any that no longer resolve.
func (service *BundleService) Resolved(id string) ([]store.ResolvedItem, error) {
	service.state.Lock()
	defer service.state.Unlock()
	bundle, ok := service.state.BundleByID(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return service.state.ResolveBundle(*bundle), nil
}

// Add creates a bundle. A missing category defaults to dinner and a missing
// id is generated as "{category}-{suffix}".
func (service *BundleService) Add(ctx context.Context, bundle models.Bundle) (models.Bundle, error) {
	service.state.Lock()
	defer service.state.Unlock()

	if bundle.Category == "" {
		bundle.Category = models.BundleDinner
	}
	if !bundle.Category.Valid() {
		return models.Bundle{}, fmt.Errorf("unknown bundle category %q", bundle.Category)
	}
	if bundle.ID == "" {
		bundle.ID = fmt.Sprintf("%s-%s", bundle.Category, uuid.New().String()[:8])
	}
	if bundle.Items == nil {
		bundle.Items = []models.BundleItem{}
	}

	service.state.Bundles = append(service.state.Bundles, bundle)
	return bundle, service.save(ctx)
}

// BundlePatch holds the fields an update may overwrite; nil fields are left
// untouched.
type BundlePatch struct {
	Name     *string                `json:"name"`
	Category *models.BundleCategory `json:"category"`
	URL      *string                `json:"url"`
}

func (service *BundleService) Update(ctx context.Context, id string, patch BundlePatch) (models.Bundle, error) {
	service.state.Lock()
	defer service.state.Unlock()

	bundle, ok := service.state.BundleByID(id)
	if !ok {
		return models.Bundle{}, store.ErrNotFound
	}
	if patch.Name != nil {
		bundle.Name = *patch.Name
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return models.Bundle{}, fmt.Errorf("unknown bundle category %q", *patch.Category)
		}
		bundle.Category = *patch.Category
	}
	if patch.URL != nil {
		bundle.URL = *patch.URL
	}
	return *bundle, service.save(ctx)
}

// Delete removes a bundle and purges its selection and expanded state so no
// stale UI entries reference it.
func (service *BundleService) Delete(ctx context.Context, id string) error {
	service.state.Lock()
	defer service.state.Unlock()

	for i := range service.state.Bundles {
		if service.state.Bundles[i].ID == id {
			service.state.Bundles = append(service.state.Bundles[:i], service.state.Bundles[i+1:]...)
			service.selection.DropBundle(id)
			return service.save(ctx)
		}
	}
	return store.ErrNotFound
}

// AddItemRef adds an item reference to a bundle, or bumps the quantity of
// an existing reference. Quantity defaults to 1.
func (service *BundleService) AddItemRef(ctx context.Context, bundleID, itemID string, qty float64) error {
	service.state.Lock()
	defer service.state.Unlock()

	bundle, ok := service.state.BundleByID(bundleID)
	if !ok {
		return store.ErrNotFound
	}
	if qty == 0 {
		qty = 1
	}
	for i := range bundle.Items {
		if bundle.Items[i].ItemID == itemID {
			bundle.Items[i].Quantity += quantity.Flexible(qty)
			return service.save(ctx)
		}
	}
	bundle.Items = append(bundle.Items, models.BundleItem{ItemID: itemID, Quantity: quantity.Flexible(qty)})
	return service.save(ctx)
}

// RemoveItemRef removes a bundle's reference to an item along with any
// staged selection of it. A reference that is already gone is a no-op.
func (service *BundleService) RemoveItemRef(ctx context.Context, bundleID, itemID string) error {
	service.state.Lock()
	defer service.state.Unlock()

	bundle, ok := service.state.BundleByID(bundleID)
	if !ok {
		return store.ErrNotFound
	}
	for i := range bundle.Items {
		if bundle.Items[i].ItemID == itemID {
			bundle.Items = append(bundle.Items[:i], bundle.Items[i+1:]...)
			service.selection.RemoveItem(bundleID, itemID)
			return service.save(ctx)
		}
	}
	return nil
}

// UpdateItemQty overwrites a reference's quantity; a missing reference is a
// no-op.
func (service *BundleService) UpdateItemQty(ctx context.Context, bundleID, itemID string, qty float64) error {
	service.state.Lock()
	defer service.state.Unlock()

	bundle, ok := service.state.BundleByID(bundleID)
	if !ok {
		return store.ErrNotFound
	}
	for i := range bundle.Items {
		if bundle.Items[i].ItemID == itemID {
			bundle.Items[i].Quantity = quantity.Flexible(qty)
			return service.save(ctx)
		}
	}
	return nil
}

// ToggleItem flips an item's staged-for-shopping state.
func (service *BundleService) ToggleItem(bundleID, itemID string) bool {
	service.state.Lock()
	defer service.state.Unlock()
	return service.selection.ToggleItem(bundleID, itemID)
}

// SelectAll stages every item currently referenced by the bundle.
func (service *BundleService) SelectAll(bundleID string) error {
	service.state.Lock()
	defer service.state.Unlock()

	bundle, ok := service.state.BundleByID(bundleID)
	if !ok {
		return store.ErrNotFound
	}
	ids := make([]string, 0, len(bundle.Items))
	for _, ref := range bundle.Items {
		ids = append(ids, ref.ItemID)
	}
	service.selection.SelectAll(bundleID, ids)
	return nil
}

func (service *BundleService) DeselectAll(bundleID string) {
	service.state.Lock()
	defer service.state.Unlock()
	service.selection.DeselectAll(bundleID)
}

func (service *BundleService) ToggleExpand(bundleID string) bool {
	service.state.Lock()
	defer service.state.Unlock()
	return service.selection.ToggleExpand(bundleID)
}

// CountSelected sums staged items across all bundles.
func (service *BundleService) CountSelected() int {
	service.state.Lock()
	defer service.state.Unlock()
	return service.selection.CountSelected()
}

func (service *BundleService) save(ctx context.Context) error {
	if err := saveResource(ctx, service.repo, repository.ResourceBundles, service.state.Bundles); err != nil {
		slog.Error("saving bundles", "error", err)
		return err
	}
	return nil
}
