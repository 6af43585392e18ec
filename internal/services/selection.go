package services

// Selection is the ephemeral UI state tracking which bundle items are
// staged for promotion to the shopping list, and which bundle cards are
// expanded. It lives alongside the domain state but is never persisted;
// entries are dropped as the bundles and references they point at
// disappear, and the staged set is cleared wholesale after a promotion.
type Selection struct {
	selected map[string]map[string]bool
	expanded map[string]bool
}

func NewSelection() *Selection {
	return &Selection{
		selected: map[string]map[string]bool{},
		expanded: map[string]bool{},
	}
}

// ToggleItem flips one item's staged state and reports the new state.
func (selection *Selection) ToggleItem(bundleID, itemID string) bool {
	items := selection.selected[bundleID]
	if items == nil {
		items = map[string]bool{}
		selection.selected[bundleID] = items
	}
	if items[itemID] {
		delete(items, itemID)
		if len(items) == 0 {
			delete(selection.selected, bundleID)
		}
		return false
	}
	items[itemID] = true
	return true
}

// SelectAll stages every given item id for the bundle, replacing whatever
// was staged before.
func (selection *Selection) SelectAll(bundleID string, itemIDs []string) {
	if len(itemIDs) == 0 {
		delete(selection.selected, bundleID)
		return
	}
	items := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		items[id] = true
	}
	selection.selected[bundleID] = items
}

func (selection *Selection) DeselectAll(bundleID string) {
	delete(selection.selected, bundleID)
}

func (selection *Selection) IsSelected(bundleID, itemID string) bool {
	return selection.selected[bundleID][itemID]
}

// ToggleExpand flips a bundle card's expanded state and reports it.
func (selection *Selection) ToggleExpand(bundleID string) bool {
	if selection.expanded[bundleID] {
		delete(selection.expanded, bundleID)
		return false
	}
	selection.expanded[bundleID] = true
	return true
}

func (selection *Selection) Expanded(bundleID string) bool {
	return selection.expanded[bundleID]
}

// RemoveItem drops one staged item, used when its bundle reference is
// removed.
func (selection *Selection) RemoveItem(bundleID, itemID string) {
	items := selection.selected[bundleID]
	delete(items, itemID)
	if len(items) == 0 {
		delete(selection.selected, bundleID)
	}
}

// DropBundle forgets everything about a bundle. Deleting a bundle must call
// this or stale selection entries would keep counting toward totals.
func (selection *Selection) DropBundle(bundleID string) {
	delete(selection.selected, bundleID)
	delete(selection.expanded, bundleID)
}

// CountSelected sums staged item counts across all bundles.
func (selection *Selection) CountSelected() int {
	total := 0
	for _, items := range selection.selected {
		total += len(items)
	}
	return total
}

// ClearSelected empties the staged sets, as happens after a promotion.
// Expanded state is presentation only and survives.
func (selection *Selection) ClearSelected() {
	selection.selected = map[string]map[string]bool{}
}
