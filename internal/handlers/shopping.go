package handlers

import (
	"net/http"
	"strconv"

	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/go-chi/chi/v5"
)

type ShoppingHandler struct {
	shopping  *services.ShoppingService
	selection *services.Selection
}

func NewShoppingHandler(shopping *services.ShoppingService, selection *services.Selection) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping, selection: selection}
}

// List returns the flat list, or a grouped view when ?group=store or
// ?group=category is given.
func (handler *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("group") {
	case "store":
		writeJSON(w, http.StatusOK, handler.shopping.GroupByStore())
	case "category":
		writeJSON(w, http.StatusOK, handler.shopping.GroupByCategory())
	default:
		writeJSON(w, http.StatusOK, handler.shopping.List())
	}
}

func (handler *ShoppingHandler) AddManual(w http.ResponseWriter, r *http.Request) {
	var manual services.ManualEntry
	if !decodeBody(w, r, &manual) {
		return
	}
	if manual.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := handler.shopping.AddManual(r.Context(), manual); err != nil {
		writeServiceError(w, err, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.shopping.List())
}

// Promote moves the staged bundle selection onto the shopping list and
// returns what was added for the confirmation display.
func (handler *ShoppingHandler) Promote(w http.ResponseWriter, r *http.Request) {
	promotions, err := handler.shopping.PromoteSelected(r.Context(), handler.selection)
	if err != nil {
		writeServiceError(w, err, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"added": promotions,
		"count": len(promotions),
	})
}

// Mutate applies one of the index-based mutators. Out-of-range indices are
// no-ops per the error taxonomy, so the response is always the fresh list.
func (handler *ShoppingHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	ctx := r.Context()
	switch chi.URLParam(r, "action") {
	case "toggle":
		err = handler.shopping.ToggleChecked(ctx, index)
	case "remove":
		err = handler.shopping.Remove(ctx, index)
	case "increment":
		err = handler.shopping.IncrementQty(ctx, index)
	case "decrement":
		err = handler.shopping.DecrementQty(ctx, index)
	case "unit":
		var request struct {
			Unit string `json:"unit"`
		}
		if !decodeBody(w, r, &request) {
			return
		}
		err = handler.shopping.UpdateUnit(ctx, index, request.Unit)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}
	if err != nil {
		writeServiceError(w, err, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.shopping.List())
}

// Clear empties the list, or only the checked entries with ?checked=true.
func (handler *ShoppingHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var err error
	if r.URL.Query().Get("checked") == "true" {
		err = handler.shopping.ClearChecked(r.Context())
	} else {
		err = handler.shopping.Clear(r.Context())
	}
	if err != nil {
		writeServiceError(w, err, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.shopping.List())
}

// Copy renders the unchecked list as plain text for the clipboard.
func (handler *ShoppingHandler) Copy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(handler.shopping.SerializeForCopy()))
}
