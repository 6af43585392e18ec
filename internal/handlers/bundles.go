package handlers

import (
	"net/http"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/go-chi/chi/v5"
)

type BundleHandler struct {
	bundles *services.BundleService
}

func NewBundleHandler(bundles *services.BundleService) *BundleHandler {
	return &BundleHandler{bundles: bundles}
}

func (handler *BundleHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.bundles.List())
}

func (handler *BundleHandler) Get(w http.ResponseWriter, r *http.Request) {
	bundle, err := handler.bundles.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// Resolved returns the bundle joined against the master item list, with
// dangling references already filtered out.
func (handler *BundleHandler) Resolved(w http.ResponseWriter, r *http.Request) {
	resolved, err := handler.bundles.Resolved(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

func (handler *BundleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var bundle models.Bundle
	if !decodeBody(w, r, &bundle) {
		return
	}
	if bundle.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := handler.bundles.Add(r.Context(), bundle)
	if err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *BundleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.BundlePatch
	if !decodeBody(w, r, &patch) {
		return
	}

	bundle, err := handler.bundles.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (handler *BundleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.bundles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (handler *BundleHandler) AddItemRef(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ItemID   string  `json:"itemId"`
		Quantity float64 `json:"quantity"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	if request.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}

	if err := handler.bundles.AddItemRef(r.Context(), chi.URLParam(r, "id"), request.ItemID, request.Quantity); err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	bundle, err := handler.bundles.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (handler *BundleHandler) UpdateItemQty(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Quantity float64 `json:"quantity"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := handler.bundles.UpdateItemQty(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), request.Quantity); err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (handler *BundleHandler) RemoveItemRef(w http.ResponseWriter, r *http.Request) {
	if err := handler.bundles.RemoveItemRef(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// Select mutates the ephemeral selection state for a bundle: toggling one
// item, staging all, clearing, or flipping the expanded flag.
func (handler *BundleHandler) Select(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Action string `json:"action"`
		ItemID string `json:"itemId"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	bundleID := chi.URLParam(r, "id")
	switch request.Action {
	case "toggle":
		handler.bundles.ToggleItem(bundleID, request.ItemID)
	case "all":
		if err := handler.bundles.SelectAll(bundleID); err != nil {
			writeServiceError(w, err, "bundle not found")
			return
		}
	case "none":
		handler.bundles.DeselectAll(bundleID)
	case "expand":
		handler.bundles.ToggleExpand(bundleID)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"selected": handler.bundles.CountSelected()})
}
