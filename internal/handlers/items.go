package handlers

import (
	"net/http"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/bensuskins/weekly-planner/internal/store"
	"github.com/go-chi/chi/v5"
)

type ItemHandler struct {
	items *services.ItemService
}

func NewItemHandler(items *services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

func (handler *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.items.List())
}

func (handler *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := handler.items.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (handler *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if !decodeBody(w, r, &item) {
		return
	}
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := handler.items.Create(r.Context(), item)
	if err != nil {
		writeServiceError(w, err, "item not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// FindOrCreate backs ad-hoc entry flows: posting the same name twice
// returns the same item both times.
func (handler *ItemHandler) FindOrCreate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Unit     string          `json:"unit"`
		Sources  []models.Source `json:"sources"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	if request.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := handler.items.FindOrCreate(r.Context(), request.Name, store.ItemDefaults{
		Category: request.Category,
		Unit:     request.Unit,
		Sources:  request.Sources,
	})
	if err != nil {
		writeServiceError(w, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (handler *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.ItemPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	item, err := handler.items.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (handler *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.items.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (handler *ItemHandler) AddSource(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Store string `json:"store"`
		URL   string `json:"url"`
		Note  string `json:"note"`
		Clip  bool   `json:"clip"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	item, err := handler.items.AddSource(r.Context(), chi.URLParam(r, "id"), models.Source{
		Store: request.Store,
		URL:   request.URL,
		Note:  request.Note,
	}, request.Clip)
	if err != nil {
		writeServiceError(w, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}
