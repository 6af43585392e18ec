package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/store"
	"github.com/go-chi/chi/v5"
)

// ResourceHandler keeps the original frontend's raw load/save contract
// alive: whole JSON documents per named resource. Replacing a document also
// refreshes the in-memory state derived from it.
type ResourceHandler struct {
	repo  repository.ResourceRepository
	state *store.State
}

func NewResourceHandler(repo repository.ResourceRepository, state *store.State) *ResourceHandler {
	return &ResourceHandler{repo: repo, state: state}
}

func (handler *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !repository.KnownResource(name) {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	data, err := handler.repo.Load(r.Context(), name)
	if err != nil {
		slog.Error("loading resource", "resource", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load resource")
		return
	}
	if len(data) == 0 {
		data = emptyDefault(name)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (handler *ResourceHandler) Put(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !repository.KnownResource(name) {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body")
		return
	}
	if !json.Valid(data) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	handler.state.Lock()
	defer handler.state.Unlock()

	if err := handler.state.ReplaceResource(name, data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := handler.repo.Save(r.Context(), name, data); err != nil {
		slog.Error("saving resource", "resource", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save resource")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// emptyDefault mirrors the load contract: collections default to [] and
// the weekly plan to {}.
func emptyDefault(name string) []byte {
	if name == repository.ResourceWeeklyPlan {
		return []byte("{}")
	}
	return []byte("[]")
}
