package handlers

import (
	"net/http"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/go-chi/chi/v5"
)

// ActivityHandler and ChoreHandler expose the independent entities the
// weekly plan schedules from.

type ActivityHandler struct {
	activities *services.ActivityService
}

func NewActivityHandler(activities *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

func (handler *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.activities.List())
}

func (handler *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if !decodeBody(w, r, &activity) {
		return
	}
	if activity.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := handler.activities.Create(r.Context(), activity)
	if err != nil {
		writeServiceError(w, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
	}
	if !decodeBody(w, r, &patch) {
		return
	}

	activity, err := handler.activities.Update(r.Context(), chi.URLParam(r, "id"), patch.Name, patch.Category)
	if err != nil {
		writeServiceError(w, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (handler *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.activities.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type ChoreHandler struct {
	chores *services.ChoreService
}

func NewChoreHandler(chores *services.ChoreService) *ChoreHandler {
	return &ChoreHandler{chores: chores}
}

func (handler *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.chores.List())
}

func (handler *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var chore models.Chore
	if !decodeBody(w, r, &chore) {
		return
	}
	if chore.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := handler.chores.Create(r.Context(), chore)
	if err != nil {
		writeServiceError(w, err, "chore not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Name      *string `json:"name"`
		Frequency *string `json:"frequency"`
	}
	if !decodeBody(w, r, &patch) {
		return
	}

	chore, err := handler.chores.Update(r.Context(), chi.URLParam(r, "id"), patch.Name, patch.Frequency)
	if err != nil {
		writeServiceError(w, err, "chore not found")
		return
	}
	writeJSON(w, http.StatusOK, chore)
}

func (handler *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.chores.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "chore not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
