package handlers

import (
	"net/http"
	"strconv"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/go-chi/chi/v5"
)

type PlanHandler struct {
	weekly    *services.WeeklyPlanService
	shopping  *services.ShoppingService
	selection *services.Selection
}

func NewPlanHandler(weekly *services.WeeklyPlanService, shopping *services.ShoppingService, selection *services.Selection) *PlanHandler {
	return &PlanHandler{weekly: weekly, shopping: shopping, selection: selection}
}

func (handler *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.weekly.Plan())
}

func (handler *PlanHandler) AddMeal(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Meal     models.MealType `json:"meal"`
		Day      string          `json:"day"`
		BundleID string          `json:"bundleId"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := handler.weekly.AddMealSlot(r.Context(), request.Meal, request.Day, request.BundleID); err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.weekly.Plan())
}

func (handler *PlanHandler) RemoveMeal(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	meal := models.MealType(chi.URLParam(r, "meal"))
	if err := handler.weekly.RemoveMealSlot(r.Context(), meal, chi.URLParam(r, "day"), index); err != nil {
		writeServiceError(w, err, "slot not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.weekly.Plan())
}

func (handler *PlanHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Kind     models.SlotKind `json:"kind"`
		Day      string          `json:"day"`
		Time     string          `json:"time"`
		EntityID string          `json:"entityId"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := handler.weekly.AddTimedSlot(r.Context(), request.Kind, request.Day, request.Time, request.EntityID); err != nil {
		writeServiceError(w, err, "entity not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.weekly.Plan())
}

func (handler *PlanHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	kind := models.SlotKind(chi.URLParam(r, "kind"))
	if err := handler.weekly.RemoveTimedSlot(r.Context(), kind, chi.URLParam(r, "key"), index); err != nil {
		writeServiceError(w, err, "slot not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.weekly.Plan())
}

// Assign applies a day-selection confirmation: schedule the chosen bundles
// on their checked days, then (unless promote=false) move the staged item
// selection onto the shopping list, composing the two into one action.
func (handler *PlanHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Assignments []services.DayAssignment `json:"assignments"`
		Promote     *bool                    `json:"promote"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	added, err := handler.weekly.AssignDays(r.Context(), request.Assignments)
	if err != nil {
		writeServiceError(w, err, "bundle not found")
		return
	}

	response := map[string]interface{}{"scheduled": added}
	if request.Promote == nil || *request.Promote {
		promotions, err := handler.shopping.PromoteSelected(r.Context(), handler.selection)
		if err != nil {
			writeServiceError(w, err, "entry not found")
			return
		}
		response["added"] = promotions
	}
	writeJSON(w, http.StatusOK, response)
}

func (handler *PlanHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := handler.weekly.Clear(r.Context()); err != nil {
		writeServiceError(w, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, handler.weekly.Plan())
}
