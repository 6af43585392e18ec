package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/store"
)

// WeeklyPlanService maintains the sparse schedule grid: meal slots keyed by
// day and activity/chore slots keyed by "day-time", with duplicate
// prevention within each slot.
type WeeklyPlanService struct {
	state *store.State
	repo  repository.ResourceRepository
}

func NewWeeklyPlanService(state *store.State, repo repository.ResourceRepository) *WeeklyPlanService {
	return &WeeklyPlanService{state: state, repo: repo}
}

func (service *WeeklyPlanService) Plan() models.WeeklyPlan {
	service.state.Lock()
	defer service.state.Unlock()
	return service.state.Week.Clone()
}

// AddMealSlot schedules a bundle on a meal/day cell. The bundle's name is
// snapshotted into the slot, so later renames do not rewrite the plan. An
// id already present in the slot is left alone.
func (service *WeeklyPlanService) AddMealSlot(ctx context.Context, meal models.MealType, day, bundleID string) error {
	service.state.Lock()
	defer service.state.Unlock()
	if err := service.addMealSlot(meal, day, bundleID); err != nil {
		return err
	}
	return service.save(ctx)
}

func (service *WeeklyPlanService) addMealSlot(meal models.MealType, day, bundleID string) error {
	slots := service.state.Week.Meals(meal)
	if slots == nil {
		return fmt.Errorf("unknown meal type %q", meal)
	}
	if !models.ValidMealDay(day) {
		return fmt.Errorf("unknown day %q", day)
	}
	bundle, ok := service.state.BundleByID(bundleID)
	if !ok {
		return store.ErrNotFound
	}
	if slots[day].Contains(bundleID) {
		return nil
	}
	slots[day] = append(slots[day], models.SlotRef{ID: bundle.ID, Name: bundle.Name})
	return nil
}

// RemoveMealSlot removes a scheduled bundle by position. Out-of-range
// indices are silent no-ops.
func (service *WeeklyPlanService) RemoveMealSlot(ctx context.Context, meal models.MealType, day string, index int) error {
	service.state.Lock()
	defer service.state.Unlock()

	slots := service.state.Week.Meals(meal)
	if slots == nil {
		return fmt.Errorf("unknown meal type %q", meal)
	}
	list := slots[day]
	if index < 0 || index >= len(list) {
		return nil
	}
	slots[day] = append(list[:index], list[index+1:]...)
	return service.save(ctx)
}

// AddTimedSlot schedules an activity or chore on a "{day}-{time}" key, with
// the same duplicate prevention and name snapshotting as meal slots. The
// name is resolved from the collection matching kind.
func (service *WeeklyPlanService) AddTimedSlot(ctx context.Context, kind models.SlotKind, day, timeSlot, entityID string) error {
	service.state.Lock()
	defer service.state.Unlock()

	slots := service.state.Week.Timed(kind)
	if slots == nil {
		return fmt.Errorf("unknown slot kind %q", kind)
	}
	if !models.ValidPlannerDay(day) {
		return fmt.Errorf("unknown day %q", day)
	}
	if !models.ValidTimeSlot(timeSlot) {
		return fmt.Errorf("unknown time slot %q", timeSlot)
	}

	name, ok := service.entityName(kind, entityID)
	if !ok {
		return store.ErrNotFound
	}

	key := day + "-" + timeSlot
	if slots[key].Contains(entityID) {
		return nil
	}
	slots[key] = append(slots[key], models.SlotRef{ID: entityID, Name: name})
	return service.save(ctx)
}

func (service *WeeklyPlanService) entityName(kind models.SlotKind, entityID string) (string, bool) {
	switch kind {
	case models.SlotActivities:
		for _, activity := range service.state.Activities {
			if activity.ID == entityID {
				return activity.Name, true
			}
		}
	case models.SlotChores:
		for _, chore := range service.state.Chores {
			if chore.ID == entityID {
				return chore.Name, true
			}
		}
	}
	return "", false
}

// RemoveTimedSlot removes an entry by position from a "{day}-{time}" key.
func (service *WeeklyPlanService) RemoveTimedSlot(ctx context.Context, kind models.SlotKind, key string, index int) error {
	service.state.Lock()
	defer service.state.Unlock()

	slots := service.state.Week.Timed(kind)
	if slots == nil {
		return fmt.Errorf("unknown slot kind %q", kind)
	}
	list := slots[key]
	if index < 0 || index >= len(list) {
		return nil
	}
	slots[key] = append(list[:index], list[index+1:]...)
	return service.save(ctx)
}

// Clear resets all five slot maps to empty.
func (service *WeeklyPlanService) Clear(ctx context.Context) error {
	service.state.Lock()
	defer service.state.Unlock()
	service.state.Week = models.NewWeeklyPlan()
	return service.save(ctx)
}

// DayAssignment schedules one bundle onto a set of checked days. Meal may
// be left empty, in which case the bundle's own category is used when it is
// a meal category, else dinner.
type DayAssignment struct {
	BundleID string          `json:"bundleId"`
	Meal     models.MealType `json:"meal"`
	Days     []string        `json:"days"`
}

// AssignDays applies a whole day-selection confirmation as one batch and
// saves once. Unknown bundles, invalid days and already-scheduled slots are
// skipped rather than failing the batch; the number of slots actually added
// is returned. Callers compose this with a shopping-list promotion to turn
// "schedule these bundles and buy their items" into a single action.
func (service *WeeklyPlanService) AssignDays(ctx context.Context, assignments []DayAssignment) (int, error) {
	service.state.Lock()
	defer service.state.Unlock()

	added := 0
	for _, assignment := range assignments {
		meal := assignment.Meal
		if meal == "" {
			meal = service.mealForBundle(assignment.BundleID)
		}
		for _, day := range assignment.Days {
			slots := service.state.Week.Meals(meal)
			if slots == nil || !models.ValidMealDay(day) {
				continue
			}
			before := len(slots[day])
			if err := service.addMealSlot(meal, day, assignment.BundleID); err != nil {
				continue
			}
			if len(slots[day]) > before {
				added++
			}
		}
	}
	if added == 0 {
		return 0, nil
	}
	return added, service.save(ctx)
}

func (service *WeeklyPlanService) mealForBundle(bundleID string) models.MealType {
	if bundle, ok := service.state.BundleByID(bundleID); ok {
		switch bundle.Category {
		case models.BundleBreakfast:
			return models.MealBreakfast
		case models.BundleLunch:
			return models.MealLunch
		case models.BundleDinner:
			return models.MealDinner
		}
	}
	return models.MealDinner
}

func (service *WeeklyPlanService) save(ctx context.Context) error {
	if err := saveResource(ctx, service.repo, repository.ResourceWeeklyPlan, service.state.Week); err != nil {
		slog.Error("saving weekly plan", "error", err)
		return err
	}
	return nil
}
