package handlers

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/services"
)

// ExportHandler renders the weekly plan as an iCalendar feed so it can be
// pulled into an external calendar.
type ExportHandler struct {
	weekly *services.WeeklyPlanService
	now    func() time.Time
}

func NewExportHandler(weekly *services.WeeklyPlanService) *ExportHandler {
	return &ExportHandler{weekly: weekly, now: time.Now}
}

var mealTimes = map[models.MealType]int{
	models.MealBreakfast: 8,
	models.MealLunch:     12,
	models.MealDinner:    18,
}

var slotTimes = map[string]int{
	"am":  9,
	"pm":  14,
	"eve": 19,
}

func (handler *ExportHandler) Feed(w http.ResponseWriter, r *http.Request) {
	plan := handler.weekly.Plan()

	now := handler.now()
	// The planner week starts on Saturday, so events anchor to the most
	// recent Saturday.
	offset := (int(now.Weekday()) - int(time.Saturday) + 7) % 7
	weekStart := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, time.Local)

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)

	stamp := now
	for _, meal := range []models.MealType{models.MealBreakfast, models.MealLunch, models.MealDinner} {
		slots := plan.Meals(meal)
		for _, day := range models.MealDays {
			for position, ref := range slots[day] {
				date := weekStart.AddDate(0, 0, dayOffset(day))
				start := time.Date(date.Year(), date.Month(), date.Day(), mealTimes[meal], 0, 0, 0, time.Local)
				event := calendar.AddEvent(fmt.Sprintf("%s-%s-%d@weekly-planner", meal, day, position))
				event.SetDtStampTime(stamp)
				event.SetStartAt(start)
				event.SetEndAt(start.Add(time.Hour))
				event.SetSummary(ref.Name)
				event.SetDescription(string(meal))
			}
		}
	}

	for _, kind := range []models.SlotKind{models.SlotActivities, models.SlotChores} {
		slots := plan.Timed(kind)
		for _, day := range models.PlannerDays {
			for _, timeSlot := range models.TimeSlots {
				key := day + "-" + timeSlot
				for position, ref := range slots[key] {
					date := weekStart.AddDate(0, 0, dayOffset(day))
					event := calendar.AddEvent(fmt.Sprintf("%s-%s-%d@weekly-planner", kind, key, position))
					event.SetDtStampTime(stamp)
					if timeSlot == "all" {
						event.SetAllDayStartAt(date)
						event.SetAllDayEndAt(date.AddDate(0, 0, 1))
					} else {
						start := time.Date(date.Year(), date.Month(), date.Day(), slotTimes[timeSlot], 0, 0, 0, time.Local)
						event.SetStartAt(start)
						event.SetEndAt(start.Add(time.Hour))
					}
					event.SetSummary(ref.Name)
					event.SetDescription(string(kind))
				}
			}
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=weekly-planner.ics")
	w.Write([]byte(calendar.Serialize()))
}

// dayOffset is the day's distance from the Saturday week start.
func dayOffset(day string) int {
	for i, candidate := range models.PlannerDays {
		if candidate == day {
			return i
		}
	}
	return 0
}
