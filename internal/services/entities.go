package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bensuskins/weekly-planner/internal/models"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/store"
	"github.com/google/uuid"
)

// ActivityService and ChoreService manage the independent entities the
// weekly plan schedules. Plan slots hold name snapshots, so edits and
// deletions here never rewrite what is already scheduled.

type ActivityService struct {
	state *store.State
	repo  repository.ResourceRepository
}

func NewActivityService(state *store.State, repo repository.ResourceRepository) *ActivityService {
	return &ActivityService{state: state, repo: repo}
}

func (service *ActivityService) List() []models.Activity {
	service.state.Lock()
	defer service.state.Unlock()
	return append([]models.Activity(nil), service.state.Activities...)
}

func (service *ActivityService) Create(ctx context.Context, activity models.Activity) (models.Activity, error) {
	if strings.TrimSpace(activity.Name) == "" {
		return models.Activity{}, fmt.Errorf("activity needs a name")
	}

	service.state.Lock()
	defer service.state.Unlock()
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	service.state.Activities = append(service.state.Activities, activity)
	return activity, service.save(ctx)
}

func (service *ActivityService) Update(ctx context.Context, id string, name, category *string) (models.Activity, error) {
	service.state.Lock()
	defer service.state.Unlock()

	for i := range service.state.Activities {
		if service.state.Activities[i].ID != id {
			continue
		}
		if name != nil {
			service.state.Activities[i].Name = *name
		}
		if category != nil {
			service.state.Activities[i].Category = *category
		}
		return service.state.Activities[i], service.save(ctx)
	}
	return models.Activity{}, store.ErrNotFound
}

func (service *ActivityService) Delete(ctx context.Context, id string) error {
	service.state.Lock()
	defer service.state.Unlock()

	for i := range service.state.Activities {
		if service.state.Activities[i].ID == id {
			service.state.Activities = append(service.state.Activities[:i], service.state.Activities[i+1:]...)
			return service.save(ctx)
		}
	}
	return store.ErrNotFound
}

func (service *ActivityService) save(ctx context.Context) error {
	if err := saveResource(ctx, service.repo, repository.ResourceActivities, service.state.Activities); err != nil {
		slog.Error("saving activities", "error", err)
		return err
	}
	return nil
}

type ChoreService struct {
	state *store.State
	repo  repository.ResourceRepository
}

func NewChoreService(state *store.State, repo repository.ResourceRepository) *ChoreService {
	return &ChoreService{state: state, repo: repo}
}

func (service *ChoreService) List() []models.Chore {
	service.state.Lock()
	defer service.state.Unlock()
	return append([]models.Chore(nil), service.state.Chores...)
}

func (service *ChoreService) Create(ctx context.Context, chore models.Chore) (models.Chore, error) {
	if strings.TrimSpace(chore.Name) == "" {
		return models.Chore{}, fmt.Errorf("chore needs a name")
	}

	service.state.Lock()
	defer service.state.Unlock()
	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	service.state.Chores = append(service.state.Chores, chore)
	return chore, service.save(ctx)
}

func (service *ChoreService) Update(ctx context.Context, id string, name, frequency *string) (models.Chore, error) {
	service.state.Lock()
	defer service.state.Unlock()

	for i := range service.state.Chores {
		if service.state.Chores[i].ID != id {
			continue
		}
		if name != nil {
			service.state.Chores[i].Name = *name
		}
		if frequency != nil {
			service.state.Chores[i].Frequency = *frequency
		}
		return service.state.Chores[i], service.save(ctx)
	}
	return models.Chore{}, store.ErrNotFound
}

func (service *ChoreService) Delete(ctx context.Context, id string) error {
	service.state.Lock()
	defer service.state.Unlock()

	for i := range service.state.Chores {
		if service.state.Chores[i].ID == id {
			service.state.Chores = append(service.state.Chores[:i], service.state.Chores[i+1:]...)
			return service.save(ctx)
		}
	}
	return store.ErrNotFound
}

func (service *ChoreService) save(ctx context.Context) error {
	if err := saveResource(ctx, service.repo, repository.ResourceChores, service.state.Chores); err != nil {
		slog.Error("saving chores", "error", err)
		return err
	}
	return nil
}
