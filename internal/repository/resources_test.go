package repository_test

import (
	"context"
	"testing"

	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/testutil"
)

func TestResourceRepository_RoundTrip(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()

	document := []byte(`[{"id":"milk","name":"Milk"}]`)
	if err := repo.Save(ctx, repository.ResourceItems, document); err != nil {
		t.Fatalf("saving: %v", err)
	}

	loaded, err := repo.Load(ctx, repository.ResourceItems)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if string(loaded) != string(document) {
		t.Errorf("loaded %q, want %q", loaded, document)
	}
}

func TestResourceRepository_MissingResource(t *testing.T) {
	repo := testutil.NewTestRepository(t)

	data, err := repo.Load(context.Background(), repository.ResourceShopping)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if data != nil {
		t.Errorf("got %q, want nil for an absent document", data)
	}
}

func TestResourceRepository_SaveOverwrites(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, repository.ResourceStores, []byte(`[]`)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.Save(ctx, repository.ResourceStores, []byte(`[{"name":"Tesco"}]`)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := repo.Load(ctx, repository.ResourceStores)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if string(loaded) != `[{"name":"Tesco"}]` {
		t.Errorf("loaded %q after overwrite", loaded)
	}
}

func TestKnownResource(t *testing.T) {
	for _, name := range repository.Resources {
		if !repository.KnownResource(name) {
			t.Errorf("%q should be known", name)
		}
	}
	if repository.KnownResource("users") {
		t.Error("unexpected resource name accepted")
	}
}
