package memory

import (
	"context"
	"testing"
	"time"

	"aeroedu-service/internal/domain"
)

func TestContentRepositoryCaches(t *testing.T) {
	loader := &countingLoader{ContentLoader: NewStaticContentLoader(sampleCatalog())}
	repo := NewContentRepository(loader, time.Minute)

	if _, err := repo.GetModule(context.Background(), 1); err != nil {
		t.Fatalf("get module: %v", err)
	}
	if loader.moduleCalls != 1 {
		t.Fatalf("expected loader once, got %d", loader.moduleCalls)
	}

	if _, err := repo.GetModule(context.Background(), 1); err != nil {
		t.Fatalf("get module 2: %v", err)
	}
	if loader.moduleCalls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.moduleCalls)
	}
}

func TestContentRepositoryCachesCatalog(t *testing.T) {
	loader := &countingLoader{ContentLoader: NewStaticContentLoader(sampleCatalog())}
	repo := NewContentRepository(loader, time.Minute)

	modules, err := repo.ListModules(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	if _, err := repo.ListModules(context.Background()); err != nil {
		t.Fatalf("list 2: %v", err)
	}
	if loader.listCalls != 1 {
		t.Fatalf("expected cached catalog, loader calls %d", loader.listCalls)
	}
}

func TestContentRepositoryUnknownModule(t *testing.T) {
	repo := NewContentRepository(NewStaticContentLoader(sampleCatalog()), time.Minute)
	if _, err := repo.GetModule(context.Background(), 42); err != domain.ErrModuleNotFound {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(catalog))
	}
	for id, module := range catalog {
		if module.ID != id {
			t.Fatalf("module key %d disagrees with id %d", id, module.ID)
		}
		if len(module.Quiz) == 0 || len(module.Sections) == 0 {
			t.Fatalf("module %d missing quiz or sections", id)
		}
		if module.XPReward <= 0 {
			t.Fatalf("module %d has no xp reward", id)
		}
		for _, q := range module.Quiz {
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				t.Fatalf("module %d question %s has out-of-range answer", id, q.ID)
			}
		}
	}
}

type countingLoader struct {
	ContentLoader
	moduleCalls int
	listCalls   int
}

func (l *countingLoader) LoadModule(ctx context.Context, moduleID int) (domain.LearningModule, error) {
	l.moduleCalls++
	return l.ContentLoader.LoadModule(ctx, moduleID)
}

func (l *countingLoader) LoadModules(ctx context.Context) ([]domain.LearningModule, error) {
	l.listCalls++
	return l.ContentLoader.LoadModules(ctx)
}

func sampleCatalog() map[int]domain.LearningModule {
	return map[int]domain.LearningModule{
		1: {
			ID:       1,
			Title:    "Sample Module",
			XPReward: 100,
			Quiz: []domain.QuizQuestion{
				{
					ID:           "q1",
					Prompt:       "What is 2 + 2?",
					Options:      []string{"3", "4", "5"},
					CorrectIndex: 1,
					Explanation:  "Basic arithmetic.",
				},
			},
		},
	}
}
