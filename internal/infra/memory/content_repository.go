package memory

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"aeroedu-service/internal/domain"
)

// ContentLoader fetches learning modules from a backing store (e.g., Postgres).
type ContentLoader interface {
	LoadModule(ctx context.Context, moduleID int) (domain.LearningModule, error)
	LoadModules(ctx context.Context) ([]domain.LearningModule, error)
}

// ContentRepository caches the module catalog with TTL to avoid repeated
// backing-store hits.
type ContentRepository struct {
	loader ContentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cache     map[int]cachedModule
	listCache *cachedCatalog
}

type cachedModule struct {
	module    domain.LearningModule
	expiresAt time.Time
}

type cachedCatalog struct {
	modules   []domain.LearningModule
	expiresAt time.Time
}

func NewContentRepository(loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int]cachedModule),
	}
}

func (r *ContentRepository) GetModule(ctx context.Context, moduleID int) (domain.LearningModule, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[moduleID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.module, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(strconv.Itoa(moduleID), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[moduleID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.module, nil
		}
		r.mu.RUnlock()

		module, err := r.loader.LoadModule(ctx, moduleID)
		if err != nil {
			return domain.LearningModule{}, err
		}

		r.mu.Lock()
		r.cache[moduleID] = cachedModule{module: module, expiresAt: now.Add(r.ttlWithJitter())}
		r.mu.Unlock()
		return module, nil
	})
	if err != nil {
		return domain.LearningModule{}, err
	}
	return result.(domain.LearningModule), nil
}

func (r *ContentRepository) ListModules(ctx context.Context) ([]domain.LearningModule, error) {
	now := r.clock()

	r.mu.RLock()
	if r.listCache != nil && r.listCache.expiresAt.After(now) {
		modules := r.listCache.modules
		r.mu.RUnlock()
		return modules, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.listCache != nil && r.listCache.expiresAt.After(now) {
			modules := r.listCache.modules
			r.mu.RUnlock()
			return modules, nil
		}
		r.mu.RUnlock()

		modules, err := r.loader.LoadModules(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.listCache = &cachedCatalog{modules: modules, expiresAt: now.Add(r.ttlWithJitter())}
		r.mu.Unlock()
		return modules, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LearningModule), nil
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticContentLoader serves modules from an in-memory map (demo mode and tests).
type StaticContentLoader struct {
	modules map[int]domain.LearningModule
}

func NewStaticContentLoader(modules map[int]domain.LearningModule) *StaticContentLoader {
	return &StaticContentLoader{modules: modules}
}

func (l *StaticContentLoader) LoadModule(_ context.Context, moduleID int) (domain.LearningModule, error) {
	if module, ok := l.modules[moduleID]; ok {
		return module, nil
	}
	return domain.LearningModule{}, domain.ErrModuleNotFound
}

func (l *StaticContentLoader) LoadModules(_ context.Context) ([]domain.LearningModule, error) {
	out := make([]domain.LearningModule, 0, len(l.modules))
	for _, module := range l.modules {
		out = append(out, module)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
