package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"aeroedu-service/internal/domain"
)

// ContentLoader fetches learning modules from a backing store (e.g., Postgres).
type ContentLoader interface {
	LoadModule(ctx context.Context, moduleID int) (domain.LearningModule, error)
	LoadModules(ctx context.Context) ([]domain.LearningModule, error)
}

// ContentRepository caches serialized modules in Redis and falls back to a
// loader on cache miss. Modules are stored as:
//
//	SET module:{id}       {json}
//	SET modules:catalog   {json array}
type ContentRepository struct {
	client *redis.Client
	loader ContentLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewContentRepository(client *redis.Client, loader ContentLoader, ttl time.Duration) *ContentRepository {
	return &ContentRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ContentRepository) GetModule(ctx context.Context, moduleID int) (domain.LearningModule, error) {
	key := r.moduleKey(moduleID)

	if module, ok := r.cachedModule(ctx, key); ok {
		return module, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if module, ok := r.cachedModule(ctx, key); ok {
			return module, nil
		}

		module, err := r.loader.LoadModule(ctx, moduleID)
		if err != nil {
			return domain.LearningModule{}, err
		}
		r.store(ctx, key, module)
		return module, nil
	})
	if err != nil {
		return domain.LearningModule{}, err
	}
	return result.(domain.LearningModule), nil
}

func (r *ContentRepository) ListModules(ctx context.Context) ([]domain.LearningModule, error) {
	key := r.catalogKey()

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
		var modules []domain.LearningModule
		if err := json.Unmarshal(raw, &modules); err == nil {
			return modules, nil
		}
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var modules []domain.LearningModule
			if err := json.Unmarshal(raw, &modules); err == nil {
				return modules, nil
			}
		}

		modules, err := r.loader.LoadModules(ctx)
		if err != nil {
			return nil, err
		}
		r.store(ctx, key, modules)
		return modules, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LearningModule), nil
}

func (r *ContentRepository) cachedModule(ctx context.Context, key string) (domain.LearningModule, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.LearningModule{}, false
	}
	var module domain.LearningModule
	if err := json.Unmarshal(raw, &module); err != nil {
		return domain.LearningModule{}, false
	}
	return module, true
}

// store is best-effort: a cache write failure never fails the read path.
func (r *ContentRepository) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
}

func (r *ContentRepository) moduleKey(moduleID int) string {
	return "module:" + strconv.Itoa(moduleID)
}

func (r *ContentRepository) catalogKey() string {
	return "modules:catalog"
}

func (r *ContentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
