package stock_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// ---------------------------------------------------------------------------
// Repositorio en memoria para tests
// ---------------------------------------------------------------------------

type stubIngredientRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.Ingredient
	order    []string
	calls    int   // cantidad de llamadas a cualquier método
	failWith error // si no es nil, todos los métodos lo devuelven
	lastCtx  context.Context
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{byID: make(map[string]*entity.Ingredient)}
}

func (r *stubIngredientRepo) Insert(ctx context.Context, in *entity.Ingredient) (*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastCtx = ctx
	if r.failWith != nil {
		return nil, r.failWith
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clone := *in
	r.byID[in.ID] = &clone
	r.order = append(r.order, in.ID)
	out := clone
	return &out, nil
}

func (r *stubIngredientRepo) FindAll(_ context.Context, f repository.IngredientFilter) ([]*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	var matched []*entity.Ingredient
	for _, id := range r.order {
		in, ok := r.byID[id]
		if !ok {
			continue
		}
		if f.Category != "" && in.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(in.SearchKey(), f.Search) {
			continue
		}
		if f.LowStockOnly && in.UnitCount > in.MinimumThreshold {
			continue
		}
		clone := *in
		matched = append(matched, &clone)
	}
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, id string) (*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	in, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *in
	return &clone, nil
}

func (r *stubIngredientRepo) UpdateByID(ctx context.Context, id string, patch entity.IngredientPatch) (*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastCtx = ctx
	if r.failWith != nil {
		return nil, r.failWith
	}
	in, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	updated := patch.Apply(*in)
	updated.UpdatedAt = time.Now().UTC()
	r.byID[id] = &updated
	out := updated
	return &out, nil
}

func (r *stubIngredientRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastCtx = ctx
	if r.failWith != nil {
		return false, r.failWith
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *stubIngredientRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
