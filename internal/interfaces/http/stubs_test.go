package http_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// memIngredientRepo repositorio en memoria; failWith fuerza un fallo de infraestructura.
type memIngredientRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.Ingredient
	order    []string
	failWith error
}

func newMemIngredientRepo() *memIngredientRepo {
	return &memIngredientRepo{byID: map[string]*entity.Ingredient{}}
}

func (r *memIngredientRepo) Insert(_ context.Context, in *entity.Ingredient) (*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	cp := *in
	r.byID[in.ID] = &cp
	r.order = append(r.order, in.ID)
	out := cp
	return &out, nil
}

func (r *memIngredientRepo) FindAll(_ context.Context, f repository.IngredientFilter) ([]*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]*entity.Ingredient, 0, len(r.order))
	for _, id := range r.order {
		in, ok := r.byID[id]
		if !ok {
			continue
		}
		if f.LowStockOnly && !in.IsLowStock() {
			continue
		}
		if f.Search != "" && !strings.Contains(in.SearchKey(), f.Search) {
			continue
		}
		cp := *in
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memIngredientRepo) FindByID(_ context.Context, id string) (*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	in, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *in
	return &cp, nil
}

func (r *memIngredientRepo) UpdateByID(_ context.Context, id string, p entity.IngredientPatch) (*entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	in, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	next := p.Apply(*in)
	next.UpdatedAt = time.Now().UTC()
	r.byID[id] = &next
	out := next
	return &out, nil
}

func (r *memIngredientRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return false, r.failWith
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

type memUserRepo struct {
	byID map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type stubReportGenerator struct{}

func (stubReportGenerator) GenerateRestockReport(_ context.Context, items []*entity.Ingredient, _ time.Time) ([]byte, error) {
	return []byte("%PDF-stub " + strings.Repeat("x", len(items))), nil
}
