package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/cache"
	"github.com/jhoicas/confeitaria-api/pkg/config"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// countingRepo repositorio en memoria que cuenta las lecturas por id.
type countingRepo struct {
	items map[string]*entity.Ingredient
	finds int
	err   error
	// onFind corre después de leer y antes de devolver; simula una escritura concurrente.
	onFind func()
}

func (r *countingRepo) Insert(_ context.Context, in *entity.Ingredient) (*entity.Ingredient, error) {
	r.items[in.ID] = in
	return in, nil
}

func (r *countingRepo) FindAll(context.Context, repository.IngredientFilter) ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

func (r *countingRepo) FindByID(_ context.Context, id string) (*entity.Ingredient, error) {
	r.finds++
	if r.err != nil {
		return nil, r.err
	}
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	if r.onFind != nil {
		hook := r.onFind
		r.onFind = nil
		hook()
	}
	return &cp, nil
}

func (r *countingRepo) UpdateByID(_ context.Context, id string, p entity.IngredientPatch) (*entity.Ingredient, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	next := p.Apply(*v)
	r.items[id] = &next
	return &next, nil
}

func (r *countingRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *countingRepo, *cache.IngredientCache) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{items: map[string]*entity.Ingredient{
		"a": {
			ID: "a", Name: "Leite Condensado", UnitCount: 12, WeightPerUnit: decimal.RequireFromString("0.395"),
			UnitOfMeasure: "kg", ExpiryDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), MinimumThreshold: 6,
			CostPrice: decimal.RequireFromString("7.49"), CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	return s, repo, cache.NewIngredientCache(repo, client, time.Minute, logger.Nop())
}

func TestIngredientCache_FindByID_HitDespuesDeMiss(t *testing.T) {
	s, repo, c := setup(t)
	ctx := context.Background()

	first, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, s.Exists("confeitaria:ingredient:a"))

	second, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.finds, "la segunda lectura sale del caché")
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.CostPrice.Equal(second.CostPrice))
	assert.True(t, first.WeightPerUnit.Equal(second.WeightPerUnit))
	assert.True(t, first.ExpiryDate.Equal(second.ExpiryDate))
}

func TestIngredientCache_NoCacheaAusentes(t *testing.T) {
	s, _, c := setup(t)

	got, err := c.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, s.Exists("confeitaria:ingredient:nope"))
}

func TestIngredientCache_UpdateInvalida(t *testing.T) {
	s, repo, c := setup(t)
	ctx := context.Background()

	_, err := c.FindByID(ctx, "a")
	require.NoError(t, err)

	count := 2
	updated, err := c.UpdateByID(ctx, "a", entity.IngredientPatch{UnitCount: &count})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.UnitCount)
	assert.False(t, s.Exists("confeitaria:ingredient:a"))

	got, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.UnitCount, "no se sirve un valor viejo tras actualizar")
	assert.Equal(t, 2, repo.finds)
}

func TestIngredientCache_LecturaConcurrenteConUpdateNoDejaValorViejo(t *testing.T) {
	s, repo, c := setup(t)
	ctx := context.Background()

	count := 3
	repo.onFind = func() {
		_, err := c.UpdateByID(ctx, "a", entity.IngredientPatch{UnitCount: &count})
		require.NoError(t, err)
	}

	stale, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 12, stale.UnitCount, "la lectura en vuelo devuelve lo que vio")
	assert.False(t, s.Exists("confeitaria:ingredient:a"), "pero no lo deja en el caché")

	got, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, got.UnitCount)
	assert.True(t, got.IsLowStock())
	assert.True(t, s.Exists("confeitaria:ingredient:a"))
}

func TestIngredientCache_DeleteInvalida(t *testing.T) {
	s, _, c := setup(t)
	ctx := context.Background()

	_, err := c.FindByID(ctx, "a")
	require.NoError(t, err)

	ok, err := c.DeleteByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, s.Exists("confeitaria:ingredient:a"))

	got, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIngredientCache_RedisCaidoSigueFuncionando(t *testing.T) {
	s, repo, c := setup(t)
	s.Close()

	got, err := c.FindByID(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, repo.finds)
}

func TestIngredientCache_PropagaErrorDelRepositorio(t *testing.T) {
	_, repo, c := setup(t)
	repo.err = errors.New("db down")

	_, err := c.FindByID(context.Background(), "a")
	assert.EqualError(t, err, "db down")
}

func TestConnect(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := cache.Connect(context.Background(), config.RedisConfig{Addr: s.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	s.Close()
	_, err = cache.Connect(context.Background(), config.RedisConfig{Addr: s.Addr()})
	assert.Error(t, err)
}
