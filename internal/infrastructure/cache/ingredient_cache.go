package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
	"github.com/jhoicas/confeitaria-api/pkg/metrics"
)

const (
	keyPrefix = "confeitaria:ingredient:"
	// versionTTL mantiene el contador de escrituras mucho más que cualquier lectura en vuelo.
	versionTTL = 24 * time.Hour
)

// errStaleRead aborta el SET de un miss cuando hubo una escritura durante la lectura.
var errStaleRead = errors.New("ingredient changed during read")

var _ repository.IngredientRepository = (*IngredientCache)(nil)

// IngredientCache decora un IngredientRepository cacheando FindByID.
// Update y Delete incrementan un contador de versión por id y borran la clave después de
// escribir; un miss solo guarda lo leído si la versión no cambió mientras consultaba
// PostgreSQL (WATCH/MULTI). Un fallo de Redis nunca rompe la operación: se registra y se
// sigue contra el repositorio.
type IngredientCache struct {
	next   repository.IngredientRepository
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewIngredientCache construye el decorador.
func NewIngredientCache(next repository.IngredientRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *IngredientCache {
	return &IngredientCache{next: next, client: client, ttl: ttl, log: log.Named("ingredient_cache")}
}

type cachedIngredient struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	UnitCount        int             `json:"unitCount"`
	WeightPerUnit    decimal.Decimal `json:"weightPerUnit"`
	UnitOfMeasure    string          `json:"unitOfMeasure"`
	ExpiryDate       time.Time       `json:"expiryDate"`
	MinimumThreshold int             `json:"minimumThreshold"`
	CostPrice        decimal.Decimal `json:"costPrice"`
	Category         string          `json:"category"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func key(id string) string        { return keyPrefix + id }
func versionKey(id string) string { return keyPrefix + id + ":version" }

// Insert no toca el caché.
func (c *IngredientCache) Insert(ctx context.Context, in *entity.Ingredient) (*entity.Ingredient, error) {
	return c.next.Insert(ctx, in)
}

// FindAll no se cachea: depende de filtros y paginación.
func (c *IngredientCache) FindAll(ctx context.Context, f repository.IngredientFilter) ([]*entity.Ingredient, error) {
	return c.next.FindAll(ctx, f)
}

// FindByID busca primero en Redis; en miss consulta el repositorio y guarda el resultado.
func (c *IngredientCache) FindByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		var ci cachedIngredient
		if jerr := json.Unmarshal(raw, &ci); jerr == nil {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			ing := fromCached(ci)
			return &ing, nil
		}
		c.log.Warn().Str("ingredient_id", id).Msg("entrada de caché ilegible, se descarta")
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	default:
		c.log.Warn().Err(err).Str("ingredient_id", id).Msg("redis get")
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
	}

	version, verr := c.version(ctx, c.client, id)

	ing, err := c.next.FindByID(ctx, id)
	if err != nil || ing == nil {
		return ing, err
	}
	if verr != nil {
		return ing, nil
	}
	if err := c.store(ctx, ing, version); err != nil {
		if errors.Is(err, errStaleRead) || errors.Is(err, redis.TxFailedErr) {
			c.log.Debug().Str("ingredient_id", id).Msg("escritura concurrente, no se cachea la lectura")
		} else {
			c.log.Warn().Err(err).Str("ingredient_id", id).Msg("redis set")
		}
	}
	return ing, nil
}

// version lee el contador de escrituras del id; 0 si nunca se escribió.
func (c *IngredientCache) version(ctx context.Context, cmd redis.Cmdable, id string) (int64, error) {
	v, err := cmd.Get(ctx, versionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// store guarda ing solo si el contador sigue en seen.
func (c *IngredientCache) store(ctx context.Context, ing *entity.Ingredient, seen int64) error {
	raw, err := json.Marshal(toCached(ing))
	if err != nil {
		return err
	}
	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := c.version(ctx, tx, ing.ID)
		if err != nil {
			return err
		}
		if cur != seen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key(ing.ID), raw, c.ttl)
			return nil
		})
		return err
	}, versionKey(ing.ID))
}

// UpdateByID escribe en el repositorio y luego invalida la clave.
func (c *IngredientCache) UpdateByID(ctx context.Context, id string, patch entity.IngredientPatch) (*entity.Ingredient, error) {
	ing, err := c.next.UpdateByID(ctx, id, patch)
	if err == nil && ing != nil {
		c.invalidate(ctx, id)
	}
	return ing, err
}

// DeleteByID elimina en el repositorio y luego invalida la clave.
func (c *IngredientCache) DeleteByID(ctx context.Context, id string) (bool, error) {
	ok, err := c.next.DeleteByID(ctx, id)
	if err == nil && ok {
		c.invalidate(ctx, id)
	}
	return ok, err
}

func (c *IngredientCache) invalidate(ctx context.Context, id string) {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, versionKey(id))
		p.Expire(ctx, versionKey(id), versionTTL)
		p.Del(ctx, key(id))
		return nil
	})
	if err != nil {
		c.log.Error().Err(err).Str("ingredient_id", id).Msg("no se pudo invalidar el caché")
	}
}

func toCached(i *entity.Ingredient) cachedIngredient {
	return cachedIngredient{
		ID: i.ID, Name: i.Name, UnitCount: i.UnitCount, WeightPerUnit: i.WeightPerUnit,
		UnitOfMeasure: i.UnitOfMeasure, ExpiryDate: i.ExpiryDate, MinimumThreshold: i.MinimumThreshold,
		CostPrice: i.CostPrice, Category: i.Category, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}

func fromCached(c cachedIngredient) entity.Ingredient {
	return entity.Ingredient{
		ID: c.ID, Name: c.Name, UnitCount: c.UnitCount, WeightPerUnit: c.WeightPerUnit,
		UnitOfMeasure: c.UnitOfMeasure, ExpiryDate: c.ExpiryDate, MinimumThreshold: c.MinimumThreshold,
		CostPrice: c.CostPrice, Category: c.Category, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}
