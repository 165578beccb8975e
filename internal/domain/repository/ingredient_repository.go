package repository

import (
	"context"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// IngredientFilter filtros opcionales del listado. Limit 0 = sin límite.
type IngredientFilter struct {
	Category     string // comparación exacta
	Search       string // ya normalizado con entity.FoldText
	LowStockOnly bool
	Limit        int
	Offset       int
}

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// Un registro ausente se indica con (nil, nil) o (false, nil); cualquier error es un fallo de infraestructura.
type IngredientRepository interface {
	Insert(ctx context.Context, in *entity.Ingredient) (*entity.Ingredient, error)
	FindAll(ctx context.Context, f IngredientFilter) ([]*entity.Ingredient, error)
	FindByID(ctx context.Context, id string) (*entity.Ingredient, error)
	UpdateByID(ctx context.Context, id string, patch entity.IngredientPatch) (*entity.Ingredient, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
