package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

func TestIngredient_IsLowStock(t *testing.T) {
	in := entity.Ingredient{UnitCount: 10, MinimumThreshold: 5}
	assert.False(t, in.IsLowStock())

	in.UnitCount = 5
	assert.True(t, in.IsLowStock(), "igual al mínimo cuenta como estoque bajo")

	in.UnitCount = 0
	in.MinimumThreshold = 0
	assert.True(t, in.IsLowStock())
}

func TestIngredientPatch_Apply_SoloCamposInformados(t *testing.T) {
	base := entity.Ingredient{
		ID:               "id-1",
		Name:             "Farinha de Trigo",
		UnitCount:        10,
		WeightPerUnit:    decimal.NewFromInt(1),
		UnitOfMeasure:    "kg",
		ExpiryDate:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		MinimumThreshold: 5,
		CostPrice:        decimal.RequireFromString("2.5"),
		Category:         "Grãos",
	}
	price := decimal.RequireFromString("3.0")
	count := 2

	got := entity.IngredientPatch{CostPrice: &price, UnitCount: &count}.Apply(base)

	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Farinha de Trigo", got.Name)
	assert.Equal(t, 2, got.UnitCount)
	assert.True(t, got.CostPrice.Equal(price))
	assert.Equal(t, "kg", got.UnitOfMeasure)
	assert.Equal(t, 10, base.UnitCount, "el original no se modifica")
}

func TestIngredientPatch_Empty(t *testing.T) {
	assert.True(t, entity.IngredientPatch{}.Empty())
	cat := ""
	assert.False(t, entity.IngredientPatch{Category: &cat}.Empty())
}

func TestFoldText(t *testing.T) {
	assert.Equal(t, "graos integrais", entity.FoldText("  Grãos   Integrais "))
	assert.Equal(t, "acucar confeiteiro", entity.FoldText("Açúcar Confeiteiro"))

	in := entity.Ingredient{Name: "Farinha de Trigo", Category: "Grãos"}
	assert.Equal(t, "farinha de trigo graos", in.SearchKey())
}
