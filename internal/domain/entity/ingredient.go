package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de validade (solo día).
const DateLayout = time.DateOnly

// Ingredient insumo del estoque de la confeitaria.
// El estado de estoque bajo no se guarda: se deriva en cada lectura con IsLowStock.
type Ingredient struct {
	ID               string
	Name             string
	UnitCount        int             // unidades en estoque
	WeightPerUnit    decimal.Decimal // peso o volumen de cada unidad (> 0)
	UnitOfMeasure    string          // kg, g, l, ml, un...
	ExpiryDate       time.Time       // validade; se aceptan fechas pasadas (correcciones)
	MinimumThreshold int             // nivel mínimo
	CostPrice        decimal.Decimal // precio de costo; 0 = aún sin precio
	Category         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si UnitCount está en el nivel mínimo o por debajo.
func (i *Ingredient) IsLowStock() bool {
	return i.UnitCount <= i.MinimumThreshold
}

// SearchKey clave normalizada de búsqueda (nombre + categoría).
func (i *Ingredient) SearchKey() string {
	return FoldText(i.Name + " " + i.Category)
}

// IngredientPatch campos a sobrescribir en una actualización parcial. nil = no tocar.
// No tiene ID: la identidad nunca se modifica.
type IngredientPatch struct {
	Name             *string
	UnitCount        *int
	WeightPerUnit    *decimal.Decimal
	UnitOfMeasure    *string
	ExpiryDate       *time.Time
	MinimumThreshold *int
	CostPrice        *decimal.Decimal
	Category         *string
}

// Empty indica si el patch no trae ningún campo.
func (p IngredientPatch) Empty() bool {
	return p.Name == nil && p.UnitCount == nil && p.WeightPerUnit == nil && p.UnitOfMeasure == nil &&
		p.ExpiryDate == nil && p.MinimumThreshold == nil && p.CostPrice == nil && p.Category == nil
}

// Apply devuelve una copia del ingrediente con los campos del patch aplicados.
func (p IngredientPatch) Apply(in Ingredient) Ingredient {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.UnitCount != nil {
		in.UnitCount = *p.UnitCount
	}
	if p.WeightPerUnit != nil {
		in.WeightPerUnit = *p.WeightPerUnit
	}
	if p.UnitOfMeasure != nil {
		in.UnitOfMeasure = *p.UnitOfMeasure
	}
	if p.ExpiryDate != nil {
		in.ExpiryDate = *p.ExpiryDate
	}
	if p.MinimumThreshold != nil {
		in.MinimumThreshold = *p.MinimumThreshold
	}
	if p.CostPrice != nil {
		in.CostPrice = *p.CostPrice
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	return in
}
