package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Montos como número JSON (3.0 -> 3), no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Mensajes de éxito del contrato HTTP de estoque.
const (
	MsgIngredientCreated = "Ingrediente adicionado com sucesso!"
	MsgIngredientDeleted = "Produto excluído com sucesso!"
)

// CreateIngredientRequest body de POST /api/stock. Punteros para distinguir "ausente" de cero.
type CreateIngredientRequest struct {
	Name             *string          `json:"name" validate:"required,notblank,max=120"`
	UnitCount        *int             `json:"unitCount" validate:"required,gte=0,lte=2147483647"`
	WeightPerUnit    *decimal.Decimal `json:"weightPerUnit" validate:"required,gt=0"`
	UnitOfMeasure    *string          `json:"unitOfMeasure" validate:"required,notblank,max=20"`
	ExpiryDate       *string          `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	MinimumThreshold *int             `json:"minimumThreshold" validate:"required,gte=0,lte=2147483647"`
	CostPrice        *decimal.Decimal `json:"costPrice" validate:"required,gte=0"`
	Category         *string          `json:"category" validate:"omitempty,max=60"`
}

// UpdateIngredientRequest body de PUT /api/stock/ingredient/:id. Solo se aplican los campos presentes;
// un "id" en el body se ignora.
type UpdateIngredientRequest struct {
	Name             *string          `json:"name" validate:"omitempty,notblank,max=120"`
	UnitCount        *int             `json:"unitCount" validate:"omitempty,gte=0,lte=2147483647"`
	WeightPerUnit    *decimal.Decimal `json:"weightPerUnit" validate:"omitempty,gt=0"`
	UnitOfMeasure    *string          `json:"unitOfMeasure" validate:"omitempty,notblank,max=20"`
	ExpiryDate       *string          `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	MinimumThreshold *int             `json:"minimumThreshold" validate:"omitempty,gte=0,lte=2147483647"`
	CostPrice        *decimal.Decimal `json:"costPrice" validate:"omitempty,gte=0"`
	Category         *string          `json:"category" validate:"omitempty,max=60"`
}

// IngredientListQuery parámetros de GET /api/stock. Limit 0 = todos.
type IngredientListQuery struct {
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
	Category string `query:"category"`
	Q        string `query:"q"`
	LowStock bool   `query:"lowStock"`
}

// IngredientResponse salida de un ingrediente. IsLowStock se calcula en cada lectura.
type IngredientResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	UnitCount        int             `json:"unitCount"`
	WeightPerUnit    decimal.Decimal `json:"weightPerUnit"`
	UnitOfMeasure    string          `json:"unitOfMeasure"`
	ExpiryDate       string          `json:"expiryDate"`
	MinimumThreshold int             `json:"minimumThreshold"`
	CostPrice        decimal.Decimal `json:"costPrice"`
	Category         string          `json:"category"`
	IsLowStock       bool            `json:"isLowStock"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// IngredientCreatedResponse respuesta 201 de POST /api/stock.
type IngredientCreatedResponse struct {
	Msg        string             `json:"msg"`
	Ingredient IngredientResponse `json:"ingredient"`
}

// IngredientListResponse respuesta de GET /api/stock.
type IngredientListResponse struct {
	Ingredients []IngredientResponse `json:"ingredients"`
	Page        PageResponse         `json:"page"`
}

// IngredientDetailResponse respuesta de GET /api/stock/ingredient/:id.
type IngredientDetailResponse struct {
	Product IngredientResponse `json:"product"`
}

// IngredientUpdatedResponse respuesta de PUT /api/stock/ingredient/:id.
type IngredientUpdatedResponse struct {
	Ingredient IngredientResponse `json:"ingredient"`
}

// MessageResponse respuesta con solo mensaje (DELETE).
type MessageResponse struct {
	Msg string `json:"msg"`
}
