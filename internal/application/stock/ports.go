package stock

import (
	"context"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// RestockReportGenerator genera el documento de reposición a partir de los ingredientes en estoque bajo.
type RestockReportGenerator interface {
	GenerateRestockReport(ctx context.Context, items []*entity.Ingredient, generatedAt time.Time) ([]byte, error)
}
