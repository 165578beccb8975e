package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// ReportUseCase arma el reporte PDF de reposición (ingredientes con unitCount <= minimumThreshold).
type ReportUseCase struct {
	repo      repository.IngredientRepository
	generator RestockReportGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(repo repository.IngredientRepository, gen RestockReportGenerator, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, generator: gen, log: log.Named("stock-report"), now: time.Now}
}

// RestockPDF devuelve el PDF. Requiere la capacidad listAll.
func (uc *ReportUseCase) RestockPDF(ctx context.Context, actor authz.Identity) ([]byte, error) {
	if err := authz.Authorize(actor, authz.CapListAll); err != nil {
		return nil, err
	}
	items, err := uc.repo.FindAll(ctx, repository.IngredientFilter{LowStockOnly: true})
	if err != nil {
		uc.log.Error().Err(err).Str("op", "find_all").Msg("fallo del repositorio de ingredientes")
		return nil, &domain.RepositoryError{Op: "find_all", Err: err}
	}
	low := make([]*entity.Ingredient, 0, len(items))
	for _, it := range items {
		if it.IsLowStock() {
			low = append(low, it)
		}
	}
	pdf, err := uc.generator.GenerateRestockReport(ctx, low, uc.now())
	if err != nil {
		return nil, fmt.Errorf("reporte de reposición: %w", err)
	}
	return pdf, nil
}
