// Package stock implementa el controlador de estoque de ingredientes: autorización por perfil,
// validación del payload y orquestación del repositorio.
package stock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
	"github.com/jhoicas/confeitaria-api/pkg/metrics"
)

const (
	defaultWriteTimeout = 5 * time.Second
	maxListLimit        = 500
)

// UseCase casos de uso CRUD de ingredientes. Toda operación verifica la política antes de tocar el repositorio.
type UseCase struct {
	repo         repository.IngredientRepository
	validate     *Validator
	log          *logger.Logger
	writeTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// Option configura el UseCase.
type Option func(*UseCase)

// WithWriteTimeout tiempo máximo de una escritura en el repositorio.
func WithWriteTimeout(d time.Duration) Option {
	return func(uc *UseCase) {
		if d > 0 {
			uc.writeTimeout = d
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.IngredientRepository, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:         repo,
		validate:     NewValidator(),
		log:          log.Named("stock"),
		writeTimeout: defaultWriteTimeout,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Create valida el payload, asigna un id nuevo y persiste el ingrediente.
func (uc *UseCase) Create(ctx context.Context, actor authz.Identity, in dto.CreateIngredientRequest) (out *dto.IngredientResponse, err error) {
	defer uc.observe(authz.CapCreate, time.Now(), &err)
	if err := authz.Authorize(actor, authz.CapCreate); err != nil {
		return nil, err
	}
	in.Name = trimmed(in.Name)
	in.UnitOfMeasure = trimmed(in.UnitOfMeasure)
	in.Category = trimmed(in.Category)
	in.ExpiryDate = trimmed(in.ExpiryDate)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	expiry, err := time.Parse(entity.DateLayout, *in.ExpiryDate)
	if err != nil {
		return nil, domain.NewValidationError(domain.FieldError{Field: "expiryDate", Reason: "debe ser una fecha válida con formato AAAA-MM-DD"})
	}

	now := uc.now().UTC()
	ing := &entity.Ingredient{
		ID:               uc.newID(),
		Name:             *in.Name,
		UnitCount:        *in.UnitCount,
		WeightPerUnit:    *in.WeightPerUnit,
		UnitOfMeasure:    *in.UnitOfMeasure,
		ExpiryDate:       expiry,
		MinimumThreshold: *in.MinimumThreshold,
		CostPrice:        *in.CostPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.Category != nil {
		ing.Category = *in.Category
	}

	wctx, cancel := uc.writeContext(ctx)
	defer cancel()
	saved, err := uc.repo.Insert(wctx, ing)
	if err != nil {
		return nil, uc.repoErr("insert", ing.ID, err)
	}
	uc.log.Info().Str("ingredient_id", saved.ID).Str("user_id", actor.UserID).Msg("ingrediente creado")
	return uc.respond(saved), nil
}

// List devuelve los ingredientes en orden de creación, con filtros y paginación opcionales.
func (uc *UseCase) List(ctx context.Context, actor authz.Identity, q dto.IngredientListQuery) (out *dto.IngredientListResponse, err error) {
	defer uc.observe(authz.CapListAll, time.Now(), &err)
	if err := authz.Authorize(actor, authz.CapListAll); err != nil {
		return nil, err
	}
	f := repository.IngredientFilter{
		Category:     strings.TrimSpace(q.Category),
		Search:       entity.FoldText(q.Q),
		LowStockOnly: q.LowStock,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		return nil, uc.repoErr("find_all", "", err)
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, *uc.respond(ing))
	}
	return &dto.IngredientListResponse{
		Ingredients: items,
		Page:        dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Count: len(items)},
	}, nil
}

// LowStock lista solo los ingredientes en nivel mínimo o por debajo. Es la decisión de alerta; no notifica.
func (uc *UseCase) LowStock(ctx context.Context, actor authz.Identity) (*dto.IngredientListResponse, error) {
	return uc.List(ctx, actor, dto.IngredientListQuery{LowStock: true})
}

// GetByID obtiene un ingrediente por id. ErrNotFound si no existe.
func (uc *UseCase) GetByID(ctx context.Context, actor authz.Identity, id string) (out *dto.IngredientResponse, err error) {
	defer uc.observe(authz.CapReadOne, time.Now(), &err)
	if err := authz.Authorize(actor, authz.CapReadOne); err != nil {
		return nil, err
	}
	ing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.repoErr("find_by_id", id, err)
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return uc.respond(ing), nil
}

// Update aplica solo los campos informados, validados con las mismas reglas de Create. El id nunca cambia.
func (uc *UseCase) Update(ctx context.Context, actor authz.Identity, id string, in dto.UpdateIngredientRequest) (out *dto.IngredientResponse, err error) {
	defer uc.observe(authz.CapUpdate, time.Now(), &err)
	if err := authz.Authorize(actor, authz.CapUpdate); err != nil {
		return nil, err
	}
	patch, err := uc.buildPatch(in)
	if err != nil {
		return nil, err
	}

	wctx, cancel := uc.writeContext(ctx)
	defer cancel()
	updated, err := uc.repo.UpdateByID(wctx, id, patch)
	if err != nil {
		return nil, uc.repoErr("update_by_id", id, err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	uc.log.Info().Str("ingredient_id", id).Str("user_id", actor.UserID).Msg("ingrediente actualizado")
	return uc.respond(updated), nil
}

// Delete elimina el ingrediente (borrado físico). ErrNotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, actor authz.Identity, id string) (err error) {
	defer uc.observe(authz.CapDelete, time.Now(), &err)
	if err := authz.Authorize(actor, authz.CapDelete); err != nil {
		return err
	}
	wctx, cancel := uc.writeContext(ctx)
	defer cancel()
	deleted, err := uc.repo.DeleteByID(wctx, id)
	if err != nil {
		return uc.repoErr("delete_by_id", id, err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	uc.log.Info().Str("ingredient_id", id).Str("user_id", actor.UserID).Msg("ingrediente eliminado")
	return nil
}

func (uc *UseCase) buildPatch(in dto.UpdateIngredientRequest) (entity.IngredientPatch, error) {
	in.Name = trimmed(in.Name)
	in.UnitOfMeasure = trimmed(in.UnitOfMeasure)
	in.Category = trimmed(in.Category)
	in.ExpiryDate = trimmed(in.ExpiryDate)
	if err := uc.validate.Struct(in); err != nil {
		return entity.IngredientPatch{}, err
	}
	patch := entity.IngredientPatch{
		Name:             in.Name,
		UnitCount:        in.UnitCount,
		WeightPerUnit:    in.WeightPerUnit,
		UnitOfMeasure:    in.UnitOfMeasure,
		MinimumThreshold: in.MinimumThreshold,
		CostPrice:        in.CostPrice,
		Category:         in.Category,
	}
	if in.ExpiryDate != nil {
		d, err := time.Parse(entity.DateLayout, *in.ExpiryDate)
		if err != nil {
			return entity.IngredientPatch{}, domain.NewValidationError(domain.FieldError{Field: "expiryDate", Reason: "debe ser una fecha válida con formato AAAA-MM-DD"})
		}
		patch.ExpiryDate = &d
	}
	if patch.Empty() {
		return entity.IngredientPatch{}, domain.NewValidationError(domain.FieldError{Field: "body", Reason: "no hay campos para actualizar"})
	}
	return patch, nil
}

// writeContext desacopla la escritura de la cancelación del cliente; el límite es writeTimeout.
func (uc *UseCase) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), uc.writeTimeout)
}

func (uc *UseCase) repoErr(op, id string, err error) error {
	uc.log.Error().Err(err).Str("op", op).Str("ingredient_id", id).Msg("fallo del repositorio de ingredientes")
	return &domain.RepositoryError{Op: op, Err: err}
}

func (uc *UseCase) respond(ing *entity.Ingredient) *dto.IngredientResponse {
	out := ToIngredientResponse(ing)
	if out.IsLowStock {
		metrics.LowStockReadsTotal.Inc()
	}
	return out
}

func (uc *UseCase) observe(op authz.Capability, start time.Time, errp *error) {
	metrics.StockOperationDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	metrics.StockOperationsTotal.WithLabelValues(string(op), outcome(*errp)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeRepository
	}
}

// ToIngredientResponse mapea la entidad al DTO, recalculando IsLowStock.
func ToIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	if ing == nil {
		return nil
	}
	return &dto.IngredientResponse{
		ID:               ing.ID,
		Name:             ing.Name,
		UnitCount:        ing.UnitCount,
		WeightPerUnit:    ing.WeightPerUnit,
		UnitOfMeasure:    ing.UnitOfMeasure,
		ExpiryDate:       ing.ExpiryDate.Format(entity.DateLayout),
		MinimumThreshold: ing.MinimumThreshold,
		CostPrice:        ing.CostPrice,
		Category:         ing.Category,
		IsLowStock:       ing.IsLowStock(),
		CreatedAt:        ing.CreatedAt,
		UpdatedAt:        ing.UpdatedAt,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
