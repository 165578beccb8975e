package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// DB lo que necesita el repositorio: consultas sueltas y transacciones.
type DB interface {
	Querier
	TxBeginner
}

// errIngredientGone sale del closure de UpdateByID para que la tx haga rollback en vez de commit.
var errIngredientGone = errors.New("ingredient not found")

const ingredientColumns = `id, name, unit_count, weight_per_unit, unit_of_measure, expiry_date,
	minimum_threshold, cost_price, category, created_at, updated_at`

// IngredientRepo implementación del puerto IngredientRepository sobre PostgreSQL.
type IngredientRepo struct {
	db DB
}

// NewIngredientRepository construye el adaptador de persistencia para ingredientes. Pasar pool.
func NewIngredientRepository(db DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

// Insert persiste un nuevo ingrediente. search_key se calcula aquí a partir de nombre y categoría.
func (r *IngredientRepo) Insert(ctx context.Context, in *entity.Ingredient) (*entity.Ingredient, error) {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `, search_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		in.ID, in.Name, in.UnitCount, in.WeightPerUnit, in.UnitOfMeasure, in.ExpiryDate,
		in.MinimumThreshold, in.CostPrice, in.Category, in.CreatedAt, in.UpdatedAt, in.SearchKey(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}
	out := *in
	return &out, nil
}

// FindAll lista ingredientes en orden de creación. Limit 0 devuelve todos.
func (r *IngredientRepo) FindAll(ctx context.Context, f repository.IngredientFilter) ([]*entity.Ingredient, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		where = append(where, fmt.Sprintf("search_key LIKE $%d", len(args)))
	}
	if f.LowStockOnly {
		where = append(where, "unit_count <= minimum_threshold")
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + ingredientColumns + " FROM ingredients")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY created_at, id")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// FindByID obtiene un ingrediente por ID. (nil, nil) si no existe.
func (r *IngredientRepo) FindByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	ing, err := scanIngredient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// UpdateByID aplica el patch bajo SELECT ... FOR UPDATE y devuelve el registro resultante.
// (nil, nil) si no existe. Dos actualizaciones concurrentes se serializan: gana la última.
func (r *IngredientRepo) UpdateByID(ctx context.Context, id string, patch entity.IngredientPatch) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	err := runInTx(ctx, r.db, func(tx pgx.Tx) error {
		cur, err := scanIngredient(tx.QueryRow(ctx,
			`SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
				// 22P02 deja la tx abortada: un Commit respondería ErrTxCommitRollback.
				return errIngredientGone
			}
			return fmt.Errorf("lock ingredient: %w", err)
		}

		next := patch.Apply(*cur)
		err = tx.QueryRow(ctx, `
			UPDATE ingredients SET name = $2, unit_count = $3, weight_per_unit = $4, unit_of_measure = $5,
				expiry_date = $6, minimum_threshold = $7, cost_price = $8, category = $9, search_key = $10,
				updated_at = now()
			WHERE id = $1
			RETURNING updated_at`,
			id, next.Name, next.UnitCount, next.WeightPerUnit, next.UnitOfMeasure, next.ExpiryDate,
			next.MinimumThreshold, next.CostPrice, next.Category, next.SearchKey(),
		).Scan(&next.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update ingredient: %w", err)
		}
		out = &next
		return nil
	})
	if errors.Is(err, errIngredientGone) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID elimina un ingrediente. false si no existía.
func (r *IngredientRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete ingredient: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	if err := row.Scan(&i.ID, &i.Name, &i.UnitCount, &i.WeightPerUnit, &i.UnitOfMeasure, &i.ExpiryDate,
		&i.MinimumThreshold, &i.CostPrice, &i.Category, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// escapeLike escapa los comodines de LIKE (\ es el escape por defecto en PostgreSQL).
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
