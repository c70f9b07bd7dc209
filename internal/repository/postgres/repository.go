package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewComponentRepository is the transactional alternative to the CSV store.
func NewComponentRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Load(ctx context.Context) ([]model.Record, error) {
	sqlStr, args, err := r.sb.
		Select(columns...).
		From(table).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreRead, err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreRead, err)
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var e componentEntity
		if err := rows.Scan(e.scanTargets()...); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrStoreRead, err)
		}

		rec, err := entityToModel(e)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreRead, err)
	}

	return records, nil
}

// Save replaces the stored set in one transaction. A row whose stored
// version is newer than the incoming one aborts the save with ErrConflict.
// Rows absent from records are deleted, so Save is for seeding and bulk
// import only; concurrent writers go through ApplyMutation.
func (r *repository) Save(ctx context.Context, records []model.Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.deleteMissing(ctx, tx, records); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	for i, rec := range records {
		if err := r.upsert(ctx, tx, modelToEntity(rec, i)); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}
	return nil
}

func (r *repository) deleteMissing(ctx context.Context, tx pgx.Tx, records []model.Record) error {
	ids := make([]uuid.UUID, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}

	q := r.sb.Delete(table)
	if len(ids) > 0 {
		q = q.Where(sq.NotEq{"id": ids})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sqlStr, args...)
	return err
}

func (r *repository) upsert(ctx context.Context, tx pgx.Tx, e componentEntity) error {
	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns(columns...).
		Values(e.values()...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ") +
			" WHERE " + table + ".version <= EXCLUDED.version").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	ct, err := tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: component %s was changed by another writer", model.ErrConflict, e.ID)
	}
	return nil
}

const uniqueViolation = "23505"

// ApplyMutation writes a single change and leaves every other row alone.
// Replace and delete only match the version the change was computed from,
// so a row another writer changed or removed yields ErrConflict.
func (r *repository) ApplyMutation(ctx context.Context, mut model.Mutation) error {
	switch mut.Kind {
	case model.MutationInsert:
		return r.insert(ctx, mut.Record)
	case model.MutationReplace:
		return r.update(ctx, mut.Record, mut.Record.Version-1)
	case model.MutationDelete:
		return r.delete(ctx, mut.Record)
	default:
		return fmt.Errorf("%w: unknown mutation kind %q", model.ErrStoreWrite, mut.Kind)
	}
}

func (r *repository) insert(ctx context.Context, rec model.Record) error {
	e := modelToEntity(rec, 0)
	values := e.values()
	values[1] = sq.Expr("(SELECT COALESCE(MAX(position), -1) + 1 FROM " + table + ")")

	sqlStr, args, err := r.sb.
		Insert(table).
		Columns(columns...).
		Values(values...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: component %s already exists", model.ErrConflict, rec.ID)
		}
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}
	return nil
}

func (r *repository) update(ctx context.Context, rec model.Record, base int64) error {
	e := modelToEntity(rec, 0)
	values := e.values()

	set := make(map[string]any, len(columns)-2)
	for i, c := range columns {
		if c == "id" || c == "position" {
			continue
		}
		set[c] = values[i]
	}

	sqlStr, args, err := r.sb.
		Update(table).
		SetMap(set).
		Where(sq.Eq{"id": rec.ID, "version": base}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	return r.execOne(ctx, rec.ID, sqlStr, args)
}

func (r *repository) delete(ctx context.Context, rec model.Record) error {
	sqlStr, args, err := r.sb.
		Delete(table).
		Where(sq.Eq{"id": rec.ID, "version": rec.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	return r.execOne(ctx, rec.ID, sqlStr, args)
}

func (r *repository) execOne(ctx context.Context, id uuid.UUID, sqlStr string, args []any) error {
	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: component %s was changed or removed by another writer", model.ErrConflict, id)
	}
	return nil
}
