package owner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id string) (*Owner, error)
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	Update(ctx context.Context, o *Owner) error

	GetWorkingHours(ctx context.Context, ownerID string) (WeeklyHours, error)
	ReplaceWorkingHours(ctx context.Context, ownerID string, hours WeeklyHours) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, o *Owner) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.owners").
		Columns("email", "password_hash", "display_name", "timezone").
		Values(o.Email, o.PasswordHash, o.DisplayName, o.Timezone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create owner query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("create owner failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Owner, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Owner, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Owner, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "email", "password_hash", "display_name", "timezone", "created_at", "updated_at",
	).
		From("public.owners").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get owner query failed: %w", err)
	}

	var o Owner
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&o.ID, &o.Email, &o.PasswordHash, &o.DisplayName, &o.Timezone, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get owner failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Owner) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.owners").
		Set("display_name", o.DisplayName).
		Set("timezone", o.Timezone).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update owner query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update owner failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetWorkingHours(ctx context.Context, ownerID string) (WeeklyHours, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("weekday", "enabled", "start_time", "end_time").
		From("public.working_hours").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return WeeklyHours{}, fmt.Errorf("build get working hours query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return WeeklyHours{}, fmt.Errorf("get working hours failed: %w", err)
	}
	defer rows.Close()

	// Missing rows stay disabled so a fresh owner yields no slots.
	var hours WeeklyHours
	for i := range hours {
		hours[i].Weekday = time.Weekday(i)
	}

	for rows.Next() {
		var weekday int
		var day DayHours
		if err := rows.Scan(&weekday, &day.Enabled, &day.Start, &day.End); err != nil {
			return WeeklyHours{}, fmt.Errorf("scan working hours failed: %w", err)
		}
		if weekday < 0 || weekday > 6 {
			continue
		}
		day.Weekday = time.Weekday(weekday)
		hours[weekday] = day
	}

	return hours, rows.Err()
}

func (r *pgxRepository) ReplaceWorkingHours(ctx context.Context, ownerID string, hours WeeklyHours) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace working hours failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("public.working_hours").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete working hours query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete working hours failed: %w", err)
	}

	insert := psql.Insert("public.working_hours").
		Columns("owner_id", "weekday", "enabled", "start_time", "end_time")
	for _, day := range hours {
		insert = insert.Values(ownerID, int(day.Weekday), day.Enabled, day.Start, day.End)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert working hours query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert working hours failed: %w", err)
	}

	return tx.Commit(ctx)
}
