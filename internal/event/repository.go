package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, ownerID, id string) (*Event, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, ownerID, id string) error

	// CreateReserved inserts a booking-created event while holding a
	// per-owner advisory lock and re-checking overlap inside the same
	// transaction. Returns ErrTimeConflict if the range is taken.
	CreateReserved(ctx context.Context, e *Event) error

	// BusyIntervals serves the aggregator with the owner's local busy set.
	BusyIntervals(ctx context.Context, ownerID string, from, to time.Time) ([]busy.Interval, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const eventColumns = "id, owner_id, title, start_utc, end_utc, display_timezone, " +
	"provider, provider_event_id, recurrence, reminder_offsets, " +
	"visitor_name, visitor_email, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, e *Event) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.events").
		Columns("owner_id", "title", "start_utc", "end_utc", "display_timezone",
			"provider", "provider_event_id", "recurrence", "reminder_offsets",
			"visitor_name", "visitor_email").
		Values(e.OwnerID, e.Title, e.StartUTC, e.EndUTC, e.DisplayTimezone,
			e.Provider, e.ProviderEventID, e.Recurrence, e.ReminderOffsets,
			e.VisitorName, e.VisitorEmail).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create event query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create event failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CreateReserved(ctx context.Context, e *Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize same-owner commits across processes; different owners hash
	// to different locks and proceed in parallel.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", e.OwnerID); err != nil {
		return fmt.Errorf("acquire owner lock failed: %w", err)
	}

	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public.events
			WHERE owner_id = $1 AND start_utc < $3 AND end_utc > $2
		)`,
		e.OwnerID, e.StartUTC, e.EndUTC,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("reserve overlap check failed: %w", err)
	}
	if taken {
		return ErrTimeConflict
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.events").
		Columns("owner_id", "title", "start_utc", "end_utc", "display_timezone",
			"provider", "provider_event_id", "recurrence", "reminder_offsets",
			"visitor_name", "visitor_email").
		Values(e.OwnerID, e.Title, e.StartUTC, e.EndUTC, e.DisplayTimezone,
			e.Provider, e.ProviderEventID, e.Recurrence, e.ReminderOffsets,
			e.VisitorName, e.VisitorEmail).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build reserve insert query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("reserve insert failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, ownerID, id string) (*Event, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(eventColumns).
		From("public.events").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event query failed: %w", err)
	}

	e, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) List(ctx context.Context, ownerID string, filter Filter) ([]*Event, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(eventColumns, "count(*) OVER() as total_count").
		From("public.events").
		Where(squirrel.Eq{"owner_id": ownerID})

	// Date range filtering (intersection logic)
	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.Gt{"end_utc": filter.From})
	}
	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.Lt{"start_utc": filter.To})
	}

	queryBuilder = queryBuilder.OrderBy("start_utc ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list events query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	var total int

	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.Title, &e.StartUTC, &e.EndUTC, &e.DisplayTimezone,
			&e.Provider, &e.ProviderEventID, &e.Recurrence, &e.ReminderOffsets,
			&e.VisitorName, &e.VisitorEmail, &e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event failed: %w", err)
		}
		events = append(events, &e)
	}

	return events, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, e *Event) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.events").
		Set("title", e.Title).
		Set("start_utc", e.StartUTC).
		Set("end_utc", e.EndUTC).
		Set("display_timezone", e.DisplayTimezone).
		Set("reminder_offsets", e.ReminderOffsets).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID, "owner_id": e.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update event query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, ownerID, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.events").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete event query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete event failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) BusyIntervals(ctx context.Context, ownerID string, from, to time.Time) ([]busy.Interval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("start_utc", "end_utc").
		From("public.events").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Lt{"start_utc": to}).
		Where(squirrel.Gt{"end_utc": from}).
		OrderBy("start_utc ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build busy intervals query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query busy intervals failed: %w", err)
	}
	defer rows.Close()

	var intervals []busy.Interval
	for rows.Next() {
		iv := busy.Interval{Source: busy.SourceLocal}
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("scan busy interval failed: %w", err)
		}
		intervals = append(intervals, iv)
	}

	return intervals, rows.Err()
}

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.StartUTC, &e.EndUTC, &e.DisplayTimezone,
		&e.Provider, &e.ProviderEventID, &e.Recurrence, &e.ReminderOffsets,
		&e.VisitorName, &e.VisitorEmail, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
