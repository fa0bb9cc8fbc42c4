package bookinglink

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, link *Link) error
	GetByID(ctx context.Context, id string) (*Link, error)
	GetBySlug(ctx context.Context, slug string) (*Link, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Link, error)
	Update(ctx context.Context, link *Link) error
	Delete(ctx context.Context, ownerID, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const linkColumns = "id, owner_id, name, slug, slot_duration_minutes, buffer_minutes, valid_from, valid_to, active, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, link *Link) error {
	query, args, err := sq.Insert("booking_links").
		Columns("id", "owner_id", "name", "slug", "slot_duration_minutes", "buffer_minutes", "valid_from", "valid_to", "active").
		Values(link.ID, link.OwnerID, link.Name, link.Slug, link.SlotDurationMinutes, link.BufferMinutes, link.ValidFrom, link.ValidTo, link.Active).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking link query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&link.CreatedAt, &link.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlugTaken
		}
		return fmt.Errorf("insert booking link: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Link, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Link, error) {
	return r.getBy(ctx, sq.Eq{"slug": slug})
}

func (r *pgxRepository) getBy(ctx context.Context, cond sq.Eq) (*Link, error) {
	query, args, err := sq.Select(linkColumns).
		From("booking_links").
		Where(cond).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select booking link query: %w", err)
	}

	var link Link
	if err := scanLink(r.pool.QueryRow(ctx, query, args...), &link); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select booking link: %w", err)
	}
	return &link, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]Link, error) {
	query, args, err := sq.Select(linkColumns).
		From("booking_links").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list booking links query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list booking links: %w", err)
	}
	defer rows.Close()

	links := make([]Link, 0)
	for rows.Next() {
		var link Link
		if err := scanLink(rows, &link); err != nil {
			return nil, fmt.Errorf("scan booking link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking links: %w", err)
	}
	return links, nil
}

func (r *pgxRepository) Update(ctx context.Context, link *Link) error {
	query, args, err := sq.Update("booking_links").
		Set("name", link.Name).
		Set("slug", link.Slug).
		Set("slot_duration_minutes", link.SlotDurationMinutes).
		Set("buffer_minutes", link.BufferMinutes).
		Set("valid_from", link.ValidFrom).
		Set("valid_to", link.ValidTo).
		Set("active", link.Active).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": link.ID, "owner_id": link.OwnerID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking link query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&link.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlugTaken
		}
		return fmt.Errorf("update booking link: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, ownerID, id string) error {
	query, args, err := sq.Delete("booking_links").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking link query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLink(row pgx.Row, link *Link) error {
	return row.Scan(
		&link.ID,
		&link.OwnerID,
		&link.Name,
		&link.Slug,
		&link.SlotDurationMinutes,
		&link.BufferMinutes,
		&link.ValidFrom,
		&link.ValidTo,
		&link.Active,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
}
