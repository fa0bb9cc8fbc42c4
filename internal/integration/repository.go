package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/busy"
)

type Repository interface {
	busy.SnapshotSource

	Create(ctx context.Context, integ *CalendarIntegration) error
	GetByID(ctx context.Context, id string) (*CalendarIntegration, error)
	ListByOwner(ctx context.Context, ownerID string) ([]CalendarIntegration, error)
	ListConnected(ctx context.Context) ([]CalendarIntegration, error)
	UpdateToken(ctx context.Context, id string, token *oauth2.Token) error
	SetConnected(ctx context.Context, id string, connected bool) error
	Delete(ctx context.Context, ownerID, id string) error

	// ReplaceSnapshot swaps the integration's cached busy intervals in
	// one transaction and stamps last_synced_at.
	ReplaceSnapshot(ctx context.Context, id string, intervals []busy.Interval, syncedAt time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const integrationColumns = "id, owner_id, provider, connected, token, last_synced_at, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, integ *CalendarIntegration) error {
	token, err := json.Marshal(integ.Token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	query, args, err := sq.Insert("calendar_integrations").
		Columns("id", "owner_id", "provider", "connected", "token").
		Values(integ.ID, integ.OwnerID, integ.Provider, integ.Connected, token).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert integration query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&integ.CreatedAt, &integ.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert integration: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*CalendarIntegration, error) {
	query, args, err := sq.Select(integrationColumns).
		From("calendar_integrations").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select integration query: %w", err)
	}

	var integ CalendarIntegration
	if err := scanIntegration(r.pool.QueryRow(ctx, query, args...), &integ); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select integration: %w", err)
	}
	return &integ, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]CalendarIntegration, error) {
	return r.list(ctx, sq.Eq{"owner_id": ownerID})
}

func (r *pgxRepository) ListConnected(ctx context.Context) ([]CalendarIntegration, error) {
	return r.list(ctx, sq.Eq{"connected": true})
}

func (r *pgxRepository) list(ctx context.Context, cond sq.Eq) ([]CalendarIntegration, error) {
	query, args, err := sq.Select(integrationColumns).
		From("calendar_integrations").
		Where(cond).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list integrations query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	integrations := make([]CalendarIntegration, 0)
	for rows.Next() {
		var integ CalendarIntegration
		if err := scanIntegration(rows, &integ); err != nil {
			return nil, fmt.Errorf("scan integration: %w", err)
		}
		integrations = append(integrations, integ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate integrations: %w", err)
	}
	return integrations, nil
}

func (r *pgxRepository) UpdateToken(ctx context.Context, id string, token *oauth2.Token) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	return r.update(ctx, id, sq.Update("calendar_integrations").Set("token", raw))
}

func (r *pgxRepository) SetConnected(ctx context.Context, id string, connected bool) error {
	return r.update(ctx, id, sq.Update("calendar_integrations").Set("connected", connected))
}

func (r *pgxRepository) update(ctx context.Context, id string, builder sq.UpdateBuilder) error {
	query, args, err := builder.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update integration query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update integration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, ownerID, id string) error {
	query, args, err := sq.Delete("calendar_integrations").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete integration query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ReplaceSnapshot(ctx context.Context, id string, intervals []busy.Interval, syncedAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery, deleteArgs, err := sq.Delete("integration_busy_snapshots").
		Where(sq.Eq{"integration_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete snapshot query: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete snapshot intervals: %w", err)
	}

	if len(intervals) > 0 {
		insert := sq.Insert("integration_busy_snapshots").
			Columns("integration_id", "start_utc", "end_utc")
		for _, iv := range intervals {
			insert = insert.Values(id, iv.Start, iv.End)
		}
		insertQuery, insertArgs, err := insert.PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("build insert snapshot query: %w", err)
		}
		if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert snapshot intervals: %w", err)
		}
	}

	stampQuery, stampArgs, err := sq.Update("calendar_integrations").
		Set("last_synced_at", syncedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build stamp sync time query: %w", err)
	}
	if _, err := tx.Exec(ctx, stampQuery, stampArgs...); err != nil {
		return fmt.Errorf("stamp sync time: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace snapshot tx: %w", err)
	}
	return nil
}

// Snapshots implements busy.SnapshotSource for the aggregator.
func (r *pgxRepository) Snapshots(ctx context.Context, ownerID string) ([]busy.Snapshot, error) {
	query, args, err := sq.Select("i.id", "i.connected", "i.last_synced_at", "s.start_utc", "s.end_utc").
		From("calendar_integrations i").
		LeftJoin("integration_busy_snapshots s ON s.integration_id = i.id").
		Where(sq.Eq{"i.owner_id": ownerID}).
		OrderBy("i.id", "s.start_utc").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshots query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []busy.Snapshot
	index := make(map[string]int)
	for rows.Next() {
		var (
			integrationID string
			connected     bool
			syncedAt      *time.Time
			start, end    *time.Time
		)
		if err := rows.Scan(&integrationID, &connected, &syncedAt, &start, &end); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		i, ok := index[integrationID]
		if !ok {
			snap := busy.Snapshot{IntegrationID: integrationID, Connected: connected}
			if syncedAt != nil {
				snap.SyncedAt = *syncedAt
			}
			snaps = append(snaps, snap)
			i = len(snaps) - 1
			index[integrationID] = i
		}
		if start != nil && end != nil {
			snaps[i].Intervals = append(snaps[i].Intervals, busy.Interval{
				Start:  *start,
				End:    *end,
				Source: busy.Source(integrationID),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}
	return snaps, nil
}

func scanIntegration(row pgx.Row, integ *CalendarIntegration) error {
	var token []byte
	if err := row.Scan(
		&integ.ID,
		&integ.OwnerID,
		&integ.Provider,
		&integ.Connected,
		&token,
		&integ.LastSyncedAt,
		&integ.CreatedAt,
		&integ.UpdatedAt,
	); err != nil {
		return err
	}
	if len(token) > 0 {
		if err := json.Unmarshal(token, &integ.Token); err != nil {
			return fmt.Errorf("unmarshal token: %w", err)
		}
	}
	return nil
}
