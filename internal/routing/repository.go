package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, form *Form) error
	GetByID(ctx context.Context, id string) (*Form, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Form, error)
	Update(ctx context.Context, form *Form) error
	Delete(ctx context.Context, ownerID, id string) error
}

// Questions, rules, and the default action live in jsonb columns. Forms
// are small and always read whole, so relational decomposition buys
// nothing here.
type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const formColumns = "id, owner_id, name, questions, rules, default_action, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, form *Form) error {
	questions, rules, defaultAction, err := marshalForm(form)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("routing_forms").
		Columns("id", "owner_id", "name", "questions", "rules", "default_action").
		Values(form.ID, form.OwnerID, form.Name, questions, rules, defaultAction).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert routing form query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&form.CreatedAt, &form.UpdatedAt); err != nil {
		return fmt.Errorf("insert routing form: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Form, error) {
	query, args, err := sq.Select(formColumns).
		From("routing_forms").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select routing form query: %w", err)
	}

	var form Form
	if err := scanForm(r.pool.QueryRow(ctx, query, args...), &form); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select routing form: %w", err)
	}
	return &form, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]Form, error) {
	query, args, err := sq.Select(formColumns).
		From("routing_forms").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list routing forms query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list routing forms: %w", err)
	}
	defer rows.Close()

	forms := make([]Form, 0)
	for rows.Next() {
		var form Form
		if err := scanForm(rows, &form); err != nil {
			return nil, fmt.Errorf("scan routing form: %w", err)
		}
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routing forms: %w", err)
	}
	return forms, nil
}

func (r *pgxRepository) Update(ctx context.Context, form *Form) error {
	questions, rules, defaultAction, err := marshalForm(form)
	if err != nil {
		return err
	}

	query, args, err := sq.Update("routing_forms").
		Set("name", form.Name).
		Set("questions", questions).
		Set("rules", rules).
		Set("default_action", defaultAction).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": form.ID, "owner_id": form.OwnerID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update routing form query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&form.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update routing form: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, ownerID, id string) error {
	query, args, err := sq.Delete("routing_forms").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete routing form query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete routing form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalForm(form *Form) (questions, rules, defaultAction []byte, err error) {
	if questions, err = json.Marshal(form.Questions); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal questions: %w", err)
	}
	if rules, err = json.Marshal(form.Rules); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal rules: %w", err)
	}
	if defaultAction, err = json.Marshal(form.DefaultAction); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal default action: %w", err)
	}
	return questions, rules, defaultAction, nil
}

func scanForm(row pgx.Row, form *Form) error {
	var questions, rules, defaultAction []byte
	if err := row.Scan(
		&form.ID,
		&form.OwnerID,
		&form.Name,
		&questions,
		&rules,
		&defaultAction,
		&form.CreatedAt,
		&form.UpdatedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal(questions, &form.Questions); err != nil {
		return fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(rules, &form.Rules); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := json.Unmarshal(defaultAction, &form.DefaultAction); err != nil {
		return fmt.Errorf("unmarshal default action: %w", err)
	}
	return nil
}
