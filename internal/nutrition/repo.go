package nutrition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/athletica/backend/internal/telemetry/tracing"
	"github.com/athletica/backend/pkg"
)

var ErrEntryNotFound = errors.New("nutrition entry not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListParams narrows the listed entries to a date window. Zero bounds
// mean unbounded on that side.
type ListParams struct {
	From pkg.Date
	To   pkg.Date
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT id, day, calories, protein_g, fat_g, carbs_g FROM nutrition_entry`
	var args []interface{}
	if !params.From.IsZero() {
		args = append(args, params.From.Time)
		query += fmt.Sprintf(" WHERE day >= $%d", len(args))
	}
	if !params.To.IsZero() {
		args = append(args, params.To.Time)
		if len(args) == 1 {
			query += fmt.Sprintf(" WHERE day <= $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND day <= $%d", len(args))
		}
	}
	query += " ORDER BY day DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2entries(rows)
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var e Entry
	var day time.Time
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, day, calories, protein_g, fat_g, carbs_g FROM nutrition_entry WHERE id = $1;`,
		id,
	).Scan(&e.ID, &day, &e.Calories, &e.ProteinG, &e.FatG, &e.CarbsG); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	e.Date = pkg.NewDate(day)
	return &e, nil
}

// Upsert stores the entry for its date. Logging a date twice keeps one
// row: the later values win wholesale.
func (r *Repo) Upsert(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO nutrition_entry (day, calories, protein_g, fat_g, carbs_g)
				VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (day) DO UPDATE
				SET calories = EXCLUDED.calories,
					protein_g = EXCLUDED.protein_g,
					fat_g = EXCLUDED.fat_g,
					carbs_g = EXCLUDED.carbs_g
			RETURNING id;`,
		entry.Date.Time, entry.Calories, entry.ProteinG, entry.FatG, entry.CarbsG,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}

	span.SetAttributes(attribute.Int("entry.id", id))

	entry.ID = id
	return &entry, nil
}

func (r *Repo) rows2entries(rows pgx.Rows) ([]Entry, error) {
	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var day time.Time
		if err := rows.Scan(&e.ID, &day, &e.Calories, &e.ProteinG, &e.FatG, &e.CarbsG); err != nil {
			return nil, err
		}
		e.Date = pkg.NewDate(day)
		entries = append(entries, e)
	}
	return entries, nil
}
