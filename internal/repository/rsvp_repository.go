package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wedding-gateway/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RsvpRepository interface {
	Create(ctx context.Context, payload model.RsvpPayload) (model.RsvpGuest, error)
}

type RsvpRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRsvpRepository(pool *pgxpool.Pool) RsvpRepository {
	return &RsvpRepositoryImpl{
		pool: pool,
	}
}

// Create inserts the payload as-is. Unknown columns are rejected by Postgres, not here.
func (r *RsvpRepositoryImpl) Create(ctx context.Context, payload model.RsvpPayload) (model.RsvpGuest, error) {
	query, args := buildRsvpInsert(payload)

	var stored map[string]any
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&stored); err != nil {
		return nil, fmt.Errorf("failed to insert rsvp: %w", err)
	}
	return model.RsvpGuest(stored), nil
}

func buildRsvpInsert(payload model.RsvpPayload) (string, []any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		columns[i] = pgx.Identifier{k}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = payload[k]
	}

	query := fmt.Sprintf(`
		INSERT INTO rsvp_guests (%s)
		VALUES (%s)
		RETURNING to_jsonb(rsvp_guests.*)
	`, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	return query, args
}
