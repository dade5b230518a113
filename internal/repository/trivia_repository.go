package repository

import (
	"context"
	"fmt"

	"wedding-gateway/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TriviaRepository interface {
	Create(ctx context.Context, result *model.TriviaResult) (*model.TriviaResult, error)
}

type TriviaRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTriviaRepository(pool *pgxpool.Pool) TriviaRepository {
	return &TriviaRepositoryImpl{
		pool: pool,
	}
}

func (r *TriviaRepositoryImpl) Create(ctx context.Context, result *model.TriviaResult) (*model.TriviaResult, error) {
	query := `
		INSERT INTO trivia_results (score, answers, user_id, guest_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, score, answers, user_id, guest_name, created_at
	`
	// answers is jsonb; nil RawMessage goes in as SQL NULL
	var answers any
	if len(result.Answers) > 0 {
		answers = string(result.Answers)
	}

	var stored []byte
	err := r.pool.QueryRow(ctx, query,
		result.Score, answers, result.UserID, result.GuestName,
	).Scan(
		&result.ID,
		&result.Score,
		&stored,
		&result.UserID,
		&result.GuestName,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trivia result: %w", err)
	}
	result.Answers = stored
	return result, nil
}
