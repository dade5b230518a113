package repository

import (
	"context"
	"fmt"

	"wedding-gateway/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SongRepository interface {
	Create(ctx context.Context, song *model.SongRequest) (*model.SongRequest, error)
	// ListRecent returns newest-first, at most limit rows.
	ListRecent(ctx context.Context, limit int) ([]*model.SongRequest, error)
}

type SongRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSongRepository(pool *pgxpool.Pool) SongRepository {
	return &SongRepositoryImpl{
		pool: pool,
	}
}

func (r *SongRepositoryImpl) Create(ctx context.Context, song *model.SongRequest) (*model.SongRequest, error) {
	query := `
		INSERT INTO song_requests (song_name, artist_name, requester_name)
		VALUES ($1, $2, $3)
		RETURNING id, song_name, artist_name, requester_name, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		song.SongName, song.ArtistName, song.RequesterName,
	).Scan(
		&song.ID,
		&song.SongName,
		&song.ArtistName,
		&song.RequesterName,
		&song.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert song request: %w", err)
	}
	return song, nil
}

func (r *SongRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*model.SongRequest, error) {
	query := `
		SELECT id, song_name, artist_name, requester_name, created_at
		FROM song_requests
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list song requests: %w", err)
	}
	defer rows.Close()

	songs := make([]*model.SongRequest, 0, limit)
	for rows.Next() {
		var song model.SongRequest
		err := rows.Scan(
			&song.ID,
			&song.SongName,
			&song.ArtistName,
			&song.RequesterName,
			&song.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		songs = append(songs, &song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list song requests: %w", err)
	}
	return songs, nil
}
