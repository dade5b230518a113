package repository

import (
	"context"
	"fmt"

	"wedding-gateway/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *model.GuestPhoto) (*model.GuestPhoto, error)
	// List orders by created_at (id breaks ties) and returns at most limit rows.
	List(ctx context.Context, limit int, ascending bool) ([]*model.GuestPhoto, error)
}

type PhotoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) PhotoRepository {
	return &PhotoRepositoryImpl{
		pool: pool,
	}
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, photo *model.GuestPhoto) (*model.GuestPhoto, error) {
	query := `
		INSERT INTO guest_photos (url, uploader_name, uploader_email, uploader_whatsapp)
		VALUES ($1, $2, $3, $4)
		RETURNING id, url, uploader_name, uploader_email, uploader_whatsapp, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		photo.URL, photo.UploaderName, photo.UploaderEmail, photo.UploaderWhatsapp,
	).Scan(
		&photo.ID,
		&photo.URL,
		&photo.UploaderName,
		&photo.UploaderEmail,
		&photo.UploaderWhatsapp,
		&photo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert guest photo: %w", err)
	}
	return photo, nil
}

func (r *PhotoRepositoryImpl) List(ctx context.Context, limit int, ascending bool) ([]*model.GuestPhoto, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`
		SELECT id, url, uploader_name, uploader_email, uploader_whatsapp, created_at
		FROM guest_photos
		ORDER BY created_at %s, id %s
		LIMIT $1
	`, direction, direction)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest photos: %w", err)
	}
	defer rows.Close()

	photos := make([]*model.GuestPhoto, 0, limit)
	for rows.Next() {
		var photo model.GuestPhoto
		err := rows.Scan(
			&photo.ID,
			&photo.URL,
			&photo.UploaderName,
			&photo.UploaderEmail,
			&photo.UploaderWhatsapp,
			&photo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, &photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list guest photos: %w", err)
	}
	return photos, nil
}
