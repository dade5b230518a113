package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wedding-gateway/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPhotos(t *testing.T, repo PhotoRepository, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := repo.Create(ctx, &model.GuestPhoto{
			URL:          fmt.Sprintf("https://cdn.example/%d.jpg", i),
			UploaderName: fmt.Sprintf("guest-%d", i),
		})
		require.NoError(t, err)
	}
}

func TestPhotoRepository_Create(t *testing.T) {
	pool := setupTestWithTruncate(t)
	repo := NewPhotoRepository(pool)
	ctx := context.Background()

	t.Run("optional contact fields stored as NULL", func(t *testing.T) {
		photo, err := repo.Create(ctx, &model.GuestPhoto{URL: "https://cdn.example/a.jpg", UploaderName: "Ana"})

		require.NoError(t, err)
		assert.NotZero(t, photo.ID)
		assert.Nil(t, photo.UploaderEmail)
		assert.Nil(t, photo.UploaderWhatsapp)
		assert.WithinDuration(t, time.Now(), photo.CreatedAt, time.Minute)
	})

	t.Run("contact fields round trip", func(t *testing.T) {
		photo, err := repo.Create(ctx, &model.GuestPhoto{
			URL:              "https://cdn.example/b.jpg",
			UploaderName:     "Ben",
			UploaderEmail:    strPtr("ben@example.com"),
			UploaderWhatsapp: strPtr("+15550100"),
		})

		require.NoError(t, err)
		require.NotNil(t, photo.UploaderEmail)
		assert.Equal(t, "ben@example.com", *photo.UploaderEmail)
		assert.Equal(t, "+15550100", *photo.UploaderWhatsapp)
	})
}

func TestPhotoRepository_List(t *testing.T) {
	pool := setupTestWithTruncate(t)
	repo := NewPhotoRepository(pool)
	ctx := context.Background()
	seedPhotos(t, repo, 25)

	t.Run("ascending is capped and oldest first", func(t *testing.T) {
		photos, err := repo.List(ctx, 20, true)

		require.NoError(t, err)
		require.Len(t, photos, 20)
		assert.Equal(t, "guest-0", photos[0].UploaderName)
		for i := 1; i < len(photos); i++ {
			assert.False(t, photos[i].CreatedAt.Before(photos[i-1].CreatedAt))
		}
	})

	t.Run("descending is newest first", func(t *testing.T) {
		photos, err := repo.List(ctx, 20, false)

		require.NoError(t, err)
		require.Len(t, photos, 20)
		assert.Equal(t, "guest-24", photos[0].UploaderName)
	})
}
