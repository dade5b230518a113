package repository

import (
	"context"
	"fmt"
	"testing"

	"wedding-gateway/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongRepository(t *testing.T) {
	pool := setupTestWithTruncate(t)
	repo := NewSongRepository(pool)
	ctx := context.Background()

	t.Run("Create - artist omitted", func(t *testing.T) {
		song, err := repo.Create(ctx, &model.SongRequest{SongName: "September", RequesterName: "Dee"})

		require.NoError(t, err)
		assert.NotZero(t, song.ID)
		assert.Nil(t, song.ArtistName)
	})

	t.Run("ListRecent - newest first and capped", func(t *testing.T) {
		for i := 0; i < 55; i++ {
			_, err := repo.Create(ctx, &model.SongRequest{
				SongName:      fmt.Sprintf("song-%d", i),
				ArtistName:    strPtr(""),
				RequesterName: "Eve",
			})
			require.NoError(t, err)
		}

		songs, err := repo.ListRecent(ctx, 50)

		require.NoError(t, err)
		require.Len(t, songs, 50)
		assert.Equal(t, "song-54", songs[0].SongName)
		require.NotNil(t, songs[0].ArtistName)
		assert.Equal(t, "", *songs[0].ArtistName)
	})
}
