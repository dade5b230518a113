package model

import "time"

type SongRequest struct {
	ID            int64     `json:"id" db:"id"`
	SongName      string    `json:"song_name" db:"song_name"`
	ArtistName    *string   `json:"artist_name" db:"artist_name"`
	RequesterName string    `json:"requester_name" db:"requester_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type SongSubmission struct {
	SongName      string  `json:"song_name" validate:"required"`
	ArtistName    *string `json:"artist_name"`
	RequesterName string  `json:"requester_name" validate:"required"`
}
