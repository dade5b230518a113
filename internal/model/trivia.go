package model

import (
	"encoding/json"
	"time"
)

type TriviaResult struct {
	ID        int64           `json:"id" db:"id"`
	Score     int             `json:"score" db:"score"`
	Answers   json.RawMessage `json:"answers" db:"answers"`
	UserID    *string         `json:"user_id,omitempty" db:"user_id"`
	GuestName *string         `json:"guest_name,omitempty" db:"guest_name"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type TriviaSubmission struct {
	Score     int             `json:"score"`
	Answers   json.RawMessage `json:"answers"`
	UserID    *string         `json:"user_id"`
	GuestName *string         `json:"guest_name"`
}
