package model

import (
	"io"
	"time"
)

// GuestPhoto is one row of guest_photos. Rows are immutable after insert.
type GuestPhoto struct {
	ID               int64     `json:"id" db:"id"`
	URL              string    `json:"url" db:"url"`
	UploaderName     string    `json:"uploader_name" db:"uploader_name"`
	UploaderEmail    *string   `json:"uploader_email,omitempty" db:"uploader_email"`
	UploaderWhatsapp *string   `json:"uploader_whatsapp,omitempty" db:"uploader_whatsapp"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// PhotoUpload is everything uploadPhoto needs from the caller.
type PhotoUpload struct {
	FileName     string    `validate:"required"`
	ContentType  string
	Size         int64     `validate:"gt=0"`
	Content      io.Reader `validate:"-"`
	UploaderName string    `validate:"required"`
	Email        *string
	Whatsapp     *string
}

// UploadedPhoto is returned by a successful upload.
type UploadedPhoto struct {
	PublicURL string      `json:"public_url"`
	ObjectKey string      `json:"object_key"`
	Photo     *GuestPhoto `json:"photo"`
}
