package model

import "time"

// UploadNotification is queued after a photo upload and delivered to the relay by the worker.
type UploadNotification struct {
	ID           string    `json:"id"`
	UploaderName string    `json:"uploader_name"`
	Email        string    `json:"email"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	QueuedAt     time.Time `json:"queued_at"`
}

// RelayMessage is the form payload the relay turns into an email.
type RelayMessage struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	ToEmail   string `json:"to_email"`
	ReplyTo   string `json:"replyto,omitempty"`
	Message   string `json:"message"`
}

// NotificationReceipt is what the relay said about a delivered message.
type NotificationReceipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
