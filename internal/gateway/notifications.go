package gateway

import (
	"context"
	"strings"
	"time"

	"wedding-gateway/internal/model"
	apperrors "wedding-gateway/pkg/app_errors"

	"github.com/google/uuid"
)

// SendPhotoUploadNotification posts one message to the mail relay and waits for its verdict.
func (g *GatewayImpl) SendPhotoUploadNotification(ctx context.Context, uploaderName, email string) (_ *model.NotificationReceipt, err error) {
	const op = "SendPhotoUploadNotification"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Notifier == nil {
		return nil, apperrors.NotInitialized(op)
	}
	if err := checkRequired(op, "uploaderName", uploaderName); err != nil {
		return nil, err
	}
	if err := checkRequired(op, "email", email); err != nil {
		return nil, err
	}

	receipt, err := g.deps.Notifier.SendUploadNotification(ctx, model.UploadNotification{
		ID:           uuid.New().String(),
		UploaderName: strings.TrimSpace(uploaderName),
		Email:        strings.TrimSpace(email),
		QueuedAt:     g.opts.Now().UTC(),
	})
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return receipt, nil
}
