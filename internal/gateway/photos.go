package gateway

import (
	"context"
	"time"

	"wedding-gateway/internal/model"
	"wedding-gateway/internal/storage"
	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadPhoto stores the object, then inserts its guest_photos row. The two writes are
// not transactional: when the insert fails the object stays in the bucket unless
// CleanupOrphanedUploads is set, and the caller gets the insert error either way.
func (g *GatewayImpl) UploadPhoto(ctx context.Context, in model.PhotoUpload) (_ *model.UploadedPhoto, err error) {
	const op = "UploadPhoto"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Store == nil || g.deps.Photos == nil {
		return nil, apperrors.NotInitialized(op)
	}
	if err := g.checkStruct(op, in); err != nil {
		return nil, err
	}
	if in.Content == nil {
		return nil, apperrors.InvalidInput(op, "file content is required")
	}

	key := storage.ObjectKey(g.opts.StoragePrefix, in.FileName, g.opts.Now())
	if err := g.deps.Store.Upload(ctx, key, in.Content, in.Size, in.ContentType); err != nil {
		return nil, apperrors.Wrap(op, err)
	}

	publicURL := g.deps.Store.PublicURL(key)
	photo, err := g.deps.Photos.Create(ctx, &model.GuestPhoto{
		URL:              publicURL,
		UploaderName:     in.UploaderName,
		UploaderEmail:    nonEmpty(in.Email),
		UploaderWhatsapp: nonEmpty(in.Whatsapp),
	})
	if err != nil {
		g.handleOrphan(ctx, key)
		return nil, apperrors.Wrap(op, err)
	}

	g.enqueueUploadNotification(ctx, photo)

	return &model.UploadedPhoto{
		PublicURL: publicURL,
		ObjectKey: key,
		Photo:     photo,
	}, nil
}

func (g *GatewayImpl) handleOrphan(ctx context.Context, key string) {
	g.deps.Metrics.OrphanedUpload()
	log := logger.WithComponent("gateway").With(zap.String("object_key", key))
	if !g.opts.CleanupOrphanedUploads {
		log.Warn("object stored without guest_photos row")
		return
	}
	// the request context may already be done; cleanup gets its own budget
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := g.deps.Store.Delete(cleanupCtx, key); err != nil {
		log.Error("orphaned object cleanup failed", zap.Error(err))
		return
	}
	log.Info("orphaned object removed")
}

func (g *GatewayImpl) enqueueUploadNotification(ctx context.Context, photo *model.GuestPhoto) {
	if g.deps.Queue == nil || photo.UploaderEmail == nil {
		return
	}
	n := &model.UploadNotification{
		ID:           uuid.New().String(),
		UploaderName: photo.UploaderName,
		Email:        *photo.UploaderEmail,
		PhotoURL:     photo.URL,
		QueuedAt:     g.opts.Now().UTC(),
	}
	if err := g.deps.Queue.Publish(context.WithoutCancel(ctx), n); err != nil {
		logger.WithComponent("gateway").Warn("upload notification not queued",
			zap.String("notification_id", n.ID),
			zap.Error(err),
		)
	}
}

// FetchGuestPhotos lists at most PhotoFeedLimit photos by creation time, direction per configuration.
func (g *GatewayImpl) FetchGuestPhotos(ctx context.Context) (_ []*model.GuestPhoto, err error) {
	const op = "FetchGuestPhotos"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Photos == nil {
		return nil, apperrors.NotInitialized(op)
	}
	photos, err := g.deps.Photos.List(ctx, PhotoFeedLimit, g.opts.PhotoOrderAscending)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	if len(photos) > PhotoFeedLimit {
		photos = photos[:PhotoFeedLimit]
	}
	return photos, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
