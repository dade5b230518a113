package gateway

import (
	"context"
	"time"

	"wedding-gateway/internal/auth"
	"wedding-gateway/internal/metrics"
	"wedding-gateway/internal/model"
	"wedding-gateway/internal/notify"
	"wedding-gateway/internal/queue"
	"wedding-gateway/internal/repository"
	"wedding-gateway/internal/storage"
	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	PhotoFeedLimit = 20
	SongFeedLimit  = 50
)

// Gateway is the page-facing surface over the hosted backend. Every method performs
// one remote call (UploadPhoto: two, in sequence) and returns either data or a
// *apperrors.GatewayError. GetCurrentUser is the exception: no session is not an error.
type Gateway interface {
	UploadPhoto(ctx context.Context, in model.PhotoUpload) (*model.UploadedPhoto, error)
	SaveTriviaResult(ctx context.Context, in model.TriviaSubmission) (*model.TriviaResult, error)
	SaveRSVP(ctx context.Context, payload model.RsvpPayload) (model.RsvpGuest, error)
	FetchGuestPhotos(ctx context.Context) ([]*model.GuestPhoto, error)
	SaveSongRequest(ctx context.Context, in model.SongSubmission) (*model.SongRequest, error)
	FetchSongRequests(ctx context.Context) ([]*model.SongRequest, error)
	SignInWithGoogle(ctx context.Context) (*model.AuthRedirect, error)
	SignInWithEmail(ctx context.Context, email string) (*model.OTPDispatch, error)
	GetCurrentUser(ctx context.Context, accessToken string) *model.User
	SendPhotoUploadNotification(ctx context.Context, uploaderName, email string) (*model.NotificationReceipt, error)
}

// Deps are the remote backends. A nil field means that backend was never configured;
// operations needing it fail fast with a precondition error.
type Deps struct {
	Store    storage.ObjectStore
	Photos   repository.PhotoRepository
	Trivia   repository.TriviaRepository
	Rsvps    repository.RsvpRepository
	Songs    repository.SongRepository
	Auth     auth.Client
	Notifier notify.Notifier
	// Queue receives a notification after each upload that carries an email. Optional.
	Queue   queue.NotificationQueue
	Metrics metrics.Recorder
}

type Options struct {
	StoragePrefix          string
	SiteOrigin             string
	RedirectAnchor         string
	PhotoOrderAscending    bool
	CleanupOrphanedUploads bool
	Now                    func() time.Time
}

type GatewayImpl struct {
	deps     Deps
	opts     Options
	validate *validator.Validate
}

func New(deps Deps, opts Options) Gateway {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GatewayImpl{
		deps:     deps,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// redirectTarget is the in-page anchor auth flows come back to.
func (g *GatewayImpl) redirectTarget() string {
	target := g.opts.SiteOrigin + "/"
	if g.opts.RedirectAnchor != "" {
		target += "#" + g.opts.RedirectAnchor
	}
	return target
}

// finish logs and records the outcome of one operation. errp points at the named result.
func (g *GatewayImpl) finish(op string, start time.Time, errp *error) {
	elapsed := time.Since(start)
	if errp == nil || *errp == nil {
		g.deps.Metrics.Observe(op, "ok", elapsed)
		return
	}

	kind := apperrors.KindOf(*errp)
	g.deps.Metrics.Observe(op, string(kind), elapsed)

	log := logger.WithComponent("gateway").With(
		zap.String("operation", op),
		zap.String("kind", string(kind)),
		zap.Duration("elapsed", elapsed),
		zap.Error(*errp),
	)
	switch kind {
	case apperrors.KindPrecondition, apperrors.KindInvalidInput:
		log.Warn("operation refused")
	default:
		log.Error("operation failed")
	}
}
