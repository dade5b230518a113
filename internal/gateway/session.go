package gateway

import (
	"context"
	"strings"
	"time"

	"wedding-gateway/internal/auth"
	"wedding-gateway/internal/model"
	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"go.uber.org/zap"
)

func (g *GatewayImpl) SignInWithGoogle(ctx context.Context) (_ *model.AuthRedirect, err error) {
	const op = "SignInWithGoogle"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Auth == nil {
		return nil, apperrors.NotInitialized(op)
	}
	redirectTo := g.redirectTarget()
	authorizeURL, err := g.deps.Auth.AuthorizeURL(model.AuthProviderGoogle, redirectTo)
	if err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return &model.AuthRedirect{
		Provider:   model.AuthProviderGoogle,
		URL:        authorizeURL,
		RedirectTo: redirectTo,
	}, nil
}

func (g *GatewayImpl) SignInWithEmail(ctx context.Context, email string) (_ *model.OTPDispatch, err error) {
	const op = "SignInWithEmail"
	defer g.finish(op, time.Now(), &err)

	if g.deps.Auth == nil {
		return nil, apperrors.NotInitialized(op)
	}
	if err := checkRequired(op, "email", email); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	redirectTo := g.redirectTarget()
	if err := g.deps.Auth.SendOTP(ctx, email, redirectTo); err != nil {
		return nil, apperrors.Wrap(op, err)
	}
	return &model.OTPDispatch{
		Provider:   model.AuthProviderEmail,
		Email:      email,
		RedirectTo: redirectTo,
	}, nil
}

// GetCurrentUser returns nil when nobody is signed in. Lookup failures also come back as
// nil; they are logged, never returned.
func (g *GatewayImpl) GetCurrentUser(ctx context.Context, accessToken string) *model.User {
	const op = "GetCurrentUser"
	start := time.Now()

	if g.deps.Auth == nil {
		g.deps.Metrics.Observe(op, string(apperrors.KindPrecondition), time.Since(start))
		return nil
	}

	user, err := g.deps.Auth.GetUser(ctx, accessToken)
	switch {
	case err == nil:
		g.deps.Metrics.Observe(op, "ok", time.Since(start))
		return user
	case auth.IsNoSession(err):
		g.deps.Metrics.Observe(op, "no_session", time.Since(start))
	default:
		kind := apperrors.Classify(err)
		g.deps.Metrics.Observe(op, string(kind), time.Since(start))
		logger.WithComponent("gateway").Warn("current user lookup failed, treating as signed out",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
	return nil
}
