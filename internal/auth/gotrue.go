package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wedding-gateway/internal/model"
	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type Client interface {
	// AuthorizeURL builds the provider redirect; the browser performs the actual flow.
	AuthorizeURL(provider model.AuthProvider, redirectTo string) (string, error)
	SendOTP(ctx context.Context, email, redirectTo string) error
	// GetUser returns apperrors.ErrNoSession when the token is missing, expired or refused.
	GetUser(ctx context.Context, accessToken string) (*model.User, error)
}

type GoTrueClientImpl struct {
	baseURL string
	anonKey string
	http    *http.Client
	now     func() time.Time
}

func NewGoTrueClient(backendURL, anonKey string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoTrueClientImpl{
		baseURL: strings.TrimRight(backendURL, "/") + "/auth/v1",
		anonKey: anonKey,
		http:    httpClient,
		now:     time.Now,
	}
}

func (c *GoTrueClientImpl) AuthorizeURL(provider model.AuthProvider, redirectTo string) (string, error) {
	if provider == "" {
		return "", fmt.Errorf("%w: provider required", apperrors.ErrInvalidInput)
	}
	u, err := url.Parse(c.baseURL + "/authorize")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("provider", string(provider))
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type otpRequest struct {
	Email      string `json:"email"`
	CreateUser bool   `json:"create_user"`
}

func (c *GoTrueClientImpl) SendOTP(ctx context.Context, email, redirectTo string) error {
	body, err := json.Marshal(otpRequest{Email: email, CreateUser: true})
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/otp"
	if redirectTo != "" {
		endpoint += "?" + url.Values{"redirect_to": {redirectTo}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: %s", apperrors.ErrAuthRejected, readAuthError(resp))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *GoTrueClientImpl) GetUser(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrNoSession
	}
	if expired, err := c.tokenExpired(accessToken); err != nil || expired {
		return nil, apperrors.ErrNoSession
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.ErrNoSession
	case resp.StatusCode/100 != 2:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAuthRejected, readAuthError(resp))
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return nil, apperrors.ErrNoSession
	}
	return &user, nil
}

// tokenExpired only reads the exp claim. The signature is the auth service's business.
func (c *GoTrueClientImpl) tokenExpired(raw string) (bool, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		logger.WithComponent("auth").Debug("unparseable access token", zap.Error(err))
		return false, err
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	return !claims.ExpiresAt.After(c.now()), nil
}

func (c *GoTrueClientImpl) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
}

type authErrorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func readAuthError(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body authErrorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if m != "" {
				return m
			}
		}
	}
	if len(raw) > 0 {
		return strings.TrimSpace(string(raw))
	}
	return resp.Status
}

// IsNoSession reports whether err only means "nobody is signed in".
func IsNoSession(err error) bool {
	return errors.Is(err, apperrors.ErrNoSession)
}
