package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wedding-gateway/config"
	"wedding-gateway/internal/model"
	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"go.uber.org/zap"
)

type Notifier interface {
	SendUploadNotification(ctx context.Context, n model.UploadNotification) (*model.NotificationReceipt, error)
}

// RelayNotifierImpl posts form payloads to a Web3Forms-style relay that forwards them as email.
type RelayNotifierImpl struct {
	cfg  config.RelayConfig
	http *http.Client
}

func NewRelayNotifier(cfg config.RelayConfig, httpClient *http.Client) Notifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &RelayNotifierImpl{cfg: cfg, http: httpClient}
}

func (n *RelayNotifierImpl) SendUploadNotification(ctx context.Context, un model.UploadNotification) (*model.NotificationReceipt, error) {
	return n.send(ctx, n.uploadMessage(un))
}

func (n *RelayNotifierImpl) uploadMessage(un model.UploadNotification) model.RelayMessage {
	var body strings.Builder
	fmt.Fprintf(&body, "%s just shared a photo on the wedding website.\n", un.UploaderName)
	fmt.Fprintf(&body, "Email: %s\n", un.Email)
	if un.PhotoURL != "" {
		fmt.Fprintf(&body, "Photo: %s\n", un.PhotoURL)
	}

	return model.RelayMessage{
		AccessKey: n.cfg.AccessKey,
		Subject:   fmt.Sprintf("New photo from %s", un.UploaderName),
		FromName:  n.cfg.FromName,
		ToEmail:   n.cfg.ToEmail,
		ReplyTo:   un.Email,
		Message:   body.String(),
	}
}

func (n *RelayNotifierImpl) send(ctx context.Context, msg model.RelayMessage) (*model.NotificationReceipt, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal relay message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post relay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read relay response: %w", err)
	}

	var receipt model.NotificationReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return nil, fmt.Errorf("relay responded %s with non-JSON body: %w", resp.Status, err)
	}
	if !receipt.Success {
		message := receipt.Message
		if message == "" {
			message = resp.Status
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRelayRejected, message)
	}

	logger.WithComponent("notify").Info("relay accepted notification",
		zap.String("subject", msg.Subject),
		zap.Int("status", resp.StatusCode),
	)
	return &receipt, nil
}
