package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wedding-gateway/config"
	"wedding-gateway/internal/model"
	"wedding-gateway/internal/notify"
	apperrors "wedding-gateway/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relayConfig(url string) config.RelayConfig {
	return config.RelayConfig{
		URL:       url,
		AccessKey: "relay-key",
		ToEmail:   "couple@example.com",
		FromName:  "Wedding Website",
		Timeout:   time.Second,
	}
}

func TestRelayNotifier_SendUploadNotification(t *testing.T) {
	ctx := context.Background()
	un := model.UploadNotification{UploaderName: "Kai", Email: "kai@example.com", PhotoURL: "https://cdn.example/k.jpg"}

	t.Run("Success", func(t *testing.T) {
		var got model.RelayMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
		}))
		defer srv.Close()

		n := notify.NewRelayNotifier(relayConfig(srv.URL), srv.Client())
		receipt, err := n.SendUploadNotification(ctx, un)

		require.NoError(t, err)
		assert.True(t, receipt.Success)
		assert.Equal(t, "relay-key", got.AccessKey)
		assert.Equal(t, "couple@example.com", got.ToEmail)
		assert.Equal(t, "kai@example.com", got.ReplyTo)
		assert.Equal(t, "Wedding Website", got.FromName)
		assert.Contains(t, got.Subject, "Kai")
		assert.Contains(t, got.Message, "https://cdn.example/k.jpg")
	})

	t.Run("recipient is the configured address, never the uploader", func(t *testing.T) {
		var got model.RelayMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		cfg := relayConfig(srv.URL)
		cfg.ToEmail = "hosts@example.com"
		_, err := notify.NewRelayNotifier(cfg, srv.Client()).SendUploadNotification(ctx, un)

		require.NoError(t, err)
		assert.Equal(t, "hosts@example.com", got.ToEmail)
		assert.NotEqual(t, un.Email, got.ToEmail)
	})

	t.Run("Failed - success false carries relay message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid access key"}`))
		}))
		defer srv.Close()

		receipt, err := notify.NewRelayNotifier(relayConfig(srv.URL), srv.Client()).SendUploadNotification(ctx, un)

		assert.Nil(t, receipt)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrRelayRejected)
		assert.Contains(t, err.Error(), "Invalid access key")
		assert.Equal(t, apperrors.KindRejected, apperrors.Classify(err))
	})

	t.Run("Failed - network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		receipt, err := notify.NewRelayNotifier(relayConfig(srv.URL), nil).SendUploadNotification(ctx, un)

		assert.Nil(t, receipt)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindTransport, apperrors.Classify(err))
	})

	t.Run("Failed - non JSON body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		}))
		defer srv.Close()

		_, err := notify.NewRelayNotifier(relayConfig(srv.URL), srv.Client()).SendUploadNotification(ctx, un)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.Equal(t, apperrors.KindTransport, apperrors.Classify(err))
	})
}
