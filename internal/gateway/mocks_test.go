package gateway_test

import (
	"context"
	"io"
	"sync"
	"time"

	"wedding-gateway/internal/model"
	"wedding-gateway/internal/queue"

	"github.com/stretchr/testify/mock"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, body, size, contentType).Error(0)
}

func (m *mockStore) PublicURL(key string) string {
	return "https://demo.supabase.co/storage/v1/object/public/wedding-photos/" + key
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) Create(ctx context.Context, photo *model.GuestPhoto) (*model.GuestPhoto, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GuestPhoto), args.Error(1)
}

func (m *mockPhotos) List(ctx context.Context, limit int, ascending bool) ([]*model.GuestPhoto, error) {
	args := m.Called(ctx, limit, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.GuestPhoto), args.Error(1)
}

type mockTrivia struct{ mock.Mock }

func (m *mockTrivia) Create(ctx context.Context, result *model.TriviaResult) (*model.TriviaResult, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TriviaResult), args.Error(1)
}

type mockRsvps struct{ mock.Mock }

func (m *mockRsvps) Create(ctx context.Context, payload model.RsvpPayload) (model.RsvpGuest, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.RsvpGuest), args.Error(1)
}

type mockSongs struct{ mock.Mock }

func (m *mockSongs) Create(ctx context.Context, song *model.SongRequest) (*model.SongRequest, error) {
	args := m.Called(ctx, song)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SongRequest), args.Error(1)
}

func (m *mockSongs) ListRecent(ctx context.Context, limit int) ([]*model.SongRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SongRequest), args.Error(1)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) AuthorizeURL(provider model.AuthProvider, redirectTo string) (string, error) {
	args := m.Called(provider, redirectTo)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) SendOTP(ctx context.Context, email, redirectTo string) error {
	return m.Called(ctx, email, redirectTo).Error(0)
}

func (m *mockAuth) GetUser(ctx context.Context, accessToken string) (*model.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendUploadNotification(ctx context.Context, n model.UploadNotification) (*model.NotificationReceipt, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationReceipt), args.Error(1)
}

type recordingQueue struct {
	mu        sync.Mutex
	published []*model.UploadNotification
	err       error
}

func (q *recordingQueue) Publish(ctx context.Context, n *model.UploadNotification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, n)
	return nil
}

func (q *recordingQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	return make(chan queue.Delivery), nil
}

type observation struct {
	op      string
	outcome string
}

type recordingMetrics struct {
	mu      sync.Mutex
	seen    []observation
	orphans int
}

func (r *recordingMetrics) Observe(operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{op: operation, outcome: outcome})
}

func (r *recordingMetrics) OrphanedUpload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orphans++
}
