package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/logger"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBus struct {
	events []models.BroadcastEvent
}

func (b *fakeBus) Publish(_ context.Context, ev models.BroadcastEvent) {
	b.events = append(b.events, ev)
}

type fakeSettings struct {
	settings *models.AlertSettings
}

func (f *fakeSettings) Get(_ context.Context, _ uuid.UUID) (*models.AlertSettings, error) {
	if f.settings == nil {
		return nil, types.ErrNotFound
	}
	return f.settings, nil
}

type fakeChatRepo struct {
	messages  []models.ChatMessage // newest first, like the real repo returns
	lastSince time.Time
	lastLimit int
}

func (r *fakeChatRepo) Create(_ context.Context, m *models.ChatMessage) error {
	m.CreatedAt = time.Now()
	r.messages = append([]models.ChatMessage{*m}, r.messages...)
	return nil
}

func (r *fakeChatRepo) ListSince(_ context.Context, since time.Time, limit int) ([]models.ChatMessage, error) {
	r.lastSince = since
	r.lastLimit = limit

	var out []models.ChatMessage
	for _, m := range r.messages {
		if m.CreatedAt.Before(since) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeChatRepo) DeleteOwned(_ context.Context, userID, messageID uuid.UUID) error {
	for i, m := range r.messages {
		if m.ID == messageID && m.UserID == userID {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return types.ErrMessageNotFound
}

func newTestService(repo *fakeChatRepo, settings *fakeSettings, bus *fakeBus) *Service {
	return NewService(repo, settings, bus, fakeTxManager{}, "test", logger.InitLogger("test", "ERROR"))
}

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	return id
}

func addMessage(r *fakeChatRepo, userID uuid.UUID, lat, lon float64, age time.Duration) uuid.UUID {
	id, _ := uuid.New()
	r.messages = append(r.messages, models.ChatMessage{
		ID:          id,
		UserID:      userID,
		UserName:    "someone",
		Message:     "hi",
		Latitude:    lat,
		Longitude:   lon,
		MessageType: types.MessageText,
		CreatedAt:   time.Now().Add(-age),
	})
	return id
}

func TestSendPublishesEventWithSenderRadius(t *testing.T) {
	repo := &fakeChatRepo{}
	bus := &fakeBus{}
	settings := &fakeSettings{settings: &models.AlertSettings{AlertDistanceKm: 3.5}}
	svc := newTestService(repo, settings, bus)

	user := &models.User{ID: mustUUID(t), Name: "Dana"}

	m, err := svc.Send(context.Background(), user, "careful near the bridge", 43.0, 76.0, types.MessageText)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.ID == (uuid.UUID{}) {
		t.Error("message id not assigned")
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	ev, ok := bus.events[0].(models.NewChatMessageEvent)
	if !ok {
		t.Fatalf("expected NewChatMessageEvent, got %T", bus.events[0])
	}
	if ev.EventName() != "new_chat_message" {
		t.Errorf("unexpected event name %q", ev.EventName())
	}
	if ev.MessageID != m.ID {
		t.Errorf("event names wrong message")
	}
	if ev.AlertDistanceKm != 3.5 {
		t.Errorf("event should carry the sender's configured radius, got %f", ev.AlertDistanceKm)
	}
}

func TestNearbyRespectsRetentionWindow(t *testing.T) {
	repo := &fakeChatRepo{}
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	observer := mustUUID(t)
	sender := mustUUID(t)

	recent := addMessage(repo, sender, 43.01, 76.0, time.Hour)
	addMessage(repo, sender, 43.01, 76.0, 25*time.Hour) // past the window

	nearby, err := svc.Nearby(context.Background(), observer, 43.0, 76.0, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}

	if len(nearby) != 1 {
		t.Fatalf("expected only the recent message, got %d", len(nearby))
	}
	if nearby[0].ID != recent {
		t.Errorf("wrong message survived the retention filter")
	}

	windowAge := time.Since(repo.lastSince)
	if windowAge < 23*time.Hour || windowAge > 25*time.Hour {
		t.Errorf("retention window should be ~24h, repo saw since=%v ago", windowAge)
	}
}

func TestNearbyFiltersByRadius(t *testing.T) {
	repo := &fakeChatRepo{}
	bus := &fakeBus{}
	settings := &fakeSettings{settings: &models.AlertSettings{AlertDistanceKm: 2.0}}
	svc := newTestService(repo, settings, bus)

	observer := mustUUID(t)
	sender := mustUUID(t)

	inRange := addMessage(repo, sender, 43.01, 76.0, time.Minute) // ~1.1 km
	addMessage(repo, sender, 43.05, 76.0, time.Minute)            // ~5.5 km
	addMessage(repo, observer, 43.0, 76.0, time.Minute)           // own, excluded

	nearby, err := svc.Nearby(context.Background(), observer, 43.0, 76.0, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}

	if len(nearby) != 1 {
		t.Fatalf("expected 1 message inside 2 km, got %d", len(nearby))
	}
	if nearby[0].ID != inRange {
		t.Errorf("wrong message returned")
	}
	if nearby[0].DistanceKm <= 0 || nearby[0].DistanceKm > 2.0 {
		t.Errorf("distance out of range: %f", nearby[0].DistanceKm)
	}
}

func TestNearbyOverFetchesAndTruncates(t *testing.T) {
	repo := &fakeChatRepo{}
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	observer := mustUUID(t)
	for range 10 {
		addMessage(repo, mustUUID(t), 43.001, 76.0, time.Minute)
	}

	nearby, err := svc.Nearby(context.Background(), observer, 43.0, 76.0, 4)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}

	if repo.lastLimit != 12 {
		t.Errorf("expected candidate fetch of limit*3=12, repo saw %d", repo.lastLimit)
	}
	if len(nearby) != 4 {
		t.Errorf("result should be truncated to limit, got %d", len(nearby))
	}
}

func TestDeleteOwnMessagePublishes(t *testing.T) {
	repo := &fakeChatRepo{}
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	owner := mustUUID(t)
	id := addMessage(repo, owner, 43.0, 76.0, time.Minute)

	if err := svc.Delete(context.Background(), owner, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	ev, ok := bus.events[0].(models.ChatMessageDeletedEvent)
	if !ok {
		t.Fatalf("expected ChatMessageDeletedEvent, got %T", bus.events[0])
	}
	if ev.MessageID != id {
		t.Errorf("event names wrong message")
	}
}

func TestDeleteNotOwnedMessage(t *testing.T) {
	repo := &fakeChatRepo{}
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	owner := mustUUID(t)
	id := addMessage(repo, owner, 43.0, 76.0, time.Minute)

	stranger := mustUUID(t)
	if err := svc.Delete(context.Background(), stranger, id); !errors.Is(err, types.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}

	if len(bus.events) != 0 {
		t.Errorf("failed delete must not publish, got %d events", len(bus.events))
	}
	if len(repo.messages) != 1 {
		t.Errorf("message must survive a stranger's delete")
	}
}
