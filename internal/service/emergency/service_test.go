package emergency

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

type fakeEmergencyRepo struct {
	activeByUser map[uuid.UUID]*models.Emergency
	createErr    error
}

func newFakeEmergencyRepo() *fakeEmergencyRepo {
	return &fakeEmergencyRepo{activeByUser: make(map[uuid.UUID]*models.Emergency)}
}

func (r *fakeEmergencyRepo) CreateActive(_ context.Context, e *models.Emergency) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.activeByUser[e.UserID]; ok {
		return types.ErrActiveEmergencyExists
	}
	e.IsActive = true
	e.CreatedAt = time.Now()
	r.activeByUser[e.UserID] = e
	return nil
}

func (r *fakeEmergencyRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) (*models.Emergency, error) {
	e, ok := r.activeByUser[userID]
	if !ok {
		return nil, types.ErrEmergencyNotFound
	}
	return e, nil
}

func (r *fakeEmergencyRepo) ResolveActiveByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	e, ok := r.activeByUser[userID]
	if !ok {
		return uuid.UUID{}, types.ErrEmergencyNotFound
	}
	delete(r.activeByUser, userID)
	return e.ID, nil
}

func (r *fakeEmergencyRepo) ResolveOwnedByID(_ context.Context, userID, emergencyID uuid.UUID) error {
	e, ok := r.activeByUser[userID]
	if !ok || e.ID != emergencyID {
		return types.ErrEmergencyNotFound
	}
	delete(r.activeByUser, userID)
	return nil
}

func (r *fakeEmergencyRepo) ListActive(_ context.Context) ([]models.Emergency, error) {
	var out []models.Emergency
	for _, e := range r.activeByUser {
		out = append(out, *e)
	}
	return out, nil
}

func newTestService(repo *fakeEmergencyRepo, settings *fakeSettings, bus *fakeBus) *Service {
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

func testUser(t *testing.T) *models.User {
	t.Helper()
	return &models.User{
		ID:           mustUUID(t),
		Name:         "Aruzhan",
		VehiclePlate: "123ABC02",
	}
}

func TestRaisePublishesAlert(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	user := testUser(t)

	e, err := svc.Raise(context.Background(), user, 43.238949, 76.889709)
	if err != nil {
		t.Fatalf("Raise: %v", err)
	}
	if !e.IsActive {
		t.Error("raised emergency should be active")
	}
	if e.UserName != user.Name || e.VehiclePlate != user.VehiclePlate {
		t.Errorf("emergency should carry denormalized user fields, got %q %q", e.UserName, e.VehiclePlate)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	alert, ok := bus.events[0].(models.EmergencyAlertEvent)
	if !ok {
		t.Fatalf("expected EmergencyAlertEvent, got %T", bus.events[0])
	}
	if alert.EmergencyID != e.ID {
		t.Errorf("event names wrong emergency: %s != %s", alert.EmergencyID, e.ID)
	}
	if alert.EventName() != "emergency_alert" {
		t.Errorf("unexpected event name %q", alert.EventName())
	}
}

func TestRaiseSecondActiveConflicts(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	user := testUser(t)

	if _, err := svc.Raise(context.Background(), user, 43.0, 76.0); err != nil {
		t.Fatalf("first Raise: %v", err)
	}

	_, err := svc.Raise(context.Background(), user, 43.1, 76.1)
	if !errors.Is(err, types.ErrActiveEmergencyExists) {
		t.Fatalf("expected ErrActiveEmergencyExists, got %v", err)
	}

	if len(bus.events) != 1 {
		t.Errorf("conflicting raise must not publish, got %d events", len(bus.events))
	}
}

func TestCancelResolvesAndPublishes(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	user := testUser(t)

	e, err := svc.Raise(context.Background(), user, 43.0, 76.0)
	if err != nil {
		t.Fatalf("Raise: %v", err)
	}

	resolvedID, err := svc.Cancel(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if resolvedID != e.ID {
		t.Errorf("cancelled wrong emergency: %s != %s", resolvedID, e.ID)
	}

	if len(bus.events) != 2 {
		t.Fatalf("expected alert + resolved, got %d events", len(bus.events))
	}
	resolved, ok := bus.events[1].(models.EmergencyResolvedEvent)
	if !ok {
		t.Fatalf("expected EmergencyResolvedEvent, got %T", bus.events[1])
	}
	if resolved.EmergencyID != e.ID {
		t.Errorf("resolved event names wrong emergency")
	}

	if _, err := svc.Active(context.Background(), user.ID); !errors.Is(err, types.ErrEmergencyNotFound) {
		t.Errorf("expected no active emergency after cancel, got %v", err)
	}
}

func TestCancelWithoutActive(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	_, err := svc.Cancel(context.Background(), mustUUID(t))
	if !errors.Is(err, types.ErrEmergencyNotFound) {
		t.Fatalf("expected ErrEmergencyNotFound, got %v", err)
	}
	if len(bus.events) != 0 {
		t.Errorf("failed cancel must not publish, got %d events", len(bus.events))
	}
}

func TestDeactivateNotOwned(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus)

	owner := testUser(t)
	e, err := svc.Raise(context.Background(), owner, 43.0, 76.0)
	if err != nil {
		t.Fatalf("Raise: %v", err)
	}

	stranger := mustUUID(t)
	if err := svc.Deactivate(context.Background(), stranger, e.ID); !errors.Is(err, types.ErrEmergencyNotFound) {
		t.Fatalf("expected ErrEmergencyNotFound for not-owned record, got %v", err)
	}

	// The record is untouched and no resolved event went out.
	if _, err := svc.Active(context.Background(), owner.ID); err != nil {
		t.Errorf("owner's emergency should still be active: %v", err)
	}
	if len(bus.events) != 1 {
		t.Errorf("expected only the alert event, got %d", len(bus.events))
	}
}

func TestNearbyFiltersByRadiusAndOwner(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeSettings{}, bus) // default radius 10 km

	observer := mustUUID(t)

	// Observer's own emergency at the observer's position: always excluded.
	own := testUser(t)
	own.ID = observer
	if _, err := svc.Raise(context.Background(), own, 43.0, 76.0); err != nil {
		t.Fatalf("Raise own: %v", err)
	}

	// ~5.5 km north: inside the 10 km default radius.
	near := testUser(t)
	if _, err := svc.Raise(context.Background(), near, 43.05, 76.0); err != nil {
		t.Fatalf("Raise near: %v", err)
	}

	// ~55 km north: outside.
	far := testUser(t)
	if _, err := svc.Raise(context.Background(), far, 43.5, 76.0); err != nil {
		t.Fatalf("Raise far: %v", err)
	}

	nearby, err := svc.Nearby(context.Background(), observer, 43.0, 76.0)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}

	if len(nearby) != 1 {
		t.Fatalf("expected exactly the near emergency, got %d results", len(nearby))
	}
	if nearby[0].UserID != near.ID {
		t.Errorf("wrong emergency returned")
	}
	if nearby[0].DistanceKm <= 0 || nearby[0].DistanceKm > 10 {
		t.Errorf("distance out of expected range: %f", nearby[0].DistanceKm)
	}
}

func TestNearbyUsesConfiguredRadius(t *testing.T) {
	repo := newFakeEmergencyRepo()
	bus := &fakeBus{}
	settings := &fakeSettings{settings: &models.AlertSettings{AlertDistanceKm: 2.0}}
	svc := newTestService(repo, settings, bus)

	observer := mustUUID(t)

	// ~5.5 km away: inside default 10 km but outside the configured 2 km.
	other := testUser(t)
	if _, err := svc.Raise(context.Background(), other, 43.05, 76.0); err != nil {
		t.Fatalf("Raise: %v", err)
	}

	nearby, err := svc.Nearby(context.Background(), observer, 43.0, 76.0)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(nearby) != 0 {
		t.Fatalf("expected no results inside 2 km radius, got %d", len(nearby))
	}
}
