package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/logger"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSettingsRepo struct {
	byUser map[uuid.UUID]*models.AlertSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context, userID uuid.UUID) (*models.AlertSettings, error) {
	s, ok := r.byUser[userID]
	if !ok {
		return nil, types.ErrNotFound
	}
	return s, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *models.AlertSettings) error {
	r.byUser[s.UserID] = s
	return nil
}

type fakeLocationRepo struct {
	byUser map[uuid.UUID]*models.UserLocation
}

func (r *fakeLocationRepo) Upsert(_ context.Context, loc *models.UserLocation) error {
	r.byUser[loc.UserID] = loc
	return nil
}

type bindingKey struct {
	userID           uuid.UUID
	subscriptionType string
}

type fakeDeviceRepo struct {
	bindings map[bindingKey]*models.DeviceBinding
}

func (r *fakeDeviceRepo) FindBySubscription(_ context.Context, userID uuid.UUID, subscriptionType string) (*models.DeviceBinding, error) {
	b, ok := r.bindings[bindingKey{userID, subscriptionType}]
	if !ok {
		return nil, types.ErrNoDeviceBinding
	}
	return b, nil
}

func (r *fakeDeviceRepo) FindByDevice(_ context.Context, userID uuid.UUID, deviceID string) (*models.DeviceBinding, error) {
	for k, b := range r.bindings {
		if k.userID == userID && b.DeviceID == deviceID {
			return b, nil
		}
	}
	return nil, types.ErrNoDeviceBinding
}

func (r *fakeDeviceRepo) Upsert(_ context.Context, b *models.DeviceBinding) error {
	r.bindings[bindingKey{b.UserID, b.SubscriptionType}] = b
	return nil
}

func newTestService() (*Service, *fakeSettingsRepo, *fakeLocationRepo, *fakeDeviceRepo) {
	settings := &fakeSettingsRepo{byUser: make(map[uuid.UUID]*models.AlertSettings)}
	locations := &fakeLocationRepo{byUser: make(map[uuid.UUID]*models.UserLocation)}
	devices := &fakeDeviceRepo{bindings: make(map[bindingKey]*models.DeviceBinding)}
	svc := NewService(settings, locations, devices, fakeTxManager{}, logger.InitLogger("test", "ERROR"))
	return svc, settings, locations, devices
}

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	return id
}

func TestSettingsDefaultsWhenUnset(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := mustUUID(t)

	s, err := svc.Settings(context.Background(), userID)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.AlertDistanceKm != types.DefaultAlertDistanceKm {
		t.Errorf("expected default radius %v, got %v", types.DefaultAlertDistanceKm, s.AlertDistanceKm)
	}
	if len(s.EmergencyContacts) != 0 {
		t.Errorf("expected no default contacts, got %v", s.EmergencyContacts)
	}
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := mustUUID(t)

	contacts := []string{"+77011234567", "+77017654321"}
	if _, err := svc.UpdateSettings(context.Background(), userID, contacts, 2.5); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	s, err := svc.Settings(context.Background(), userID)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.AlertDistanceKm != 2.5 {
		t.Errorf("radius not persisted: %v", s.AlertDistanceKm)
	}
	if len(s.EmergencyContacts) != 2 {
		t.Errorf("contacts not persisted: %v", s.EmergencyContacts)
	}
}

func TestUpdateLocationLastWriteWins(t *testing.T) {
	svc, _, locations, _ := newTestService()
	userID := mustUUID(t)

	if _, err := svc.UpdateLocation(context.Background(), userID, 43.0, 76.0); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	if _, err := svc.UpdateLocation(context.Background(), userID, 51.1, 71.4); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}

	loc := locations.byUser[userID]
	if loc == nil {
		t.Fatal("location not stored")
	}
	if loc.Latitude != 51.1 || loc.Longitude != 71.4 {
		t.Errorf("expected the second write to win, got %v %v", loc.Latitude, loc.Longitude)
	}
}

func TestBindDeviceConflictsAcrossDevices(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := mustUUID(t)

	first := &models.DeviceBinding{
		UserID:           userID,
		DeviceID:         "device-a",
		SubscriptionType: "premium",
	}
	if err := svc.BindDevice(context.Background(), first); err != nil {
		t.Fatalf("BindDevice: %v", err)
	}

	// Rebinding the same device refreshes, no conflict.
	if err := svc.BindDevice(context.Background(), first); err != nil {
		t.Fatalf("rebind same device: %v", err)
	}

	other := &models.DeviceBinding{
		UserID:           userID,
		DeviceID:         "device-b",
		SubscriptionType: "premium",
	}
	if err := svc.BindDevice(context.Background(), other); !errors.Is(err, types.ErrDeviceBoundElsewhere) {
		t.Fatalf("expected ErrDeviceBoundElsewhere, got %v", err)
	}
}

func TestCheckDevice(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := mustUUID(t)

	if _, err := svc.CheckDevice(context.Background(), userID, "unknown"); !errors.Is(err, types.ErrNoDeviceBinding) {
		t.Fatalf("expected ErrNoDeviceBinding, got %v", err)
	}

	b := &models.DeviceBinding{
		UserID:           userID,
		DeviceID:         "device-a",
		SubscriptionType: "premium",
	}
	if err := svc.BindDevice(context.Background(), b); err != nil {
		t.Fatalf("BindDevice: %v", err)
	}

	got, err := svc.CheckDevice(context.Background(), userID, "device-a")
	if err != nil {
		t.Fatalf("CheckDevice: %v", err)
	}
	if got.SubscriptionType != "premium" {
		t.Errorf("unexpected binding: %+v", got)
	}
}
