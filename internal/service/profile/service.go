package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/trm"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// Service covers per-user state that is not emergency or chat: alert
// settings, last known location, device bindings.
type Service struct {
	settings  SettingsRepo
	locations LocationRepo
	devices   DeviceRepo
	trm       trm.TxManager

	log logger.Logger
}

func NewService(settings SettingsRepo, locations LocationRepo, devices DeviceRepo, trm trm.TxManager, log logger.Logger) *Service {
	return &Service{
		settings:  settings,
		locations: locations,
		devices:   devices,
		trm:       trm,
		log:       log,
	}
}

// Settings returns the user's alert settings, falling back to defaults when
// the user never saved any.
func (s *Service) Settings(ctx context.Context, userID uuid.UUID) (*models.AlertSettings, error) {
	ctx = wrap.WithAction(ctx, "get_alert_settings")

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return models.DefaultAlertSettings(userID), nil
		}
		return nil, wrap.Error(ctx, fmt.Errorf("could not get alert settings: %w", err))
	}

	return settings, nil
}

// UpdateSettings replaces the user's settings wholesale, last write wins.
func (s *Service) UpdateSettings(ctx context.Context, userID uuid.UUID, contacts []string, alertDistanceKm float64) (*models.AlertSettings, error) {
	ctx = wrap.WithAction(ctx, "update_alert_settings")
	ctx = wrap.WithUserID(ctx, userID.String())

	settings := &models.AlertSettings{
		UserID:            userID,
		EmergencyContacts: contacts,
		AlertDistanceKm:   alertDistanceKm,
	}

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.settings.Upsert(ctx, settings); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not upsert alert settings: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// UpdateLocation records the user's last known position, overwriting the
// previous one. No history, no broadcast.
func (s *Service) UpdateLocation(ctx context.Context, userID uuid.UUID, latitude, longitude float64) (*models.UserLocation, error) {
	ctx = wrap.WithAction(ctx, "update_location")
	ctx = wrap.WithUserID(ctx, userID.String())

	loc := &models.UserLocation{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
	}

	if err := s.locations.Upsert(ctx, loc); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not upsert location: %w", err))
	}

	return loc, nil
}

// BindDevice ties a subscription to a device. Rebinding the same device
// refreshes the record; a subscription already bound to a different device
// conflicts with ErrDeviceBoundElsewhere.
func (s *Service) BindDevice(ctx context.Context, binding *models.DeviceBinding) error {
	ctx = wrap.WithAction(ctx, "bind_device")
	ctx = wrap.WithUserID(ctx, binding.UserID.String())

	return s.trm.Do(ctx, func(ctx context.Context) error {
		existing, err := s.devices.FindBySubscription(ctx, binding.UserID, binding.SubscriptionType)
		if err != nil && !errors.Is(err, types.ErrNoDeviceBinding) {
			return wrap.Error(ctx, fmt.Errorf("could not look up device binding: %w", err))
		}

		if existing != nil && existing.DeviceID != binding.DeviceID {
			return types.ErrDeviceBoundElsewhere
		}

		if err := s.devices.Upsert(ctx, binding); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not upsert device binding: %w", err))
		}

		return nil
	})
}

// CheckDevice returns the binding for this user+device pair, or
// ErrNoDeviceBinding when the device was never bound.
func (s *Service) CheckDevice(ctx context.Context, userID uuid.UUID, deviceID string) (*models.DeviceBinding, error) {
	ctx = wrap.WithAction(ctx, "check_device")

	binding, err := s.devices.FindByDevice(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, types.ErrNoDeviceBinding) {
			return nil, err
		}
		return nil, wrap.Error(ctx, fmt.Errorf("could not look up device binding: %w", err))
	}

	return binding, nil
}
