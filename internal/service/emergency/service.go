package emergency

import (
	"context"
	"errors"
	"fmt"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/geo"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/metrics"
	"github.com/saferide-app/saferide-go/pkg/trm"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

// Service owns the NONE -> ACTIVE -> RESOLVED lifecycle. Records are never
// deleted, only flagged inactive. Events publish strictly after the mutation
// commits: a failed transition broadcasts nothing.
type Service struct {
	emergencies EmergencyRepo
	settings    SettingsReader
	bus         EventBus
	trm         trm.TxManager

	serviceName string
	log         logger.Logger
}

func NewService(emergencies EmergencyRepo, settings SettingsReader, bus EventBus, trm trm.TxManager, serviceName string, log logger.Logger) *Service {
	return &Service{
		emergencies: emergencies,
		settings:    settings,
		bus:         bus,
		trm:         trm,
		serviceName: serviceName,
		log:         log,
	}
}

// Raise activates an emergency for the user. The unique partial index on
// active rows makes the insert itself the exclusivity check, so a concurrent
// double-raise loses cleanly with ErrActiveEmergencyExists.
func (s *Service) Raise(ctx context.Context, user *models.User, latitude, longitude float64) (*models.Emergency, error) {
	ctx = wrap.WithAction(ctx, "raise_emergency")
	ctx = wrap.WithUserID(ctx, user.ID.String())

	id, err := uuid.New()
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not generate emergency id: %w", err))
	}

	e := &models.Emergency{
		ID:           id,
		UserID:       user.ID,
		UserName:     user.Name,
		VehiclePlate: user.VehiclePlate,
		Latitude:     latitude,
		Longitude:    longitude,
	}

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.emergencies.CreateActive(ctx, e); err != nil {
			if errors.Is(err, types.ErrActiveEmergencyExists) {
				return err
			}
			return wrap.Error(ctx, fmt.Errorf("could not create emergency: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.EmergenciesTotal.WithLabelValues(s.serviceName, "raised").Inc()
	metrics.ActiveEmergenciesGauge.WithLabelValues(s.serviceName).Inc()

	ctx = wrap.WithEmergencyID(ctx, e.ID.String())
	s.log.Info(ctx, "emergency raised")

	s.bus.Publish(ctx, models.EmergencyAlertEvent{
		EmergencyID:  e.ID,
		UserName:     e.UserName,
		VehiclePlate: e.VehiclePlate,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		CreatedAt:    e.CreatedAt,
	})

	return e, nil
}

// Cancel resolves the user's active emergency. The repo flips and returns the
// record in one statement, so the resolved event always names the row this
// call actually closed.
func (s *Service) Cancel(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	ctx = wrap.WithAction(ctx, "cancel_emergency")
	ctx = wrap.WithUserID(ctx, userID.String())

	var resolvedID uuid.UUID

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		id, err := s.emergencies.ResolveActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, types.ErrEmergencyNotFound) {
				return err
			}
			return wrap.Error(ctx, fmt.Errorf("could not resolve emergency: %w", err))
		}
		resolvedID = id
		return nil
	})
	if err != nil {
		return uuid.UUID{}, err
	}

	s.recordResolved(wrap.WithEmergencyID(ctx, resolvedID.String()), resolvedID)

	return resolvedID, nil
}

// Deactivate resolves one specific record, only if the user owns it and it is
// still active. Absent and not-owned are indistinguishable to the caller.
func (s *Service) Deactivate(ctx context.Context, userID, emergencyID uuid.UUID) error {
	ctx = wrap.WithAction(ctx, "deactivate_emergency")
	ctx = wrap.WithUserID(ctx, userID.String())
	ctx = wrap.WithEmergencyID(ctx, emergencyID.String())

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.emergencies.ResolveOwnedByID(ctx, userID, emergencyID); err != nil {
			if errors.Is(err, types.ErrEmergencyNotFound) {
				return err
			}
			return wrap.Error(ctx, fmt.Errorf("could not deactivate emergency: %w", err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordResolved(ctx, emergencyID)

	return nil
}

func (s *Service) recordResolved(ctx context.Context, emergencyID uuid.UUID) {
	metrics.EmergenciesTotal.WithLabelValues(s.serviceName, "resolved").Inc()
	metrics.ActiveEmergenciesGauge.WithLabelValues(s.serviceName).Dec()

	s.log.Info(ctx, "emergency resolved")

	s.bus.Publish(ctx, models.EmergencyResolvedEvent{EmergencyID: emergencyID})
}

// Active returns the user's currently active emergency, or ErrEmergencyNotFound.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) (*models.Emergency, error) {
	ctx = wrap.WithAction(ctx, "get_active_emergency")

	e, err := s.emergencies.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrEmergencyNotFound) {
			return nil, err
		}
		return nil, wrap.Error(ctx, fmt.Errorf("could not find active emergency: %w", err))
	}

	return e, nil
}

// Nearby returns active emergencies within the observer's configured alert
// radius, excluding the observer's own. Distances are computed server-side.
func (s *Service) Nearby(ctx context.Context, userID uuid.UUID, latitude, longitude float64) ([]models.NearbyEmergency, error) {
	ctx = wrap.WithAction(ctx, "nearby_emergencies")

	radius := s.alertRadius(ctx, userID)

	active, err := s.emergencies.ListActive(ctx)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not list active emergencies: %w", err))
	}

	candidates := make([]geo.Candidate[models.Emergency], 0, len(active))
	for _, e := range active {
		candidates = append(candidates, geo.Candidate[models.Emergency]{
			OwnerID:   e.UserID,
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
			Payload:   e,
		})
	}

	matches := geo.FilterWithinRadius(latitude, longitude, userID, radius, candidates)

	nearby := make([]models.NearbyEmergency, 0, len(matches))
	for _, m := range matches {
		nearby = append(nearby, models.NearbyEmergency{
			Emergency:  m.Payload,
			DistanceKm: m.DistanceKm,
		})
	}

	return nearby, nil
}

func (s *Service) alertRadius(ctx context.Context, userID uuid.UUID) float64 {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			s.log.Warn(ctx, "failed to load alert settings, using default radius", "err", err.Error())
		}
		return types.DefaultAlertDistanceKm
	}
	return settings.AlertDistanceKm
}
