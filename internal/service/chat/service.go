package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/geo"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	"github.com/saferide-app/saferide-go/pkg/metrics"
	"github.com/saferide-app/saferide-go/pkg/trm"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

const (
	// retentionWindow bounds how far back nearby queries look. Older messages
	// stay in storage but are never served.
	retentionWindow = 24 * time.Hour

	// overFetchFactor compensates for rows the proximity filter discards.
	// A heuristic: with uneven message density the page can still under-fill.
	overFetchFactor = 3

	defaultNearbyLimit = 50
)

type Service struct {
	messages ChatRepo
	settings SettingsReader
	bus      EventBus
	trm      trm.TxManager

	serviceName string
	log         logger.Logger
}

func NewService(messages ChatRepo, settings SettingsReader, bus EventBus, trm trm.TxManager, serviceName string, log logger.Logger) *Service {
	return &Service{
		messages:    messages,
		settings:    settings,
		bus:         bus,
		trm:         trm,
		serviceName: serviceName,
		log:         log,
	}
}

// Send persists a message and pushes it to every live connection. The event
// carries the sender's configured alert radius so clients can judge relevance
// locally; socket delivery itself is not distance-filtered.
func (s *Service) Send(ctx context.Context, user *models.User, text string, latitude, longitude float64, kind types.MessageKind) (*models.ChatMessage, error) {
	ctx = wrap.WithAction(ctx, "send_chat_message")
	ctx = wrap.WithUserID(ctx, user.ID.String())

	id, err := uuid.New()
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not generate message id: %w", err))
	}

	m := &models.ChatMessage{
		ID:          id,
		UserID:      user.ID,
		UserName:    user.Name,
		Message:     text,
		Latitude:    latitude,
		Longitude:   longitude,
		MessageType: kind,
	}

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.messages.Create(ctx, m); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not create chat message: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ChatMessagesTotal.WithLabelValues(s.serviceName, string(kind)).Inc()

	s.bus.Publish(ctx, models.NewChatMessageEvent{
		MessageID:       m.ID,
		UserName:        m.UserName,
		Message:         m.Message,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		MessageType:     m.MessageType,
		CreatedAt:       m.CreatedAt,
		AlertDistanceKm: s.alertRadius(ctx, user.ID),
	})

	return m, nil
}

// Nearby returns recent messages within the observer's alert radius, newest
// first, excluding the observer's own. Candidates come from the retention
// window with an over-fetch to survive radius discards, then the result is
// truncated back to limit.
func (s *Service) Nearby(ctx context.Context, userID uuid.UUID, latitude, longitude float64, limit int) ([]models.NearbyChatMessage, error) {
	ctx = wrap.WithAction(ctx, "nearby_chat_messages")

	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	since := time.Now().Add(-retentionWindow)

	candidates, err := s.messages.ListSince(ctx, since, limit*overFetchFactor)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not list chat messages: %w", err))
	}

	radius := s.alertRadius(ctx, userID)

	geoCandidates := make([]geo.Candidate[models.ChatMessage], 0, len(candidates))
	for _, m := range candidates {
		geoCandidates = append(geoCandidates, geo.Candidate[models.ChatMessage]{
			OwnerID:   m.UserID,
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
			Payload:   m,
		})
	}

	matches := geo.FilterWithinRadius(latitude, longitude, userID, radius, geoCandidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	nearby := make([]models.NearbyChatMessage, 0, len(matches))
	for _, m := range matches {
		nearby = append(nearby, models.NearbyChatMessage{
			ChatMessage: m.Payload,
			DistanceKm:  m.DistanceKm,
		})
	}

	return nearby, nil
}

// Delete removes the user's own message and announces the deletion. Deleting
// someone else's message, or a missing one, is ErrMessageNotFound either way.
func (s *Service) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	ctx = wrap.WithAction(ctx, "delete_chat_message")
	ctx = wrap.WithUserID(ctx, userID.String())

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.messages.DeleteOwned(ctx, userID, messageID); err != nil {
			if errors.Is(err, types.ErrMessageNotFound) {
				return err
			}
			return wrap.Error(ctx, fmt.Errorf("could not delete chat message: %w", err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, models.ChatMessageDeletedEvent{MessageID: messageID})

	return nil
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
