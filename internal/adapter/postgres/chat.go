package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saferide-app/saferide-go/internal/domain/models"
	"github.com/saferide-app/saferide-go/internal/domain/types"
	"github.com/saferide-app/saferide-go/pkg/uuid"
)

type ChatRepo struct {
	db *pgxpool.Pool
}

func NewChatRepo(db *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Create(ctx context.Context, m *models.ChatMessage) error {
	q := TxorDB(ctx, r.db)

	query := `INSERT INTO chat_messages (id, user_id, user_name, message, latitude, longitude, message_type)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING created_at;`

	err := q.QueryRow(ctx, query,
		m.ID, m.UserID, m.UserName, m.Message, m.Latitude, m.Longitude, m.MessageType,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("chat repo: Create: %w", err)
	}

	return nil
}

// ListSince returns messages newer than since, newest first, capped at limit.
// Callers over-fetch here (limit*3) because the proximity filter runs after
// this query and discards out-of-radius rows; with uneven message density the
// final result can still under-fill the requested page.
func (r *ChatRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]models.ChatMessage, error) {
	q := TxorDB(ctx, r.db)

	query := `
        SELECT id, user_id, user_name, message, latitude, longitude, message_type, created_at
        FROM chat_messages
        WHERE created_at >= $1
        ORDER BY created_at DESC
        LIMIT $2;`

	rows, err := q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("chat repo: ListSince: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.UserName, &m.Message,
			&m.Latitude, &m.Longitude, &m.MessageType, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("chat repo: ListSince scan: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat repo: ListSince rows: %w", err)
	}

	return messages, nil
}

// DeleteOwned removes a message only when it belongs to userID. Absent and
// not-owned both come back as ErrMessageNotFound.
func (r *ChatRepo) DeleteOwned(ctx context.Context, userID, messageID uuid.UUID) error {
	q := TxorDB(ctx, r.db)

	query := `DELETE FROM chat_messages WHERE id = $1 AND user_id = $2;`

	cmdTag, err := q.Exec(ctx, query, messageID, userID)
	if err != nil {
		return fmt.Errorf("chat repo: DeleteOwned: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return types.ErrMessageNotFound
	}

	return nil
}
