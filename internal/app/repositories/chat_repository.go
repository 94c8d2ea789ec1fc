package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// ChatRepository handles database operations for chat threads and messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

const threadColumns = `id, participant_low, participant_high, participant_info, last_message_text, last_message_ts, created_at`

func scanThread(row pgx.Row) (*models.ChatThread, error) {
	var t models.ChatThread
	err := row.Scan(
		&t.ID, &t.ParticipantLow, &t.ParticipantHigh, &t.ParticipantInfo,
		&t.LastMessageText, &t.LastMessageTs, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByPair returns every thread stored for the sorted participant pair,
// oldest first. The unique pair constraint keeps new data to at most one row;
// rows predating the constraint may still yield more.
func (r *ChatRepository) FindByPair(ctx context.Context, low, high string) ([]*models.ChatThread, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM chat_threads
		WHERE participant_low = $1 AND participant_high = $2
		ORDER BY created_at, id
	`, threadColumns)

	rows, err := r.db.Query(ctx, query, low, high)
	if err != nil {
		return nil, fmt.Errorf("error querying threads by pair: %w", err)
	}
	defer rows.Close()

	var threads []*models.ChatThread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning thread row: %w", err)
		}
		threads = append(threads, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thread rows: %w", err)
	}

	return threads, nil
}

// InsertConditional attempts to create the thread for its participant pair.
// When a concurrent resolver wins the race the conflicting insert is a no-op
// and the surviving row is read back, so both callers converge on one thread.
func (r *ChatRepository) InsertConditional(ctx context.Context, t *models.ChatThread) (*models.ChatThread, error) {
	query := `
		INSERT INTO chat_threads (id, participant_low, participant_high, participant_info, last_message_text, last_message_ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT chat_threads_pair_key DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		t.ID, t.ParticipantLow, t.ParticipantHigh, t.ParticipantInfo, t.LastMessageText, t.LastMessageTs,
	)
	if err != nil {
		return nil, fmt.Errorf("error inserting thread: %w", err)
	}

	readback := fmt.Sprintf(`
		SELECT %s
		FROM chat_threads
		WHERE participant_low = $1 AND participant_high = $2
		ORDER BY created_at, id
		LIMIT 1
	`, threadColumns)

	stored, err := scanThread(r.db.QueryRow(ctx, readback, t.ParticipantLow, t.ParticipantHigh))
	if err != nil {
		return nil, fmt.Errorf("error reading back thread: %w", err)
	}

	return stored, nil
}

// GetByID retrieves a thread by id
func (r *ChatRepository) GetByID(ctx context.Context, threadID string) (*models.ChatThread, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_threads WHERE id = $1`, threadColumns)

	t, err := scanThread(r.db.QueryRow(ctx, query, threadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, fmt.Errorf("error retrieving thread: %w", err)
	}

	return t, nil
}

// ListForUser returns every thread the user participates in, most recently
// active first.
func (r *ChatRepository) ListForUser(ctx context.Context, userID string) ([]*models.ChatThread, error) {
	queryBuilder := squirrel.Select(
		"id", "participant_low", "participant_high", "participant_info",
		"last_message_text", "last_message_ts", "created_at",
	).
		From("chat_threads").
		Where(squirrel.Or{
			squirrel.Eq{"participant_low": userID},
			squirrel.Eq{"participant_high": userID},
		}).
		OrderBy("last_message_ts DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying user threads: %w", err)
	}
	defer rows.Close()

	var threads []*models.ChatThread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning thread row: %w", err)
		}
		threads = append(threads, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thread rows: %w", err)
	}

	return threads, nil
}

// InsertMessage appends a message to a thread
func (r *ChatRepository) InsertMessage(ctx context.Context, m *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, thread_id, sender_id, body, ts)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, m.ID, m.ThreadID, m.SenderID, m.Body, m.Ts)
	if err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}

	return nil
}

// ListMessages returns messages for a thread in ascending timestamp order.
// When before > 0 only messages older than it are returned; limit caps the
// page size (0 means no cap).
func (r *ChatRepository) ListMessages(ctx context.Context, threadID string, before int64, limit int) ([]*models.ChatMessage, error) {
	queryBuilder := squirrel.Select("id", "thread_id", "sender_id", "body", "ts").
		From("chat_messages").
		Where(squirrel.Eq{"thread_id": threadID}).
		OrderBy("ts", "id").
		PlaceholderFormat(squirrel.Dollar)

	if before > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Lt{"ts": before})
	}
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		err := rows.Scan(&m.ID, &m.ThreadID, &m.SenderID, &m.Body, &m.Ts)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// RefreshLastMessage recomputes the thread preview from the stored message
// with the highest timestamp. Deriving it from the table instead of the
// message just written keeps the preview correct when concurrent senders
// land out of timestamp order.
func (r *ChatRepository) RefreshLastMessage(ctx context.Context, threadID string) error {
	query := `
		UPDATE chat_threads t
		SET last_message_text = latest.body,
		    last_message_ts = latest.ts
		FROM (
			SELECT body, ts
			FROM chat_messages
			WHERE thread_id = $1
			ORDER BY ts DESC, id DESC
			LIMIT 1
		) AS latest
		WHERE t.id = $1
	`

	_, err := r.db.Exec(ctx, query, threadID)
	if err != nil {
		return fmt.Errorf("error refreshing thread preview: %w", err)
	}

	return nil
}

// DeleteLegacyDuplicates removes every thread for the pair except the one
// retained, reattaching their messages first. Used when rows predating the
// unique pair constraint are encountered.
func (r *ChatRepository) DeleteLegacyDuplicates(ctx context.Context, low, high, keepID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE chat_messages
		SET thread_id = $3
		WHERE thread_id IN (
			SELECT id FROM chat_threads
			WHERE participant_low = $1 AND participant_high = $2 AND id <> $3
		)
	`, low, high, keepID)
	if err != nil {
		return fmt.Errorf("error reattaching duplicate thread messages: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		DELETE FROM chat_threads
		WHERE participant_low = $1 AND participant_high = $2 AND id <> $3
	`, low, high, keepID)
	if err != nil {
		return fmt.Errorf("error deleting duplicate threads: %w", err)
	}

	return nil
}
