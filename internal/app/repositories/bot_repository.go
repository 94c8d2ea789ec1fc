package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/venturelink/backend/internal/app/models"
)

// BotRepository handles database operations for assistant exchanges
type BotRepository struct {
	db *pgxpool.Pool
}

// NewBotRepository creates a new BotRepository
func NewBotRepository(db *pgxpool.Pool) *BotRepository {
	return &BotRepository{db: db}
}

// Insert stores one prompt/response exchange
func (r *BotRepository) Insert(ctx context.Context, e *models.BotExchange) error {
	query := `
		INSERT INTO bot_messages (id, user_id, prompt, response, ts)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, e.ID, e.UserID, e.Prompt, e.Response, e.Ts)
	if err != nil {
		return fmt.Errorf("error inserting assistant exchange: %w", err)
	}

	return nil
}

// ListByUser returns a user's exchanges in ascending timestamp order
func (r *BotRepository) ListByUser(ctx context.Context, userID string) ([]*models.BotExchange, error) {
	queryBuilder := squirrel.Select("id", "user_id", "prompt", "response", "ts").
		From("bot_messages").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("ts", "id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying assistant exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []*models.BotExchange
	for rows.Next() {
		var e models.BotExchange
		err := rows.Scan(&e.ID, &e.UserID, &e.Prompt, &e.Response, &e.Ts)
		if err != nil {
			return nil, fmt.Errorf("error scanning exchange row: %w", err)
		}
		exchanges = append(exchanges, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rows: %w", err)
	}

	return exchanges, nil
}
