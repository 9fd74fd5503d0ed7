package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Лимит запросов на генерацию плана: не более generationLimit за окно.
const (
	generationLimit = 3
	rateLimitWindow = time.Minute
)

// CheckRateLimit проверяет и учитывает запрос на генерацию.
// Возвращает false, если лимит за текущее окно исчерпан.
func (db *DB) CheckRateLimit(ctx context.Context, userID int64) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var windowStart string
	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT window_start, count FROM rate_limits WHERE user_id = ?",
		userID,
	).Scan(&windowStart, &count)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			"INSERT INTO rate_limits (user_id, window_start, count) VALUES (?, ?, 1)",
			userID, now.Format(time.RFC3339),
		)
		if err != nil {
			return false, fmt.Errorf("не удалось создать запись лимита: %w", err)
		}
	case err != nil:
		return false, fmt.Errorf("не удалось прочитать лимит: %w", err)
	default:
		start, parseErr := time.Parse(time.RFC3339, windowStart)
		if parseErr != nil || now.Sub(start) >= rateLimitWindow {
			// Окно истекло (или запись повреждена) — начинаем новое
			_, err = tx.ExecContext(ctx,
				"UPDATE rate_limits SET window_start = ?, count = 1 WHERE user_id = ?",
				now.Format(time.RFC3339), userID,
			)
			if err != nil {
				return false, fmt.Errorf("не удалось сбросить лимит: %w", err)
			}
		} else if count < generationLimit {
			_, err = tx.ExecContext(ctx,
				"UPDATE rate_limits SET count = count + 1 WHERE user_id = ?",
				userID,
			)
			if err != nil {
				return false, fmt.Errorf("не удалось обновить лимит: %w", err)
			}
		} else {
			return false, nil
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("не удалось сохранить лимит: %w", err)
	}
	return true, nil
}
