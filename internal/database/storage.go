package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/models"
)

// CreateUser создаёт профиль с минимальным набором полей.
// Возвращает ErrUserExists, если профиль с таким ID уже есть.
func (db *DB) CreateUser(ctx context.Context, userID int64, firstName, lastName string) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO users (user_id, first_name, last_name) VALUES (?, ?, ?)",
		userID, firstName, lastName,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrUserExists
		}
		return fmt.Errorf("не удалось создать пользователя: %w", err)
	}
	return nil
}

// GetUser возвращает профиль пользователя или ErrUserNotFound.
func (db *DB) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT user_id, first_name, last_name, goal, experience, weight, height, days, plan, plan_date FROM users WHERE user_id = ?",
		userID,
	)

	var u models.User
	var plan, planDate sql.NullString
	err := row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Goal, &u.Experience,
		&u.Weight, &u.Height, &u.Days, &plan, &planDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать пользователя: %w", err)
	}
	u.Plan = plan.String
	u.PlanDate = planDate.String
	return &u, nil
}

// Обновления отдельных полей. Каждое — один атомарный UPDATE; имена колонок
// зашиты в запросах, а не принимаются от вызывающего кода.

func (db *DB) UpdateHeight(ctx context.Context, userID int64, height float64) error {
	return db.updateUser(ctx, "UPDATE users SET height = ? WHERE user_id = ?", height, userID)
}

func (db *DB) UpdateWeight(ctx context.Context, userID int64, weight float64) error {
	return db.updateUser(ctx, "UPDATE users SET weight = ? WHERE user_id = ?", weight, userID)
}

func (db *DB) UpdateDays(ctx context.Context, userID int64, days int) error {
	return db.updateUser(ctx, "UPDATE users SET days = ? WHERE user_id = ?", days, userID)
}

func (db *DB) UpdateExperience(ctx context.Context, userID int64, experience string) error {
	return db.updateUser(ctx, "UPDATE users SET experience = ? WHERE user_id = ?", experience, userID)
}

func (db *DB) UpdateGoal(ctx context.Context, userID int64, goal string) error {
	return db.updateUser(ctx, "UPDATE users SET goal = ? WHERE user_id = ?", goal, userID)
}

func (db *DB) UpdateName(ctx context.Context, userID int64, firstName, lastName string) error {
	return db.updateUser(ctx, "UPDATE users SET first_name = ?, last_name = ? WHERE user_id = ?", firstName, lastName, userID)
}

// SavePlan сохраняет сгенерированный план и время генерации.
func (db *DB) SavePlan(ctx context.Context, userID int64, plan string) error {
	now := time.Now().Format(time.RFC3339)
	return db.updateUser(ctx, "UPDATE users SET plan = ?, plan_date = ? WHERE user_id = ?", plan, now, userID)
}

// updateUser выполняет UPDATE и сигнализирует ErrUserNotFound,
// если ни одна строка не была изменена. Последний аргумент — user_id.
func (db *DB) updateUser(ctx context.Context, query string, args ...any) error {
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("не удалось обновить пользователя: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить результат обновления: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddWorkout записывает выполненную тренировку за указанную дату.
// Несколько записей за один день допустимы.
func (db *DB) AddWorkout(ctx context.Context, userID int64, date string) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO workouts (user_id, date) VALUES (?, ?)",
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("не удалось записать тренировку: %w", err)
	}
	return nil
}

// GetWorkouts возвращает даты тренировок, отсортированные по убыванию.
func (db *DB) GetWorkouts(ctx context.Context, userID int64) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT date FROM workouts WHERE user_id = ? ORDER BY date DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать тренировки: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("не удалось прочитать дату тренировки: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения тренировок: %w", err)
	}
	return dates, nil
}

// DeleteUser удаляет профиль вместе с тренировками и лимитами — одной транзакцией.
func (db *DB) DeleteUser(ctx context.Context, userID int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		"DELETE FROM workouts WHERE user_id = ?",
		"DELETE FROM rate_limits WHERE user_id = ?",
		"DELETE FROM users WHERE user_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, query, userID); err != nil {
			return fmt.Errorf("не удалось удалить данные пользователя: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось завершить удаление: %w", err)
	}
	return nil
}
