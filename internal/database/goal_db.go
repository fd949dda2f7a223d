package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal" // Для точных денежных значений
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

// CreateGoal добавляет новую цель накопления
func CreateGoal(pool *pgxpool.Pool, goal *models.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (user_id, goal_name, target_amount, current_amount, deadline_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := pool.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.Deadline).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении цели: %v", err)
	}
	return nil
}

// GetGoalByID извлекает цель по ID
func GetGoalByID(pool *pgxpool.Pool, goalID int) (*models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, goal_name, target_amount, current_amount, deadline_date, is_completed, created_at
		FROM savings_goals
		WHERE id = $1`

	goal := &models.SavingsGoal{}
	err := pool.QueryRow(context.Background(), query, goalID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.Deadline,
		&goal.IsCompleted,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("цель с ID %d не найдена", goalID)
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}
	return goal, nil
}

// GetAllGoals извлекает все цели пользователя
func GetAllGoals(pool *pgxpool.Pool, userID int) ([]models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, goal_name, target_amount, current_amount, deadline_date, is_completed, created_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY deadline_date`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %v", err)
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		var goal models.SavingsGoal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount,
			&goal.CurrentAmount, &goal.Deadline, &goal.IsCompleted, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// UpdateGoal обновляет информацию о цели
func UpdateGoal(pool *pgxpool.Pool, goal *models.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET goal_name = $1, target_amount = $2, deadline_date = $3
		WHERE id = $4 AND user_id = $5`

	_, err := pool.Exec(context.Background(), query,
		goal.Name,
		goal.TargetAmount,
		goal.Deadline,
		goal.ID,
		goal.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	return nil
}

// DeleteGoal удаляет цель пользователя по ID
func DeleteGoal(pool *pgxpool.Pool, goalID, userID int) error {
	query := `
		DELETE FROM savings_goals
		WHERE id = $1 AND user_id = $2`

	result, err := pool.Exec(context.Background(), query, goalID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d не найдена", goalID)
	}
	return nil
}

// AddProgressToGoal прибавляет взнос к накоплению и при достижении
// целевой суммы отмечает цель выполненной. Взнос и флаг выполнения
// применяются одной транзакцией
func AddProgressToGoal(pool *pgxpool.Pool, goalID, userID int, progress decimal.Decimal) error {
	if progress.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("взнос должен быть больше нуля")
	}

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %v", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $1
		WHERE id = $2 AND user_id = $3
		RETURNING current_amount, target_amount`

	var current, target decimal.Decimal
	err = tx.QueryRow(ctx, query, progress, goalID, userID).Scan(&current, &target)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("цель с ID %d не найдена", goalID)
		}
		return fmt.Errorf("ошибка при добавлении взноса к цели: %v", err)
	}

	if current.GreaterThanOrEqual(target) {
		if _, err := tx.Exec(ctx,
			`UPDATE savings_goals SET is_completed = TRUE WHERE id = $1`, goalID); err != nil {
			return fmt.Errorf("не удалось отметить цель выполненной: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}
