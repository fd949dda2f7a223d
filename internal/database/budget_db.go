package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func CreateBudget(pool *pgxpool.Pool, budget *models.MonthlyBudget) error {
	query := `
		INSERT INTO monthly_budgets (user_id, category_id, month_year, budget_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := pool.QueryRow(context.Background(), query,
		budget.UserID,
		budget.CategoryID,
		budget.MonthYear,
		budget.BudgetAmount).Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении бюджета: %v", err)
	}
	return nil
}

func GetBudgetByID(pool *pgxpool.Pool, budgetID int) (*models.MonthlyBudget, error) {
	query := `
		SELECT id, user_id, category_id, month_year, budget_amount
		FROM monthly_budgets
		WHERE id = $1`

	budget := &models.MonthlyBudget{}
	err := pool.QueryRow(context.Background(), query, budgetID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.MonthYear,
		&budget.BudgetAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бюджет с ID %d не найден", budgetID)
		}
		return nil, fmt.Errorf("ошибка при получении бюджета: %v", err)
	}
	return budget, nil
}

func UpdateBudget(pool *pgxpool.Pool, budget *models.MonthlyBudget) error {
	query := `
		UPDATE monthly_budgets
		SET category_id = $1, month_year = $2, budget_amount = $3
		WHERE id = $4 AND user_id = $5`

	result, err := pool.Exec(context.Background(), query,
		budget.CategoryID,
		budget.MonthYear,
		budget.BudgetAmount,
		budget.ID,
		budget.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d не найден", budget.ID)
	}
	return nil
}

func DeleteBudget(pool *pgxpool.Pool, budgetID, userID int) error {
	query := `
		DELETE FROM monthly_budgets
		WHERE id = $1 AND user_id = $2`

	result, err := pool.Exec(context.Background(), query, budgetID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d не найден", budgetID)
	}
	return nil
}

// GetBudgetStatus возвращает бюджеты текущего месяца с потраченными суммами
func GetBudgetStatus(pool *pgxpool.Pool, userID int) ([]models.MonthlyBudget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month_year, b.budget_amount,
		       c.category_name,
		       COALESCE(SUM(t.amount), 0) AS spent_amount
		FROM monthly_budgets b
		JOIN transaction_categories c ON b.category_id = c.id
		LEFT JOIN transactions t ON b.category_id = t.category_id
		    AND t.user_id = b.user_id
		    AND t.transaction_type = 'expense'
		    AND DATE_TRUNC('month', t.transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
		WHERE b.user_id = $1
		  AND DATE_TRUNC('month', b.month_year) = DATE_TRUNC('month', CURRENT_DATE)
		GROUP BY b.id, c.category_name
		ORDER BY c.category_name`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статуса бюджетов: %v", err)
	}
	defer rows.Close()

	var budgets []models.MonthlyBudget
	for rows.Next() {
		var b models.MonthlyBudget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.MonthYear, &b.BudgetAmount,
			&b.CategoryName, &b.SpentAmount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// CheckBudgetWarning сравнивает расход с бюджетом категории за месяц даты
// операции. Потраченная сумма считается без добавляемой операции; превышение
// не блокирует запись, предупреждение показывается пользователю.
func CheckBudgetWarning(pool *pgxpool.Pool, userID, categoryID int, amount float64, date time.Time) (*models.BudgetWarning, error) {
	query := `
		SELECT c.category_name, b.budget_amount,
		       COALESCE((
		           SELECT SUM(t.amount) FROM transactions t
		           WHERE t.category_id = b.category_id
		             AND t.user_id = b.user_id
		             AND t.transaction_type = 'expense'
		             AND DATE_TRUNC('month', t.transaction_date) = DATE_TRUNC('month', b.month_year)
		       ), 0) AS spent_amount
		FROM monthly_budgets b
		JOIN transaction_categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		  AND b.category_id = $2
		  AND DATE_TRUNC('month', b.month_year) = DATE_TRUNC('month', $3::date)`

	var categoryName string
	var budgetAmount, spentAmount float64
	err := pool.QueryRow(context.Background(), query, userID, categoryID, date).Scan(
		&categoryName, &budgetAmount, &spentAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Бюджета на категорию нет, предупреждать не о чем
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка проверки бюджета: %v", err)
	}

	newTotal := spentAmount + amount
	if newTotal <= budgetAmount {
		return nil, nil
	}

	return &models.BudgetWarning{
		CategoryName: categoryName,
		BudgetAmount: budgetAmount,
		SpentAmount:  spentAmount,
		NewTotal:     newTotal,
		Remaining:    budgetAmount - newTotal,
	}, nil
}

// RenewMonthlyBudgets переносит бюджеты прошлого месяца на текущий.
// Запускается по расписанию первого числа; уже созданные строки не дублирует.
func RenewMonthlyBudgets(pool *pgxpool.Pool) error {
	query := `
		INSERT INTO monthly_budgets (user_id, category_id, month_year, budget_amount)
		SELECT b.user_id, b.category_id, DATE_TRUNC('month', CURRENT_DATE), b.budget_amount
		FROM monthly_budgets b
		WHERE DATE_TRUNC('month', b.month_year) = DATE_TRUNC('month', CURRENT_DATE - INTERVAL '1 month')
		  AND NOT EXISTS (
			SELECT 1 FROM monthly_budgets n
			WHERE n.user_id = b.user_id
			  AND n.category_id = b.category_id
			  AND DATE_TRUNC('month', n.month_year) = DATE_TRUNC('month', CURRENT_DATE)
		  )`

	_, err := pool.Exec(context.Background(), query)
	if err != nil {
		return fmt.Errorf("ошибка продления бюджетов: %v", err)
	}
	return nil
}
