package database

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
	"golang.org/x/net/context"
)

// GetTotalBalance возвращает доход, расход и итог за всё время
func GetTotalBalance(pool *pgxpool.Pool, userID int) (income, expense, balance float64, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense
		FROM transactions
		WHERE user_id = $1`

	err = pool.QueryRow(context.Background(), query, userID).Scan(&income, &expense)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error fetching total balance: %v", err)
	}
	return income, expense, income - expense, nil
}

// GetMonthlyMetrics возвращает доход и расход текущего месяца
func GetMonthlyMetrics(pool *pgxpool.Pool, userID int) (income, expense float64, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0) AS monthly_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0) AS monthly_expense
		FROM transactions
		WHERE user_id = $1
		  AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)`

	err = pool.QueryRow(context.Background(), query, userID).Scan(&income, &expense)
	if err != nil {
		return 0, 0, fmt.Errorf("error fetching monthly metrics: %v", err)
	}
	return income, expense, nil
}

// GetTodayMetrics возвращает доход и расход за сегодня
func GetTodayMetrics(pool *pgxpool.Pool, userID int) (income, expense float64, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0) AS today_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0) AS today_expense
		FROM transactions
		WHERE user_id = $1 AND transaction_date = CURRENT_DATE`

	err = pool.QueryRow(context.Background(), query, userID).Scan(&income, &expense)
	if err != nil {
		return 0, 0, fmt.Errorf("error fetching today metrics: %v", err)
	}
	return income, expense, nil
}

// GetSavingsSummary возвращает сводку по целям накопления
func GetSavingsSummary(pool *pgxpool.Pool, userID int) (map[string]interface{}, error) {
	query := `
		SELECT
			COUNT(*) AS total_goals,
			COALESCE(SUM(target_amount), 0) AS total_target,
			COALESCE(SUM(current_amount), 0) AS total_saved,
			COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed_goals
		FROM savings_goals
		WHERE user_id = $1`

	var totalGoals, completedGoals int
	var totalTarget, totalSaved float64
	err := pool.QueryRow(context.Background(), query, userID).Scan(
		&totalGoals, &totalTarget, &totalSaved, &completedGoals)
	if err != nil {
		return nil, fmt.Errorf("error fetching savings summary: %v", err)
	}

	percentage := 0.0
	if totalTarget > 0 {
		percentage = totalSaved / totalTarget * 100
	}

	return map[string]interface{}{
		"total_goals":     totalGoals,
		"completed_goals": completedGoals,
		"total_target":    totalTarget,
		"total_saved":     totalSaved,
		"percentage":      percentage,
	}, nil
}

// GetWalletSummary читает представление wallet_summary
func GetWalletSummary(pool *pgxpool.Pool, userID int) ([]map[string]interface{}, error) {
	query := `
		SELECT id, wallet_name, balance, color_code, is_default, is_active,
		       type_name, icon_class, month_income, month_expense
		FROM wallet_summary
		WHERE user_id = $1
		ORDER BY is_default DESC, balance DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching wallet summary: %v", err)
	}
	defer rows.Close()

	var summary []map[string]interface{}
	for rows.Next() {
		var id int
		var name, color, typeName, icon string
		var isDefault, isActive bool
		var balance, monthIncome, monthExpense float64
		if err := rows.Scan(&id, &name, &balance, &color, &isDefault, &isActive,
			&typeName, &icon, &monthIncome, &monthExpense); err != nil {
			return nil, err
		}
		summary = append(summary, map[string]interface{}{
			"id":            id,
			"wallet_name":   name,
			"balance":       balance,
			"color_code":    color,
			"is_default":    isDefault,
			"is_active":     isActive,
			"type_name":     typeName,
			"icon_class":    icon,
			"month_income":  monthIncome,
			"month_expense": monthExpense,
		})
	}
	return summary, rows.Err()
}

// GetTopExpenseCategories возвращает самые затратные категории текущего месяца
func GetTopExpenseCategories(pool *pgxpool.Pool, userID, limit int) ([]map[string]interface{}, error) {
	query := `
		SELECT c.category_name,
		       SUM(t.amount) AS total_amount,
		       COUNT(t.id) AS transaction_count
		FROM transactions t
		JOIN transaction_categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND t.transaction_type = 'expense'
		  AND DATE_TRUNC('month', t.transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
		GROUP BY c.category_name
		ORDER BY total_amount DESC
		LIMIT $2`

	rows, err := pool.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching top categories: %v", err)
	}
	defer rows.Close()

	var categories []map[string]interface{}
	for rows.Next() {
		var name string
		var total float64
		var count int
		if err := rows.Scan(&name, &total, &count); err != nil {
			return nil, err
		}
		categories = append(categories, map[string]interface{}{
			"category_name":     name,
			"total_amount":      total,
			"transaction_count": count,
		})
	}
	return categories, rows.Err()
}

// GetMonthlyTrend возвращает доход и расход по месяцам за последние months месяцев
func GetMonthlyTrend(pool *pgxpool.Pool, userID, months int) ([]map[string]interface{}, error) {
	query := `
		SELECT TO_CHAR(transaction_date, 'YYYY-MM') AS month_year,
		       SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END) AS monthly_income,
		       SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END) AS monthly_expense
		FROM transactions
		WHERE user_id = $1
		  AND transaction_date >= CURRENT_DATE - $2 * INTERVAL '1 month'
		GROUP BY TO_CHAR(transaction_date, 'YYYY-MM')
		ORDER BY month_year DESC
		LIMIT $2`

	rows, err := pool.Query(context.Background(), query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("error fetching monthly trend: %v", err)
	}
	defer rows.Close()

	var trend []map[string]interface{}
	for rows.Next() {
		var month string
		var income, expense float64
		if err := rows.Scan(&month, &income, &expense); err != nil {
			return nil, err
		}
		trend = append(trend, map[string]interface{}{
			"month_year":      month,
			"monthly_income":  income,
			"monthly_expense": expense,
		})
	}
	return trend, rows.Err()
}

// GetActiveGoals возвращает незавершённые цели с прогрессом и остатком дней
func GetActiveGoals(pool *pgxpool.Pool, userID, limit int) ([]map[string]interface{}, error) {
	query := `
		SELECT goal_name, target_amount, current_amount, deadline_date,
		       ROUND(current_amount / target_amount * 100, 1) AS progress_percentage,
		       (deadline_date - CURRENT_DATE) AS days_remaining
		FROM savings_goals
		WHERE user_id = $1 AND is_completed = FALSE
		ORDER BY deadline_date
		LIMIT $2`

	rows, err := pool.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching active goals: %v", err)
	}
	defer rows.Close()

	var goals []map[string]interface{}
	for rows.Next() {
		var g models.SavingsGoal
		var progress float64
		var daysRemaining int
		if err := rows.Scan(&g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline,
			&progress, &daysRemaining); err != nil {
			return nil, err
		}
		goals = append(goals, map[string]interface{}{
			"goal_name":           g.Name,
			"target_amount":       g.TargetAmount,
			"current_amount":      g.CurrentAmount,
			"deadline_date":       g.Deadline,
			"progress_percentage": progress,
			"days_remaining":      daysRemaining,
		})
	}
	return goals, rows.Err()
}

// GetWalletMonthlyStats возвращает помесячную статистику по кошельку
func GetWalletMonthlyStats(pool *pgxpool.Pool, walletID, months int) ([]map[string]interface{}, error) {
	query := `
		SELECT TO_CHAR(t.transaction_date, 'YYYY-MM') AS month_year,
		       SUM(CASE WHEN t.transaction_type = 'income' THEN t.amount ELSE 0 END) AS monthly_income,
		       SUM(CASE WHEN t.transaction_type = 'expense' THEN t.amount ELSE 0 END) AS monthly_expense,
		       COUNT(t.id) AS transaction_count
		FROM transactions t
		WHERE t.wallet_id = $1
		  AND t.transaction_date >= CURRENT_DATE - $2 * INTERVAL '1 month'
		GROUP BY TO_CHAR(t.transaction_date, 'YYYY-MM')
		ORDER BY month_year DESC`

	rows, err := pool.Query(context.Background(), query, walletID, months)
	if err != nil {
		return nil, fmt.Errorf("error fetching wallet stats: %v", err)
	}
	defer rows.Close()

	var stats []map[string]interface{}
	for rows.Next() {
		var month string
		var income, expense float64
		var count int
		if err := rows.Scan(&month, &income, &expense, &count); err != nil {
			return nil, err
		}
		stats = append(stats, map[string]interface{}{
			"month_year":        month,
			"monthly_income":    income,
			"monthly_expense":   expense,
			"transaction_count": count,
		})
	}
	return stats, rows.Err()
}

// GetTotalBalanceAllWallets возвращает суммарный баланс активных кошельков
func GetTotalBalanceAllWallets(pool *pgxpool.Pool, userID int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(balance), 0)
		FROM wallets
		WHERE user_id = $1 AND is_active = TRUE`

	var total float64
	err := pool.QueryRow(context.Background(), query, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error fetching total wallet balance: %v", err)
	}
	return total, nil
}
