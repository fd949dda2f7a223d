package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

var (
	ErrCategoryNotFound     = errors.New("категория не найдена или недоступна")
	ErrCategoryTypeMismatch = errors.New("тип операции не совпадает с типом категории")
)

// CreateTransaction записывает доход или расход и меняет баланс кошелька
// одной транзакцией: вставка строки, блокировка кошелька, изменение баланса
// и запись в журнал либо применяются целиком, либо не применяются вовсе.
func CreateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %v", err)
	}
	defer tx.Rollback(ctx)

	// Кошелёк блокируется с проверкой владельца, чужой id не проходит
	var walletID int
	err = tx.QueryRow(ctx, `
		SELECT id FROM wallets
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		FOR UPDATE`,
		transaction.WalletID, transaction.UserID).Scan(&walletID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWalletNotFound
		}
		return fmt.Errorf("ошибка проверки кошелька: %v", err)
	}

	var categoryType string
	err = tx.QueryRow(ctx, `
		SELECT category_type FROM transaction_categories
		WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)`,
		transaction.CategoryID, transaction.UserID).Scan(&categoryType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("ошибка проверки категории: %v", err)
	}
	if categoryType != transaction.Type {
		return ErrCategoryTypeMismatch
	}

	insertQuery := `
		INSERT INTO transactions (user_id, wallet_id, category_id, transaction_type,
			amount, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, insertQuery,
		transaction.UserID,
		transaction.WalletID,
		transaction.CategoryID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Date,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении операции: %v", err)
	}

	delta := decimal.NewFromFloat(transaction.Amount)
	if transaction.Type == models.TransactionExpense {
		delta = delta.Neg()
	}

	previous, updated, err := applyWalletDelta(ctx, tx, transaction.WalletID, delta)
	if err != nil {
		return err
	}

	prevF, _ := previous.Float64()
	newF, _ := updated.Float64()
	entry := &models.WalletHistoryEntry{
		WalletID:        transaction.WalletID,
		PreviousBalance: prevF,
		NewBalance:      newF,
		ChangeAmount:    newF - prevF,
		ChangeType:      transaction.Type,
		Description:     transaction.Description,
		TransactionID:   &transaction.ID,
	}
	if err := insertWalletHistoryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

// GetTransactions возвращает операции пользователя, при необходимости
// отфильтрованные по типу (income/expense)
func GetTransactions(pool *pgxpool.Pool, userID int, transactionType string) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.wallet_id, t.category_id, t.transaction_type,
		       t.amount, t.description, t.transaction_date, t.created_at,
		       c.category_name, c.category_type
		FROM transactions t
		JOIN transaction_categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND ($2 = '' OR t.transaction_type = $2)
		ORDER BY t.transaction_date DESC, t.created_at DESC`

	return queryTransactions(pool, query, userID, transactionType)
}

// GetRecentTransactions возвращает последние операции заданного типа
func GetRecentTransactions(pool *pgxpool.Pool, userID int, transactionType string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.wallet_id, t.category_id, t.transaction_type,
		       t.amount, t.description, t.transaction_date, t.created_at,
		       c.category_name, c.category_type
		FROM transactions t
		JOIN transaction_categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND ($2 = '' OR t.transaction_type = $2)
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $3`

	return queryTransactions(pool, query, userID, transactionType, limit)
}

// GetWalletTransactions возвращает последние операции по конкретному кошельку
func GetWalletTransactions(pool *pgxpool.Pool, walletID, limit int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.wallet_id, t.category_id, t.transaction_type,
		       t.amount, t.description, t.transaction_date, t.created_at,
		       c.category_name, c.category_type
		FROM transactions t
		JOIN transaction_categories c ON t.category_id = c.id
		WHERE t.wallet_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $2`

	return queryTransactions(pool, query, walletID, limit)
}

func queryTransactions(pool *pgxpool.Pool, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении операций: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.WalletID, &t.CategoryID, &t.Type,
			&t.Amount, &t.Description, &t.Date, &t.CreatedAt,
			&t.CategoryName, &t.CategoryType); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetMonthlyTotal возвращает сумму операций типа за текущий месяц
func GetMonthlyTotal(pool *pgxpool.Pool, userID int, transactionType string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type = $2
		  AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)`

	var total float64
	err := pool.QueryRow(context.Background(), query, userID, transactionType).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении месячной суммы: %v", err)
	}
	return total, nil
}

// GetCategoryExpenses возвращает расходы текущего месяца по каждой категории
func GetCategoryExpenses(pool *pgxpool.Pool, userID int) ([]map[string]interface{}, error) {
	query := `
		SELECT c.category_name,
		       COALESCE(SUM(t.amount), 0) AS total_spent,
		       COUNT(t.id) AS transaction_count
		FROM transaction_categories c
		LEFT JOIN transactions t ON c.id = t.category_id
		    AND t.user_id = $1
		    AND t.transaction_type = 'expense'
		    AND DATE_TRUNC('month', t.transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
		WHERE c.category_type = 'expense'
		  AND (c.user_id = $1 OR c.user_id IS NULL)
		GROUP BY c.id, c.category_name
		ORDER BY total_spent DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении расходов по категориям: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var name string
		var total float64
		var count int
		if err := rows.Scan(&name, &total, &count); err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"category_name":     name,
			"total_spent":       total,
			"transaction_count": count,
		})
	}
	return result, rows.Err()
}

// GetAverageDailyExpense возвращает средний дневной расход за текущий месяц
func GetAverageDailyExpense(pool *pgxpool.Pool, userID int) (float64, error) {
	query := `
		SELECT COALESCE(AVG(daily_total), 0)
		FROM (
			SELECT transaction_date, SUM(amount) AS daily_total
			FROM transactions
			WHERE user_id = $1
			  AND transaction_type = 'expense'
			  AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
			GROUP BY transaction_date
		) AS daily_totals`

	var avg float64
	err := pool.QueryRow(context.Background(), query, userID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("ошибка при расчёте среднего дневного расхода: %v", err)
	}
	return avg, nil
}
