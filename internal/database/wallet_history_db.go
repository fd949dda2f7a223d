package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

// insertWalletHistoryTx пишет строку журнала изменений баланса.
// Журнал append-only, пишется в той же транзакции, что и само изменение.
func insertWalletHistoryTx(ctx context.Context, tx pgx.Tx, entry *models.WalletHistoryEntry) error {
	query := `
		INSERT INTO wallet_transactions_history
			(wallet_id, previous_balance, new_balance, change_amount, change_type,
			 description, transaction_id, transfer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		entry.WalletID,
		entry.PreviousBalance,
		entry.NewBalance,
		entry.ChangeAmount,
		entry.ChangeType,
		entry.Description,
		entry.TransactionID,
		entry.TransferID,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал кошелька: %v", err)
	}
	return nil
}

// GetWalletBalanceHistory возвращает журнал изменений баланса за последние days дней
func GetWalletBalanceHistory(pool *pgxpool.Pool, walletID, days int) ([]models.WalletHistoryEntry, error) {
	query := `
		SELECT id, wallet_id, previous_balance, new_balance, change_amount, change_type,
		       description, transaction_id, transfer_id, created_at
		FROM wallet_transactions_history
		WHERE wallet_id = $1
		  AND created_at >= CURRENT_DATE - $2 * INTERVAL '1 day'
		ORDER BY created_at DESC`

	rows, err := pool.Query(context.Background(), query, walletID, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении журнала кошелька: %v", err)
	}
	defer rows.Close()

	var history []models.WalletHistoryEntry
	for rows.Next() {
		var e models.WalletHistoryEntry
		if err := rows.Scan(&e.ID, &e.WalletID, &e.PreviousBalance, &e.NewBalance,
			&e.ChangeAmount, &e.ChangeType, &e.Description,
			&e.TransactionID, &e.TransferID, &e.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, e)
	}
	return history, rows.Err()
}
