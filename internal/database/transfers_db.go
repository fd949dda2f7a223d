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
	ErrSameWallet          = errors.New("кошелёк-источник и кошелёк-получатель совпадают")
	ErrInsufficientBalance = errors.New("недостаточно средств на кошельке-источнике")
)

// TransferBetweenWallets выполняет перевод между кошельками одной транзакцией:
// списание amount+fees с источника, зачисление amount получателю, строка
// перевода, записи журнала по обоим кошелькам и, при ненулевой комиссии,
// отдельная расходная операция по источнику. Любая ошибка откатывает всё.
func TransferBetweenWallets(pool *pgxpool.Pool, transfer *models.WalletTransfer) error {
	if transfer.FromWalletID == transfer.ToWalletID {
		return ErrSameWallet
	}

	amount := decimal.NewFromFloat(transfer.Amount)
	fees := decimal.NewFromFloat(transfer.Fees)
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("сумма перевода должна быть больше нуля")
	}
	if fees.IsNegative() {
		return fmt.Errorf("комиссия не может быть отрицательной")
	}
	total := amount.Add(fees)

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %v", err)
	}
	defer tx.Rollback(ctx)

	// Баланс проверяется под блокировкой строки, проверка в обработчике
	// до начала транзакции — только для раннего ответа пользователю
	var fromBalance decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT balance FROM wallets
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		FOR UPDATE`,
		transfer.FromWalletID, transfer.UserID).Scan(&fromBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("кошелёк-источник не найден или неактивен")
		}
		return fmt.Errorf("ошибка блокировки кошелька-источника: %v", err)
	}

	var toExists int
	err = tx.QueryRow(ctx, `
		SELECT id FROM wallets
		WHERE id = $1 AND user_id = $2 AND is_active = TRUE
		FOR UPDATE`,
		transfer.ToWalletID, transfer.UserID).Scan(&toExists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("кошелёк-получатель не найден или неактивен")
		}
		return fmt.Errorf("ошибка блокировки кошелька-получателя: %v", err)
	}

	if fromBalance.LessThan(total) {
		return ErrInsufficientBalance
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO wallet_transfers (user_id, from_wallet_id, to_wallet_id, amount, fees,
			transfer_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		transfer.UserID, transfer.FromWalletID, transfer.ToWalletID,
		transfer.Amount, transfer.Fees, transfer.Date, transfer.Description,
	).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении перевода: %v", err)
	}

	fromPrev, fromNew, err := applyWalletDelta(ctx, tx, transfer.FromWalletID, total.Neg())
	if err != nil {
		return err
	}
	toPrev, toNew, err := applyWalletDelta(ctx, tx, transfer.ToWalletID, amount)
	if err != nil {
		return err
	}

	fromPrevF, _ := fromPrev.Float64()
	fromNewF, _ := fromNew.Float64()
	outEntry := &models.WalletHistoryEntry{
		WalletID:        transfer.FromWalletID,
		PreviousBalance: fromPrevF,
		NewBalance:      fromNewF,
		ChangeAmount:    fromNewF - fromPrevF,
		ChangeType:      models.ChangeTransferOut,
		Description:     transfer.Description,
		TransferID:      &transfer.ID,
	}
	if err := insertWalletHistoryTx(ctx, tx, outEntry); err != nil {
		return err
	}

	toPrevF, _ := toPrev.Float64()
	toNewF, _ := toNew.Float64()
	inEntry := &models.WalletHistoryEntry{
		WalletID:        transfer.ToWalletID,
		PreviousBalance: toPrevF,
		NewBalance:      toNewF,
		ChangeAmount:    toNewF - toPrevF,
		ChangeType:      models.ChangeTransferIn,
		Description:     transfer.Description,
		TransferID:      &transfer.ID,
	}
	if err := insertWalletHistoryTx(ctx, tx, inEntry); err != nil {
		return err
	}

	// Комиссия записывается отдельной расходной операцией по источнику.
	// Баланс она не меняет: списание amount+fees уже применено выше.
	if fees.IsPositive() {
		if err := insertTransferFeeTx(ctx, tx, transfer); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

func insertTransferFeeTx(ctx context.Context, tx pgx.Tx, transfer *models.WalletTransfer) error {
	categoryID, err := findOrCreateFeeCategoryTx(ctx, tx, transfer.UserID)
	if err != nil {
		return err
	}

	description := "Комиссия за перевод"
	if transfer.Description != "" {
		description = "Комиссия за перевод: " + transfer.Description
	}

	var feeTransactionID int
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, wallet_id, category_id, transaction_type,
			amount, description, transaction_date)
		VALUES ($1, $2, $3, 'expense', $4, $5, $6)
		RETURNING id`,
		transfer.UserID, transfer.FromWalletID, categoryID,
		transfer.Fees, description, transfer.Date,
	).Scan(&feeTransactionID)
	if err != nil {
		return fmt.Errorf("ошибка записи операции комиссии: %v", err)
	}
	return nil
}

// GetRecentTransfers возвращает последние переводы пользователя с названиями кошельков
func GetRecentTransfers(pool *pgxpool.Pool, userID, limit int) ([]models.WalletTransfer, error) {
	query := `
		SELECT wt.id, wt.user_id, wt.from_wallet_id, wt.to_wallet_id, wt.amount, wt.fees,
		       wt.transfer_date, wt.description, wt.created_at,
		       fw.wallet_name AS from_wallet_name, fw.color_code AS from_color,
		       tw.wallet_name AS to_wallet_name, tw.color_code AS to_color
		FROM wallet_transfers wt
		JOIN wallets fw ON wt.from_wallet_id = fw.id
		JOIN wallets tw ON wt.to_wallet_id = tw.id
		WHERE wt.user_id = $1
		ORDER BY wt.transfer_date DESC, wt.created_at DESC
		LIMIT $2`

	rows, err := pool.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении переводов: %v", err)
	}
	defer rows.Close()

	var transfers []models.WalletTransfer
	for rows.Next() {
		var t models.WalletTransfer
		if err := rows.Scan(&t.ID, &t.UserID, &t.FromWalletID, &t.ToWalletID, &t.Amount, &t.Fees,
			&t.Date, &t.Description, &t.CreatedAt,
			&t.FromWalletName, &t.FromColor, &t.ToWalletName, &t.ToColor); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// GetWalletTransfers возвращает переводы с участием кошелька и направление каждого
func GetWalletTransfers(pool *pgxpool.Pool, walletID, limit int) ([]models.WalletTransfer, error) {
	query := `
		SELECT wt.id, wt.user_id, wt.from_wallet_id, wt.to_wallet_id, wt.amount, wt.fees,
		       wt.transfer_date, wt.description, wt.created_at,
		       fw.wallet_name AS from_wallet_name, fw.color_code AS from_color,
		       tw.wallet_name AS to_wallet_name, tw.color_code AS to_color,
		       CASE WHEN wt.from_wallet_id = $1 THEN 'outgoing' ELSE 'incoming' END AS direction
		FROM wallet_transfers wt
		JOIN wallets fw ON wt.from_wallet_id = fw.id
		JOIN wallets tw ON wt.to_wallet_id = tw.id
		WHERE wt.from_wallet_id = $1 OR wt.to_wallet_id = $1
		ORDER BY wt.transfer_date DESC, wt.created_at DESC
		LIMIT $2`

	rows, err := pool.Query(context.Background(), query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении переводов кошелька: %v", err)
	}
	defer rows.Close()

	var transfers []models.WalletTransfer
	for rows.Next() {
		var t models.WalletTransfer
		if err := rows.Scan(&t.ID, &t.UserID, &t.FromWalletID, &t.ToWalletID, &t.Amount, &t.Fees,
			&t.Date, &t.Description, &t.CreatedAt,
			&t.FromWalletName, &t.FromColor, &t.ToWalletName, &t.ToColor, &t.Direction); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
