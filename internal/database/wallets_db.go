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

// Бизнес-ошибки операций с кошельками
var (
	ErrDuplicateWalletName  = errors.New("кошелёк с таким названием уже существует")
	ErrWalletHasOperations  = errors.New("нельзя удалить кошелёк с операциями, деактивируйте его")
	ErrWalletBalanceNotZero = errors.New("нельзя удалить кошелёк с ненулевым балансом, сначала переведите средства")
	ErrWalletNotFound       = errors.New("кошелёк не найден или недоступен")
)

const walletColumns = `w.id, w.user_id, w.wallet_type_id, w.wallet_name, w.description, w.balance,
		w.account_number, w.bank_name, w.card_last_four, w.card_expiry_date, w.credit_limit,
		w.color_code, w.is_default, w.is_active, w.created_at, wt.type_name, wt.icon_class`

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	w := &models.Wallet{}
	err := row.Scan(
		&w.ID, &w.UserID, &w.WalletTypeID, &w.Name, &w.Description, &w.Balance,
		&w.AccountNumber, &w.BankName, &w.CardLastFour, &w.CardExpiryDate, &w.CreditLimit,
		&w.ColorCode, &w.IsDefault, &w.IsActive, &w.CreatedAt, &w.TypeName, &w.IconClass,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetUserWallets возвращает активные кошельки пользователя, кошелёк по умолчанию первым
func GetUserWallets(pool *pgxpool.Pool, userID int) ([]models.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets w
		JOIN wallet_types wt ON w.wallet_type_id = wt.id
		WHERE w.user_id = $1 AND w.is_active = TRUE
		ORDER BY w.is_default DESC, w.wallet_name`

	return queryWallets(pool, query, userID)
}

// GetAllWalletsForUser возвращает все кошельки пользователя, включая деактивированные
func GetAllWalletsForUser(pool *pgxpool.Pool, userID int) ([]models.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets w
		JOIN wallet_types wt ON w.wallet_type_id = wt.id
		WHERE w.user_id = $1
		ORDER BY w.is_default DESC, w.created_at DESC`

	return queryWallets(pool, query, userID)
}

func queryWallets(pool *pgxpool.Pool, query string, args ...interface{}) ([]models.Wallet, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении кошельков: %v", err)
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	return wallets, rows.Err()
}

// GetWalletByID извлекает кошелёк пользователя вместе с типом
func GetWalletByID(pool *pgxpool.Pool, walletID, userID int) (*models.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets w
		JOIN wallet_types wt ON w.wallet_type_id = wt.id
		WHERE w.id = $1 AND w.user_id = $2`

	w, err := scanWallet(pool.QueryRow(context.Background(), query, walletID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("ошибка при получении кошелька: %v", err)
	}
	return w, nil
}

// CreateWallet добавляет кошелёк. Начальный баланс фиксируется
// корректирующей записью в журнале изменений.
func CreateWallet(pool *pgxpool.Pool, wallet *models.Wallet) error {
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %v", err)
	}
	defer tx.Rollback(ctx)

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT id FROM wallets WHERE user_id = $1 AND wallet_name = $2`,
		wallet.UserID, wallet.Name).Scan(&existing)
	if err == nil {
		return ErrDuplicateWalletName
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка проверки названия кошелька: %v", err)
	}

	// Кошелёк по умолчанию может быть только один
	if wallet.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE wallets SET is_default = FALSE WHERE user_id = $1`, wallet.UserID); err != nil {
			return fmt.Errorf("ошибка сброса кошелька по умолчанию: %v", err)
		}
	}

	insertQuery := `
		INSERT INTO wallets (user_id, wallet_type_id, wallet_name, description, balance,
			account_number, bank_name, card_last_four, card_expiry_date, credit_limit,
			color_code, is_default, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, insertQuery,
		wallet.UserID, wallet.WalletTypeID, wallet.Name, wallet.Description, wallet.Balance,
		wallet.AccountNumber, wallet.BankName, wallet.CardLastFour, wallet.CardExpiryDate,
		wallet.CreditLimit, wallet.ColorCode, wallet.IsDefault,
	).Scan(&wallet.ID, &wallet.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении кошелька: %v", err)
	}

	if wallet.Balance > 0 {
		entry := &models.WalletHistoryEntry{
			WalletID:        wallet.ID,
			PreviousBalance: 0,
			NewBalance:      wallet.Balance,
			ChangeAmount:    wallet.Balance,
			ChangeType:      models.ChangeAdjustment,
			Description:     "Начальный баланс",
		}
		if err := insertWalletHistoryTx(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

// DeleteWallet удаляет кошелёк без операций и с нулевым балансом.
// В остальных случаях возвращает бизнес-ошибку, строки не меняются.
func DeleteWallet(pool *pgxpool.Pool, walletID, userID int) error {
	ctx := context.Background()

	var balance decimal.Decimal
	err := pool.QueryRow(ctx,
		`SELECT balance FROM wallets WHERE id = $1 AND user_id = $2`,
		walletID, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWalletNotFound
		}
		return fmt.Errorf("ошибка при получении кошелька: %v", err)
	}

	operations, err := CountWalletOperations(pool, walletID)
	if err != nil {
		return err
	}

	if operations > 0 {
		return ErrWalletHasOperations
	}
	if !balance.IsZero() {
		return ErrWalletBalanceNotZero
	}

	result, err := pool.Exec(ctx,
		`DELETE FROM wallets WHERE id = $1 AND user_id = $2`, walletID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления кошелька: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// CountWalletOperations считает операции и переводы, затрагивающие кошелёк
func CountWalletOperations(pool *pgxpool.Pool, walletID int) (int, error) {
	var operations int
	err := pool.QueryRow(context.Background(), `
		SELECT (SELECT COUNT(*) FROM transactions WHERE wallet_id = $1)
		     + (SELECT COUNT(*) FROM wallet_transfers WHERE from_wallet_id = $1 OR to_wallet_id = $1)`,
		walletID).Scan(&operations)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта операций кошелька: %v", err)
	}
	return operations, nil
}

// ToggleWalletActive переключает флаг активности и возвращает новое состояние
func ToggleWalletActive(pool *pgxpool.Pool, walletID, userID int) (bool, error) {
	query := `
		UPDATE wallets
		SET is_active = NOT is_active
		WHERE id = $1 AND user_id = $2
		RETURNING is_active`

	var isActive bool
	err := pool.QueryRow(context.Background(), query, walletID, userID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrWalletNotFound
		}
		return false, fmt.Errorf("ошибка смены статуса кошелька: %v", err)
	}
	return isActive, nil
}

// SetDefaultWallet атомарно переносит флаг "по умолчанию" на выбранный кошелёк
func SetDefaultWallet(pool *pgxpool.Pool, walletID, userID int) error {
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE wallets SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка сброса кошелька по умолчанию: %v", err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE wallets SET is_default = TRUE WHERE id = $1 AND user_id = $2`, walletID, userID)
	if err != nil {
		return fmt.Errorf("ошибка установки кошелька по умолчанию: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrWalletNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

// applyWalletDelta блокирует строку кошелька и применяет подписанное изменение
// баланса. Вызывается только внутри транзакции вызывающей стороны, чтобы
// частичное применение было невозможно.
func applyWalletDelta(ctx context.Context, tx pgx.Tx, walletID int, delta decimal.Decimal) (previous, updated decimal.Decimal, err error) {
	err = tx.QueryRow(ctx,
		`SELECT balance FROM wallets WHERE id = $1 FOR UPDATE`, walletID).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return previous, updated, ErrWalletNotFound
		}
		return previous, updated, fmt.Errorf("ошибка блокировки кошелька: %v", err)
	}

	updated = previous.Add(delta)
	_, err = tx.Exec(ctx,
		`UPDATE wallets SET balance = $1 WHERE id = $2`, updated, walletID)
	if err != nil {
		return previous, updated, fmt.Errorf("ошибка обновления баланса: %v", err)
	}
	return previous, updated, nil
}
