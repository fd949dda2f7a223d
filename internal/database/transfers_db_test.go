package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestTransferBetweenWallets(t *testing.T) {
	pool := testPool(t)

	from := makeTestWallet(t, pool, 100.00)
	to := makeTestWallet(t, pool, 0)

	transfer := &models.WalletTransfer{
		UserID:       1,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
		Amount:       40.00,
		Fees:         2.00,
		Date:         time.Now(),
		Description:  "Перенос на карту",
	}
	if err := database.TransferBetweenWallets(pool, transfer); err != nil {
		t.Fatalf("ошибка перевода: %v", err)
	}

	// Источник теряет сумму с комиссией, получатель получает только сумму
	fromAfter, err := database.GetWalletByID(pool, from.ID, 1)
	if err != nil {
		t.Fatalf("ошибка получения кошелька-источника: %v", err)
	}
	if !almostEqual(fromAfter.Balance, 58.00) {
		t.Errorf("баланс источника: получили %.2f, хотели 58.00", fromAfter.Balance)
	}

	toAfter, err := database.GetWalletByID(pool, to.ID, 1)
	if err != nil {
		t.Fatalf("ошибка получения кошелька-получателя: %v", err)
	}
	if !almostEqual(toAfter.Balance, 40.00) {
		t.Errorf("баланс получателя: получили %.2f, хотели 40.00", toAfter.Balance)
	}

	// Комиссия записана отдельной расходной операцией по источнику
	feeTransactions, err := database.GetWalletTransactions(pool, from.ID, 10)
	if err != nil {
		t.Fatalf("ошибка получения операций: %v", err)
	}
	foundFee := false
	for _, tr := range feeTransactions {
		if tr.Type == models.TransactionExpense && almostEqual(tr.Amount, 2.00) {
			foundFee = true
		}
	}
	if !foundFee {
		t.Error("расходная операция комиссии не записана")
	}

	// По обоим кошелькам остались записи журнала перевода
	fromHistory, err := database.GetWalletBalanceHistory(pool, from.ID, 1)
	if err != nil {
		t.Fatalf("ошибка получения журнала: %v", err)
	}
	if len(fromHistory) == 0 || fromHistory[0].ChangeType != models.ChangeTransferOut {
		t.Errorf("журнал источника без записи о переводе: %+v", fromHistory)
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	pool := testPool(t)

	from := makeTestWallet(t, pool, 30.00)
	to := makeTestWallet(t, pool, 10.00)

	transfer := &models.WalletTransfer{
		UserID:       1,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
		Amount:       29.00,
		Fees:         2.00,
		Date:         time.Now(),
	}
	err := database.TransferBetweenWallets(pool, transfer)
	if !errors.Is(err, database.ErrInsufficientBalance) {
		t.Fatalf("ожидали ErrInsufficientBalance, получили %v", err)
	}

	// Балансы обоих кошельков не должны измениться
	fromAfter, _ := database.GetWalletByID(pool, from.ID, 1)
	toAfter, _ := database.GetWalletByID(pool, to.ID, 1)
	if !almostEqual(fromAfter.Balance, 30.00) || !almostEqual(toAfter.Balance, 10.00) {
		t.Errorf("балансы изменились после отклонённого перевода: %.2f, %.2f",
			fromAfter.Balance, toAfter.Balance)
	}
}

func TestTransferSameWallet(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 100.00)

	transfer := &models.WalletTransfer{
		UserID:       1,
		FromWalletID: wallet.ID,
		ToWalletID:   wallet.ID,
		Amount:       10.00,
		Date:         time.Now(),
	}
	if err := database.TransferBetweenWallets(pool, transfer); !errors.Is(err, database.ErrSameWallet) {
		t.Errorf("ожидали ErrSameWallet, получили %v", err)
	}

	after, _ := database.GetWalletByID(pool, wallet.ID, 1)
	if !almostEqual(after.Balance, 100.00) {
		t.Errorf("баланс изменился после отклонённого перевода: %.2f", after.Balance)
	}
}

func TestTransferExactBalance(t *testing.T) {
	pool := testPool(t)

	from := makeTestWallet(t, pool, 42.00)
	to := makeTestWallet(t, pool, 0)

	transfer := &models.WalletTransfer{
		UserID:       1,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
		Amount:       40.00,
		Fees:         2.00,
		Date:         time.Now(),
	}
	if err := database.TransferBetweenWallets(pool, transfer); err != nil {
		t.Fatalf("перевод ровно на весь баланс должен проходить: %v", err)
	}

	fromAfter, _ := database.GetWalletByID(pool, from.ID, 1)
	if !almostEqual(fromAfter.Balance, 0) {
		t.Errorf("баланс источника: получили %.2f, хотели 0.00", fromAfter.Balance)
	}
}

func TestGetRecentTransfers(t *testing.T) {
	pool := testPool(t)

	from := makeTestWallet(t, pool, 50.00)
	to := makeTestWallet(t, pool, 0)

	transfer := &models.WalletTransfer{
		UserID:       1,
		FromWalletID: from.ID,
		ToWalletID:   to.ID,
		Amount:       20.00,
		Date:         time.Now(),
	}
	if err := database.TransferBetweenWallets(pool, transfer); err != nil {
		t.Fatalf("ошибка перевода: %v", err)
	}

	transfers, err := database.GetRecentTransfers(pool, 1, 10)
	if err != nil {
		t.Fatalf("ошибка получения переводов: %v", err)
	}
	if len(transfers) == 0 {
		t.Fatal("список переводов пуст")
	}
	if transfers[0].FromWalletName == "" || transfers[0].ToWalletName == "" {
		t.Errorf("названия кошельков не заполнены: %+v", transfers[0])
	}
}
