package database_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestCreateWallet(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 1500.00)

	created, err := database.GetWalletByID(pool, wallet.ID, 1)
	if err != nil {
		t.Fatalf("ошибка получения кошелька по ID: %v", err)
	}
	if created.Name != wallet.Name || created.Balance != 1500.00 {
		t.Errorf("данные кошелька не совпадают: получили %+v, хотели %+v", created, wallet)
	}
	if !created.IsActive {
		t.Error("новый кошелёк должен быть активен")
	}

	// Начальный баланс фиксируется корректирующей записью журнала
	history, err := database.GetWalletBalanceHistory(pool, wallet.ID, 1)
	if err != nil {
		t.Fatalf("ошибка получения журнала кошелька: %v", err)
	}
	if len(history) != 1 || history[0].ChangeType != models.ChangeAdjustment {
		t.Errorf("ожидали одну корректирующую запись журнала, получили %+v", history)
	}
}

func TestCreateWalletDuplicateName(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 0)

	dup := &models.Wallet{
		UserID:       1,
		WalletTypeID: 1,
		Name:         wallet.Name,
		ColorCode:    "#3498db",
	}
	err := database.CreateWallet(pool, dup)
	if !errors.Is(err, database.ErrDuplicateWalletName) {
		t.Errorf("ожидали ErrDuplicateWalletName, получили %v", err)
	}
}

func TestSetDefaultWallet(t *testing.T) {
	pool := testPool(t)

	first := makeTestWallet(t, pool, 0)
	second := makeTestWallet(t, pool, 0)

	if err := database.SetDefaultWallet(pool, first.ID, 1); err != nil {
		t.Fatalf("ошибка установки кошелька по умолчанию: %v", err)
	}
	if err := database.SetDefaultWallet(pool, second.ID, 1); err != nil {
		t.Fatalf("ошибка установки кошелька по умолчанию: %v", err)
	}

	// Флаг по умолчанию должен остаться ровно у одного кошелька
	wallets, err := database.GetAllWalletsForUser(pool, 1)
	if err != nil {
		t.Fatalf("ошибка получения кошельков: %v", err)
	}
	defaults := 0
	for _, w := range wallets {
		if w.IsDefault {
			defaults++
			if w.ID != second.ID {
				t.Errorf("кошельком по умолчанию стал %d, ожидали %d", w.ID, second.ID)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("кошельков по умолчанию %d, должен быть ровно один", defaults)
	}
}

func TestToggleWalletActive(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 0)

	active, err := database.ToggleWalletActive(pool, wallet.ID, 1)
	if err != nil {
		t.Fatalf("ошибка смены статуса: %v", err)
	}
	if active {
		t.Error("после первого переключения кошелёк должен стать неактивным")
	}

	active, err = database.ToggleWalletActive(pool, wallet.ID, 1)
	if err != nil {
		t.Fatalf("ошибка смены статуса: %v", err)
	}
	if !active {
		t.Error("после второго переключения кошелёк должен стать активным")
	}
}

func TestDeleteWalletWithBalance(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 300.00)

	err := database.DeleteWallet(pool, wallet.ID, 1)
	if !errors.Is(err, database.ErrWalletBalanceNotZero) {
		t.Errorf("ожидали ErrWalletBalanceNotZero, получили %v", err)
	}

	// Кошелёк должен остаться без изменений
	remaining, err := database.GetWalletByID(pool, wallet.ID, 1)
	if err != nil {
		t.Fatalf("кошелёк пропал после отклонённого удаления: %v", err)
	}
	if remaining.Balance != 300.00 {
		t.Errorf("баланс изменился после отклонённого удаления: %v", remaining.Balance)
	}
}

func TestDeleteWalletWithOperations(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 0)

	transaction := &models.Transaction{
		UserID:      1,
		WalletID:    wallet.ID,
		CategoryID:  categoryID(t, pool, "income"),
		Type:        models.TransactionIncome,
		Amount:      50.00,
		Description: "Доход для проверки удаления",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания операции: %v", err)
	}

	err := database.DeleteWallet(pool, wallet.ID, 1)
	if !errors.Is(err, database.ErrWalletHasOperations) {
		t.Errorf("ожидали ErrWalletHasOperations, получили %v", err)
	}
}

func TestDeleteEmptyWallet(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 0)

	if err := database.DeleteWallet(pool, wallet.ID, 1); err != nil {
		t.Fatalf("ошибка удаления пустого кошелька: %v", err)
	}

	if _, err := database.GetWalletByID(pool, wallet.ID, 1); !errors.Is(err, database.ErrWalletNotFound) {
		t.Errorf("кошелёк всё ещё существует после удаления: %v", err)
	}
}

func TestWalletTypes(t *testing.T) {
	pool := testPool(t)

	types, err := database.GetWalletTypes(pool)
	if err != nil {
		t.Fatalf("ошибка получения типов кошельков: %v", err)
	}
	if len(types) == 0 {
		t.Error("справочник типов кошельков пуст")
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
