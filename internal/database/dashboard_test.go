package database_test

import (
	"testing"
	"time"

	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestWalletSummaryReflectsBalance(t *testing.T) {
	pool := testPool(t)

	wallet := makeTestWallet(t, pool, 100.00)

	income := &models.Transaction{
		UserID:      1,
		WalletID:    wallet.ID,
		CategoryID:  categoryID(t, pool, "income"),
		Type:        models.TransactionIncome,
		Amount:      50.50,
		Description: "Доход для сводки",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, income); err != nil {
		t.Fatalf("ошибка создания дохода: %v", err)
	}

	summary, err := database.GetWalletSummary(pool, 1)
	if err != nil {
		t.Fatalf("ошибка чтения wallet_summary: %v", err)
	}

	found := false
	for _, row := range summary {
		if row["id"].(int) != wallet.ID {
			continue
		}
		found = true
		if balance := row["balance"].(float64); !almostEqual(balance, 150.50) {
			t.Errorf("баланс в сводке: получили %.2f, хотели 150.50", balance)
		}
		if monthIncome := row["month_income"].(float64); monthIncome < 50.50-0.001 {
			t.Errorf("доход за месяц в сводке: получили %.2f, хотели не меньше 50.50", monthIncome)
		}
		if row["type_name"].(string) == "" {
			t.Error("название типа кошелька не заполнено")
		}
	}
	if !found {
		t.Fatal("кошелёк не попал в wallet_summary")
	}
}
