package database_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

// Тесты пакета работают с настоящей базой из .env.
// Без доступной базы пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	_ = godotenv.Load()
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна, тест пропущен: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.RunMigrations(); err != nil {
		t.Fatalf("ошибка применения миграций: %v", err)
	}
	return pool
}

// makeTestWallet создаёт кошелёк тестового пользователя с уникальным названием
func makeTestWallet(t *testing.T, pool *pgxpool.Pool, balance float64) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:       1,
		WalletTypeID: 1,
		Name:         fmt.Sprintf("Тестовый кошелёк %d", time.Now().UnixNano()),
		Balance:      balance,
		ColorCode:    "#3498db",
		IsActive:     true,
	}
	if err := database.CreateWallet(pool, wallet); err != nil {
		t.Fatalf("ошибка создания кошелька: %v", err)
	}
	return wallet
}

// categoryID возвращает ID общей категории нужного типа
func categoryID(t *testing.T, pool *pgxpool.Pool, categoryType string) int {
	t.Helper()

	categories, err := database.GetCategoriesForUser(pool, 1, categoryType)
	if err != nil {
		t.Fatalf("ошибка получения категорий: %v", err)
	}
	if len(categories) == 0 {
		t.Fatalf("нет категорий типа %s", categoryType)
	}
	return categories[0].ID
}
