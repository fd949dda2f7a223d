package utils

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

// GenerateTestWallets создаёт кошельки для пользователя со случайными
// названиями и начальными балансами
func GenerateTestWallets(pool *pgxpool.Pool, userID, numWallets int) []int {
	ids := make([]int, 0, numWallets)
	for i := 0; i < numWallets; i++ {
		wallet := &models.Wallet{
			UserID:       userID,
			WalletTypeID: rand.Intn(5) + 1,
			Name:         fmt.Sprintf("%s %d", gofakeit.Company(), time.Now().UnixNano()%100000),
			Description:  gofakeit.Sentence(4),
			Balance:      gofakeit.Price(100, 5000),
			ColorCode:    gofakeit.HexColor(),
			IsActive:     true,
		}
		if err := database.CreateWallet(pool, wallet); err != nil {
			log.Fatalf("ошибка при добавлении кошелька: %v", err)
		}
		ids = append(ids, wallet.ID)
	}
	return ids
}

func GenerateTestCategories(pool *pgxpool.Pool, userID, numCategories int) []int {
	ids := make([]int, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		category := &models.Category{
			UserID: &userID,
			Name:   gofakeit.BuzzWord(),
			Type:   randomCategoryType(),
		}
		if err := database.CreateCategory(pool, category); err != nil {
			log.Fatalf("ошибка при добавлении категории: %v", err)
		}
		ids = append(ids, category.ID)
	}
	return ids
}

func randomCategoryType() string {
	if rand.Intn(2) == 0 {
		return models.TransactionExpense
	}
	return models.TransactionIncome
}

// GenerateTestTransactions создаёт операции по переданным кошелькам.
// Категория подбирается под тип операции, чтобы пройти проверку соответствия
func GenerateTestTransactions(pool *pgxpool.Pool, userID int, walletIDs []int, numTransactions int) {
	incomeCats, err := database.GetCategoriesForUser(pool, userID, models.TransactionIncome)
	if err != nil || len(incomeCats) == 0 {
		log.Fatalf("нет категорий доходов для генерации: %v", err)
	}
	expenseCats, err := database.GetCategoriesForUser(pool, userID, models.TransactionExpense)
	if err != nil || len(expenseCats) == 0 {
		log.Fatalf("нет категорий расходов для генерации: %v", err)
	}

	for i := 0; i < numTransactions; i++ {
		txType := randomCategoryType()
		var categoryID int
		if txType == models.TransactionIncome {
			categoryID = incomeCats[rand.Intn(len(incomeCats))].ID
		} else {
			categoryID = expenseCats[rand.Intn(len(expenseCats))].ID
		}

		transaction := &models.Transaction{
			UserID:      userID,
			WalletID:    walletIDs[rand.Intn(len(walletIDs))],
			CategoryID:  categoryID,
			Type:        txType,
			Amount:      gofakeit.Price(1, 500),
			Description: gofakeit.Sentence(5),
			Date:        time.Now().AddDate(0, 0, -rand.Intn(30)),
		}
		if err := database.CreateTransaction(pool, transaction); err != nil {
			log.Printf("пропущена операция при генерации: %v", err)
		}
	}
}

func GenerateTestBudgets(pool *pgxpool.Pool, userID int, categoryIDs []int) {
	now := time.Now()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for _, categoryID := range categoryIDs {
		budget := &models.MonthlyBudget{
			UserID:       userID,
			CategoryID:   categoryID,
			MonthYear:    month,
			BudgetAmount: gofakeit.Price(200, 2000),
		}
		if err := database.CreateBudget(pool, budget); err != nil {
			log.Printf("пропущен бюджет при генерации: %v", err)
		}
	}
}

func GenerateTestGoals(pool *pgxpool.Pool, userID, numGoals int) {
	for i := 0; i < numGoals; i++ {
		goal := &models.SavingsGoal{
			UserID:       userID,
			Name:         gofakeit.BuzzWord(),
			TargetAmount: gofakeit.Price(1000, 10000),
			Deadline:     time.Now().AddDate(0, rand.Intn(12)+1, 0),
		}
		if err := database.CreateGoal(pool, goal); err != nil {
			log.Fatalf("ошибка при добавлении цели: %v", err)
		}
	}
}
