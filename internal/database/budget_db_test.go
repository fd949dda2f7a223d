package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func currentMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func TestCreateBudget(t *testing.T) {
	pool := testPool(t)

	budget := &models.MonthlyBudget{
		UserID:       1,
		CategoryID:   categoryID(t, pool, "expense"),
		MonthYear:    currentMonth().AddDate(0, 3, 0),
		BudgetAmount: 500.00,
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteBudget(pool, budget.ID, 1) })

	created, err := database.GetBudgetByID(pool, budget.ID)
	if err != nil {
		t.Fatalf("ошибка получения бюджета по ID: %v", err)
	}
	if created.BudgetAmount != budget.BudgetAmount || created.CategoryID != budget.CategoryID {
		t.Errorf("данные бюджета не совпадают: получили %+v, хотели %+v", created, budget)
	}
}

func TestUpdateBudget(t *testing.T) {
	pool := testPool(t)

	budget := &models.MonthlyBudget{
		UserID:       1,
		CategoryID:   categoryID(t, pool, "expense"),
		MonthYear:    currentMonth().AddDate(0, 4, 0),
		BudgetAmount: 600.00,
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteBudget(pool, budget.ID, 1) })

	budget.BudgetAmount = 700.00
	if err := database.UpdateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка обновления бюджета: %v", err)
	}

	updated, err := database.GetBudgetByID(pool, budget.ID)
	if err != nil {
		t.Fatalf("не смогли получить обновлённый бюджет по ID: %v", err)
	}
	if updated.BudgetAmount != 700.00 {
		t.Errorf("сумма бюджета после обновления: получили %v, хотели 700.00", updated.BudgetAmount)
	}
}

func TestDeleteBudget(t *testing.T) {
	pool := testPool(t)

	budget := &models.MonthlyBudget{
		UserID:       1,
		CategoryID:   categoryID(t, pool, "expense"),
		MonthYear:    currentMonth().AddDate(0, 5, 0),
		BudgetAmount: 800.00,
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	if err := database.DeleteBudget(pool, budget.ID, 1); err != nil {
		t.Fatalf("ошибка удаления бюджета: %v", err)
	}

	if _, err := database.GetBudgetByID(pool, budget.ID); err == nil {
		t.Error("бюджет всё ещё существует после удаления")
	}
}

func TestBudgetOwnershipScope(t *testing.T) {
	pool := testPool(t)

	budget := &models.MonthlyBudget{
		UserID:       1,
		CategoryID:   categoryID(t, pool, "expense"),
		MonthYear:    currentMonth().AddDate(0, 6, 0),
		BudgetAmount: 400.00,
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteBudget(pool, budget.ID, 1) })

	// Чужой пользователь не меняет и не удаляет бюджет
	foreign := &models.MonthlyBudget{
		ID:           budget.ID,
		UserID:       999,
		CategoryID:   budget.CategoryID,
		MonthYear:    budget.MonthYear,
		BudgetAmount: 1.00,
	}
	if err := database.UpdateBudget(pool, foreign); err == nil {
		t.Error("обновление чужого бюджета прошло без ошибки")
	}
	if err := database.DeleteBudget(pool, budget.ID, 999); err == nil {
		t.Error("удаление чужого бюджета прошло без ошибки")
	}

	kept, err := database.GetBudgetByID(pool, budget.ID)
	if err != nil {
		t.Fatalf("бюджет пропал после чужих запросов: %v", err)
	}
	if kept.BudgetAmount != 400.00 {
		t.Errorf("сумма бюджета изменилась: %v", kept.BudgetAmount)
	}
}

func TestRenewMonthlyBudgetsNoDuplicates(t *testing.T) {
	pool := testPool(t)

	// Отдельная категория, чтобы продление считалось изолированно
	userID := 1
	category := &models.Category{
		UserID: &userID,
		Name:   fmt.Sprintf("Категория продления %d", time.Now().UnixNano()),
		Type:   "expense",
	}
	if err := database.CreateCategory(pool, category); err != nil {
		t.Fatalf("ошибка создания категории: %v", err)
	}

	previous := &models.MonthlyBudget{
		UserID:       1,
		CategoryID:   category.ID,
		MonthYear:    currentMonth().AddDate(0, -1, 0),
		BudgetAmount: 350.00,
	}
	if err := database.CreateBudget(pool, previous); err != nil {
		t.Fatalf("ошибка создания бюджета прошлого месяца: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			`DELETE FROM monthly_budgets WHERE category_id = $1`, category.ID)
	})

	// Повторный запуск не должен создавать дубликат
	if err := database.RenewMonthlyBudgets(pool); err != nil {
		t.Fatalf("ошибка продления бюджетов: %v", err)
	}
	if err := database.RenewMonthlyBudgets(pool); err != nil {
		t.Fatalf("ошибка повторного продления бюджетов: %v", err)
	}

	var count int
	var amount float64
	err := pool.QueryRow(context.Background(), `
		SELECT COUNT(*), COALESCE(MAX(budget_amount), 0)
		FROM monthly_budgets
		WHERE user_id = 1 AND category_id = $1
		  AND DATE_TRUNC('month', month_year) = DATE_TRUNC('month', CURRENT_DATE)`,
		category.ID).Scan(&count, &amount)
	if err != nil {
		t.Fatalf("ошибка подсчёта бюджетов текущего месяца: %v", err)
	}
	if count != 1 {
		t.Fatalf("бюджетов текущего месяца: получили %d, хотели 1", count)
	}
	if !almostEqual(amount, 350.00) {
		t.Errorf("сумма продлённого бюджета: получили %.2f, хотели 350.00", amount)
	}
}

func TestGetBudgetStatus(t *testing.T) {
	pool := testPool(t)

	budget := &models.MonthlyBudget{
		UserID:       1,
		CategoryID:   categoryID(t, pool, "expense"),
		MonthYear:    currentMonth(),
		BudgetAmount: 900.00,
	}
	if err := database.CreateBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteBudget(pool, budget.ID, 1) })

	status, err := database.GetBudgetStatus(pool, 1)
	if err != nil {
		t.Fatalf("ошибка получения статуса бюджетов: %v", err)
	}

	found := false
	for _, b := range status {
		if b.ID == budget.ID {
			found = true
			if b.CategoryName == "" {
				t.Error("название категории не заполнено")
			}
			if b.SpentAmount < 0 {
				t.Errorf("потраченная сумма отрицательная: %v", b.SpentAmount)
			}
		}
	}
	if !found {
		t.Error("созданный бюджет не попал в статус текущего месяца")
	}
}
