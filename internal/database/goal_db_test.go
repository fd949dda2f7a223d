package database_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func TestCreateGoal(t *testing.T) {
	pool := testPool(t)

	goal := &models.SavingsGoal{
		UserID:       1,
		Name:         "Отпуск",
		TargetAmount: 1000.00,
		Deadline:     time.Now().AddDate(0, 6, 0),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteGoal(pool, goal.ID, 1) })

	created, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели по ID: %v", err)
	}
	if created.Name != goal.Name || !almostEqual(created.TargetAmount, 1000.00) {
		t.Errorf("данные цели не совпадают: получили %+v", created)
	}
	if created.IsCompleted {
		t.Error("новая цель не должна быть выполненной")
	}
}

func TestAddProgressToGoal(t *testing.T) {
	pool := testPool(t)

	goal := &models.SavingsGoal{
		UserID:       1,
		Name:         "Новый ноутбук",
		TargetAmount: 500.00,
		Deadline:     time.Now().AddDate(0, 3, 0),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteGoal(pool, goal.ID, 1) })

	if err := database.AddProgressToGoal(pool, goal.ID, 1, decimal.NewFromFloat(200.00)); err != nil {
		t.Fatalf("ошибка добавления взноса: %v", err)
	}

	updated, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if !almostEqual(updated.CurrentAmount, 200.00) {
		t.Errorf("накоплено: получили %v, хотели 200.00", updated.CurrentAmount)
	}
	if updated.IsCompleted {
		t.Error("цель не должна быть выполненной при частичном накоплении")
	}

	// добираем до целевой суммы
	if err := database.AddProgressToGoal(pool, goal.ID, 1, decimal.NewFromFloat(300.00)); err != nil {
		t.Fatalf("ошибка добавления второго взноса: %v", err)
	}

	completed, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if !completed.IsCompleted {
		t.Error("цель должна быть отмечена выполненной при достижении целевой суммы")
	}
	if !almostEqual(completed.CurrentAmount, 500.00) {
		t.Errorf("накоплено: получили %v, хотели 500.00", completed.CurrentAmount)
	}
}

func TestAddProgressRejectsNonPositive(t *testing.T) {
	pool := testPool(t)

	goal := &models.SavingsGoal{
		UserID:       1,
		Name:         "Подушка безопасности",
		TargetAmount: 300.00,
		Deadline:     time.Now().AddDate(1, 0, 0),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteGoal(pool, goal.ID, 1) })

	if err := database.AddProgressToGoal(pool, goal.ID, 1, decimal.Zero); err == nil {
		t.Error("нулевой взнос должен отклоняться")
	}
	if err := database.AddProgressToGoal(pool, goal.ID, 1, decimal.NewFromFloat(-10)); err == nil {
		t.Error("отрицательный взнос должен отклоняться")
	}
}

func TestGoalOwnershipScope(t *testing.T) {
	pool := testPool(t)

	goal := &models.SavingsGoal{
		UserID:       1,
		Name:         "Чужая цель",
		TargetAmount: 100.00,
		Deadline:     time.Now().AddDate(0, 2, 0),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteGoal(pool, goal.ID, 1) })

	if err := database.AddProgressToGoal(pool, goal.ID, 999, decimal.NewFromFloat(50)); err == nil {
		t.Error("взнос от чужого пользователя прошёл без ошибки")
	}
	if err := database.DeleteGoal(pool, goal.ID, 999); err == nil {
		t.Error("удаление чужой цели прошло без ошибки")
	}

	kept, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("цель пропала после чужих запросов: %v", err)
	}
	if !almostEqual(kept.CurrentAmount, 0) {
		t.Errorf("накопление изменилось чужим взносом: %v", kept.CurrentAmount)
	}
}

func TestUpdateAndDeleteGoal(t *testing.T) {
	pool := testPool(t)

	goal := &models.SavingsGoal{
		UserID:       1,
		Name:         "Ремонт",
		TargetAmount: 2000.00,
		Deadline:     time.Now().AddDate(1, 0, 0),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	goal.Name = "Капитальный ремонт"
	goal.TargetAmount = 2500.00
	if err := database.UpdateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка обновления цели: %v", err)
	}

	updated, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if updated.Name != "Капитальный ремонт" || !almostEqual(updated.TargetAmount, 2500.00) {
		t.Errorf("обновлённые данные не совпадают: %+v", updated)
	}

	if err := database.DeleteGoal(pool, goal.ID, 1); err != nil {
		t.Fatalf("ошибка удаления цели: %v", err)
	}
	if _, err := database.GetGoalByID(pool, goal.ID); err == nil {
		t.Error("цель всё ещё существует после удаления")
	}
}
