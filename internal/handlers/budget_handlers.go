package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func CreateBudgetHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.BudgetForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if problems := form.Validate(); len(problems) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"errors": problems})
			return
		}

		budget := &models.MonthlyBudget{
			UserID:       CurrentUserID(r),
			CategoryID:   form.CategoryID,
			MonthYear:    form.ParsedMonth(),
			BudgetAmount: form.BudgetAmount,
		}
		if err := database.CreateBudget(pool, budget); err != nil {
			http.Error(w, "Не удалось создать бюджет", http.StatusInternalServerError)
			log.Printf("Ошибка создания бюджета в базе данных: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(budget)
	}
}

func GetBudgetStatusHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)
		budgets, err := database.GetBudgetStatus(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить статус бюджетов", http.StatusInternalServerError)
			log.Printf("Ошибка получения статуса бюджетов пользователя %d: %v", userID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID бюджета", http.StatusBadRequest)
			return
		}

		var form models.BudgetForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "Некорректные данные", http.StatusBadRequest)
			return
		}
		if problems := form.Validate(); len(problems) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"errors": problems})
			return
		}

		budget := &models.MonthlyBudget{
			ID:           id,
			UserID:       CurrentUserID(r),
			CategoryID:   form.CategoryID,
			MonthYear:    form.ParsedMonth(),
			BudgetAmount: form.BudgetAmount,
		}
		if err := database.UpdateBudget(pool, budget); err != nil {
			http.Error(w, "Не удалось обновить бюджет", http.StatusInternalServerError)
			log.Printf("Ошибка обновления бюджета %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Бюджет успешно обновлён"})
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID бюджета", http.StatusBadRequest)
			return
		}

		if err := database.DeleteBudget(pool, id, CurrentUserID(r)); err != nil {
			http.Error(w, "Не удалось удалить бюджет", http.StatusInternalServerError)
			log.Printf("Ошибка удаления бюджета %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Бюджет успешно удалён"})
	}
}
