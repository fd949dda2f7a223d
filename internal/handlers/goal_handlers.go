package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func CreateGoalHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.GoalForm
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

		goal := &models.SavingsGoal{
			UserID:       CurrentUserID(r),
			Name:         strings.TrimSpace(form.Name),
			TargetAmount: form.TargetAmount,
			Deadline:     form.ParsedDeadline(),
		}
		if err := database.CreateGoal(pool, goal); err != nil {
			http.Error(w, "Не удалось создать цель", http.StatusInternalServerError)
			log.Printf("Ошибка создания цели в базе данных: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(goal)
	}
}

func GetGoalsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)
		goals, err := database.GetAllGoals(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить цели", http.StatusInternalServerError)
			log.Printf("Ошибка получения целей пользователя %d: %v", userID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goals)
	}
}

func UpdateGoalHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		var form models.GoalForm
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

		goal := &models.SavingsGoal{
			ID:           id,
			UserID:       CurrentUserID(r),
			Name:         strings.TrimSpace(form.Name),
			TargetAmount: form.TargetAmount,
			Deadline:     form.ParsedDeadline(),
		}
		if err := database.UpdateGoal(pool, goal); err != nil {
			http.Error(w, "Не удалось обновить цель", http.StatusInternalServerError)
			log.Printf("Ошибка обновления цели %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Цель успешно обновлена"})
	}
}

func DeleteGoalHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		if err := database.DeleteGoal(pool, id, CurrentUserID(r)); err != nil {
			http.Error(w, "Не удалось удалить цель", http.StatusInternalServerError)
			log.Printf("Ошибка удаления цели %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Цель успешно удалена"})
	}
}

func AddGoalProgressHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		var payload struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		if payload.Amount <= 0 {
			http.Error(w, "Взнос должен быть больше нуля", http.StatusBadRequest)
			return
		}

		if err := database.AddProgressToGoal(pool, id, CurrentUserID(r), decimal.NewFromFloat(payload.Amount)); err != nil {
			http.Error(w, "Не удалось добавить взнос к цели", http.StatusInternalServerError)
			log.Printf("Ошибка добавления взноса к цели %d: %v", id, err)
			return
		}

		goal, err := database.GetGoalByID(pool, id)
		if err != nil {
			http.Error(w, "Не удалось получить обновлённую цель", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goal)
	}
}
