package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func GetCategoriesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)
		categoryType := r.URL.Query().Get("type")
		if categoryType != "" && categoryType != models.TransactionIncome && categoryType != models.TransactionExpense {
			http.Error(w, "Некорректный тип категории", http.StatusBadRequest)
			return
		}

		categories, err := database.GetCategoriesForUser(pool, userID, categoryType)
		if err != nil {
			http.Error(w, "Не удалось получить категории", http.StatusInternalServerError)
			log.Printf("Ошибка получения категорий пользователя %d: %v", userID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func CreateCategoryHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Name string `json:"category_name"`
			Type string `json:"category_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			http.Error(w, "Укажите название категории", http.StatusBadRequest)
			return
		}
		if payload.Type != models.TransactionIncome && payload.Type != models.TransactionExpense {
			http.Error(w, "Тип категории должен быть income или expense", http.StatusBadRequest)
			return
		}

		userID := CurrentUserID(r)
		category := &models.Category{
			UserID: &userID,
			Name:   payload.Name,
			Type:   payload.Type,
		}
		if err := database.CreateCategory(pool, category); err != nil {
			http.Error(w, "Не удалось создать категорию", http.StatusInternalServerError)
			log.Printf("Ошибка создания категории в базе данных: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(category)
	}
}
