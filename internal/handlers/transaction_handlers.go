package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func CreateIncomeHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return createTransactionHandler(pool, models.TransactionIncome)
}

func CreateExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return createTransactionHandler(pool, models.TransactionExpense)
}

func createTransactionHandler(pool *pgxpool.Pool, txType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.TransactionForm
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

		userID := CurrentUserID(r)
		transaction := form.ToTransaction(userID, txType)

		// предупреждение о бюджете считается до записи, расход проходит в любом случае
		var warning *models.BudgetWarning
		if txType == models.TransactionExpense {
			var err error
			warning, err = database.CheckBudgetWarning(pool, userID, transaction.CategoryID, transaction.Amount, transaction.Date)
			if err != nil {
				log.Printf("Ошибка проверки бюджета: %v", err)
			}
		}

		if err := database.CreateTransaction(pool, transaction); err != nil {
			switch {
			case errors.Is(err, database.ErrCategoryNotFound):
				http.Error(w, "Категория не найдена", http.StatusBadRequest)
			case errors.Is(err, database.ErrCategoryTypeMismatch):
				http.Error(w, "Тип категории не соответствует типу операции", http.StatusBadRequest)
			case errors.Is(err, database.ErrWalletNotFound):
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
			default:
				http.Error(w, "Не удалось сохранить операцию", http.StatusInternalServerError)
				log.Printf("Ошибка создания операции в базе данных: %v", err)
			}
			return
		}

		response := map[string]interface{}{"transaction": transaction}
		if warning != nil {
			response["budget_warning"] = warning
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(response)
	}
}

func GetTransactionsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)
		txType := r.URL.Query().Get("type")
		if txType != "" && txType != models.TransactionIncome && txType != models.TransactionExpense {
			http.Error(w, "Некорректный тип операции", http.StatusBadRequest)
			return
		}

		transactions, err := database.GetTransactions(pool, userID, txType)
		if err != nil {
			http.Error(w, "Не удалось получить операции", http.StatusInternalServerError)
			log.Printf("Ошибка получения операций пользователя %d: %v", userID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func GetWalletTransactionsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		walletID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		if _, err := database.GetWalletByID(pool, walletID, CurrentUserID(r)); err != nil {
			if errors.Is(err, database.ErrWalletNotFound) {
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
				return
			}
			http.Error(w, "Не удалось проверить кошелёк", http.StatusInternalServerError)
			return
		}

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		transactions, err := database.GetWalletTransactions(pool, walletID, limit)
		if err != nil {
			http.Error(w, "Не удалось получить операции кошелька", http.StatusInternalServerError)
			log.Printf("Ошибка получения операций кошелька %d: %v", walletID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}
