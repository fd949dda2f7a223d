package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
)

// DashboardHandler собирает сводку главной страницы: балансы, метрики
// за месяц и за сегодня, кошельки, последние операции и переводы,
// категории расходов, динамику по месяцам и активные цели
func DashboardHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)

		income, expense, balance, err := database.GetTotalBalance(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения общего баланса: %v", err)
			return
		}

		monthIncome, monthExpense, err := database.GetMonthlyMetrics(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения метрик за месяц: %v", err)
			return
		}

		todayIncome, todayExpense, err := database.GetTodayMetrics(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения метрик за сегодня: %v", err)
			return
		}

		walletBalance, err := database.GetTotalBalanceAllWallets(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения суммарного баланса кошельков: %v", err)
			return
		}

		wallets, err := database.GetWalletSummary(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения сводки по кошелькам: %v", err)
			return
		}

		savings, err := database.GetSavingsSummary(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения сводки накоплений: %v", err)
			return
		}

		topCategories, err := database.GetTopExpenseCategories(pool, userID, 5)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения топа категорий расходов: %v", err)
			return
		}

		trend, err := database.GetMonthlyTrend(pool, userID, 6)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения динамики по месяцам: %v", err)
			return
		}

		goals, err := database.GetActiveGoals(pool, userID, 3)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения активных целей: %v", err)
			return
		}

		recentTransactions, err := database.GetRecentTransactions(pool, userID, "", 10)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения последних операций: %v", err)
			return
		}

		recentTransfers, err := database.GetRecentTransfers(pool, userID, 5)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения последних переводов: %v", err)
			return
		}

		budgets, err := database.GetBudgetStatus(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения статуса бюджетов: %v", err)
			return
		}

		avgDailyExpense, err := database.GetAverageDailyExpense(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить сводку", http.StatusInternalServerError)
			log.Printf("Ошибка получения среднего дневного расхода: %v", err)
			return
		}

		response := map[string]interface{}{
			"total_income":           income,
			"total_expense":          expense,
			"balance":                balance,
			"wallet_balance":         walletBalance,
			"month_income":           monthIncome,
			"month_expense":          monthExpense,
			"today_income":           todayIncome,
			"today_expense":          todayExpense,
			"average_daily_expense":  avgDailyExpense,
			"wallets":                wallets,
			"savings":                savings,
			"top_expense_categories": topCategories,
			"monthly_trend":          trend,
			"active_goals":           goals,
			"recent_transactions":    recentTransactions,
			"recent_transfers":       recentTransfers,
			"budgets":                budgets,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func GetWalletMonthlyStatsHandler(pool *pgxpool.Pool) http.HandlerFunc {
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

		months := 6
		if raw := r.URL.Query().Get("months"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				months = parsed
			}
		}

		stats, err := database.GetWalletMonthlyStats(pool, walletID, months)
		if err != nil {
			http.Error(w, "Не удалось получить статистику кошелька", http.StatusInternalServerError)
			log.Printf("Ошибка получения статистики кошелька %d: %v", walletID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

func GetCategoryExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)
		expenses, err := database.GetCategoryExpenses(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить расходы по категориям", http.StatusInternalServerError)
			log.Printf("Ошибка получения расходов по категориям: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}
