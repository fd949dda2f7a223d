package routes

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/handlers"
)

func SetupRouter(pool *pgxpool.Pool) *mux.Router {
	r := mux.NewRouter()
	r.Use(handlers.SessionMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// пользователи
	api.HandleFunc("/register", handlers.RegisterHandler(pool)).Methods("POST")
	api.HandleFunc("/login", handlers.LoginHandler(pool)).Methods("POST")
	api.HandleFunc("/logout", handlers.LogoutHandler()).Methods("POST")

	// кошельки
	api.HandleFunc("/wallets", handlers.GetWalletsHandler(pool)).Methods("GET")
	api.HandleFunc("/wallets", handlers.CreateWalletHandler(pool)).Methods("POST")
	api.HandleFunc("/wallets/types", handlers.GetWalletTypesHandler(pool)).Methods("GET")
	api.HandleFunc("/wallets/{id}", handlers.GetWalletHandler(pool)).Methods("GET")
	api.HandleFunc("/wallets/{id}", handlers.DeleteWalletHandler(pool)).Methods("DELETE")
	api.HandleFunc("/wallets/{id}/toggle", handlers.ToggleWalletActiveHandler(pool)).Methods("POST")
	api.HandleFunc("/wallets/{id}/default", handlers.SetDefaultWalletHandler(pool)).Methods("POST")
	api.HandleFunc("/wallets/{id}/history", handlers.GetWalletHistoryHandler(pool)).Methods("GET")
	api.HandleFunc("/wallets/{id}/transactions", handlers.GetWalletTransactionsHandler(pool)).Methods("GET")
	api.HandleFunc("/wallets/{id}/transfers", handlers.GetWalletTransfersHandler(pool)).Methods("GET")
	api.HandleFunc("/wallets/{id}/stats", handlers.GetWalletMonthlyStatsHandler(pool)).Methods("GET")

	// операции
	api.HandleFunc("/income", handlers.CreateIncomeHandler(pool)).Methods("POST")
	api.HandleFunc("/expenses", handlers.CreateExpenseHandler(pool)).Methods("POST")
	api.HandleFunc("/transactions", handlers.GetTransactionsHandler(pool)).Methods("GET")

	// переводы
	api.HandleFunc("/transfers", handlers.CreateTransferHandler(pool)).Methods("POST")
	api.HandleFunc("/transfers", handlers.GetRecentTransfersHandler(pool)).Methods("GET")

	// категории
	api.HandleFunc("/categories", handlers.GetCategoriesHandler(pool)).Methods("GET")
	api.HandleFunc("/categories", handlers.CreateCategoryHandler(pool)).Methods("POST")
	api.HandleFunc("/categories/expenses", handlers.GetCategoryExpensesHandler(pool)).Methods("GET")

	// бюджеты
	api.HandleFunc("/budgets", handlers.GetBudgetStatusHandler(pool)).Methods("GET")
	api.HandleFunc("/budgets", handlers.CreateBudgetHandler(pool)).Methods("POST")
	api.HandleFunc("/budgets/{id}", handlers.UpdateBudgetHandler(pool)).Methods("PUT")
	api.HandleFunc("/budgets/{id}", handlers.DeleteBudgetHandler(pool)).Methods("DELETE")

	// цели накопления
	api.HandleFunc("/goals", handlers.GetGoalsHandler(pool)).Methods("GET")
	api.HandleFunc("/goals", handlers.CreateGoalHandler(pool)).Methods("POST")
	api.HandleFunc("/goals/{id}", handlers.UpdateGoalHandler(pool)).Methods("PUT")
	api.HandleFunc("/goals/{id}", handlers.DeleteGoalHandler(pool)).Methods("DELETE")
	api.HandleFunc("/goals/{id}/progress", handlers.AddGoalProgressHandler(pool)).Methods("POST")

	// сводка
	api.HandleFunc("/dashboard", handlers.DashboardHandler(pool)).Methods("GET")

	return r
}
