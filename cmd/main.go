package main

import (
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/routes"
)

func ScheduleBudgetRenewal(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@monthly", func() {
		if err := database.RenewMonthlyBudgets(pool); err != nil {
			log.Printf("Ошибка продления месячных бюджетов: %v", err)
		} else {
			log.Println("Месячные бюджеты продлены.")
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи продления бюджетов: %v", err)
	}
	c.Start()
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден, используются переменные окружения")
	}

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	ScheduleBudgetRenewal(pool)

	router := routes.SetupRouter(pool)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(":"+port, CORSMiddleware(router)); err != nil {
		log.Fatalf("Ошибка при запуске сервера: %v", err)
	}
}
