package database

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// ConnectDB открывает пул соединений с базой по переменным окружения.
// .env подхватывается, если есть; в контейнере переменные приходят извне.
func ConnectDB() (*pgxpool.Pool, error) {
	_ = godotenv.Load()

	pool, err := pgxpool.New(context.Background(), ConnString())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("база данных недоступна: %v", err)
	}

	return pool, nil
}

// ConnString собирает строку подключения из окружения
func ConnString() string {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_HOST"), port, os.Getenv("DB_NAME"))
}
