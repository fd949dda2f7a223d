package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func RegisterHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		user.Email = strings.TrimSpace(strings.ToLower(user.Email))
		user.Name = strings.TrimSpace(user.Name)
		if user.Email == "" || user.Password == "" || user.Name == "" {
			http.Error(w, "Имя, email и пароль обязательны", http.StatusBadRequest)
			return
		}
		if len(user.Password) < 6 {
			http.Error(w, "Пароль должен быть не короче 6 символов", http.StatusBadRequest)
			return
		}

		if err := database.RegisterUser(pool, &user); err != nil {
			http.Error(w, "Не удалось зарегистрировать пользователя", http.StatusInternalServerError)
			log.Printf("Ошибка регистрации пользователя: %v", err)
			return
		}

		user.Password = ""
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}
}

func LoginHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		user, err := database.AuthenticateUser(pool, strings.TrimSpace(strings.ToLower(creds.Email)), creds.Password)
		if err != nil {
			http.Error(w, "Неверный email или пароль", http.StatusUnauthorized)
			log.Printf("Неудачная попытка входа: %v", err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "finance_user",
			Value:    strconv.Itoa(user.ID),
			Path:     "/",
			HttpOnly: true,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "finance_user",
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Выход выполнен"})
	}
}
