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

func GetWalletsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := CurrentUserID(r)

		var (
			wallets []models.Wallet
			err     error
		)
		if r.URL.Query().Get("all") == "1" {
			wallets, err = database.GetAllWalletsForUser(pool, userID)
		} else {
			wallets, err = database.GetUserWallets(pool, userID)
		}
		if err != nil {
			http.Error(w, "Не удалось получить кошельки", http.StatusInternalServerError)
			log.Printf("Ошибка получения кошельков пользователя %d: %v", userID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wallets)
	}
}

func GetWalletHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		wallet, err := database.GetWalletByID(pool, id, CurrentUserID(r))
		if err != nil {
			if errors.Is(err, database.ErrWalletNotFound) {
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
				return
			}
			http.Error(w, "Не удалось получить кошелёк", http.StatusInternalServerError)
			log.Printf("Ошибка получения кошелька %d: %v", id, err)
			return
		}

		operations, err := database.CountWalletOperations(pool, id)
		if err != nil {
			http.Error(w, "Не удалось получить кошелёк", http.StatusInternalServerError)
			log.Printf("Ошибка подсчёта операций кошелька %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"wallet":           wallet,
			"operations_count": operations,
		})
	}
}

func CreateWalletHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.WalletForm
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

		wallet := form.ToWallet(CurrentUserID(r))
		if err := database.CreateWallet(pool, wallet); err != nil {
			if errors.Is(err, database.ErrDuplicateWalletName) {
				http.Error(w, "Кошелёк с таким названием уже существует", http.StatusBadRequest)
				return
			}
			http.Error(w, "Не удалось создать кошелёк", http.StatusInternalServerError)
			log.Printf("Ошибка создания кошелька в базе данных: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(wallet)
	}
}

func DeleteWalletHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		if err := database.DeleteWallet(pool, id, CurrentUserID(r)); err != nil {
			switch {
			case errors.Is(err, database.ErrWalletNotFound):
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
			case errors.Is(err, database.ErrWalletHasOperations):
				http.Error(w, "Нельзя удалить кошелёк с операциями", http.StatusBadRequest)
			case errors.Is(err, database.ErrWalletBalanceNotZero):
				http.Error(w, "Нельзя удалить кошелёк с ненулевым балансом", http.StatusBadRequest)
			default:
				http.Error(w, "Не удалось удалить кошелёк", http.StatusInternalServerError)
				log.Printf("Ошибка удаления кошелька %d: %v", id, err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Кошелёк успешно удалён"})
	}
}

func ToggleWalletActiveHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		isActive, err := database.ToggleWalletActive(pool, id, CurrentUserID(r))
		if err != nil {
			if errors.Is(err, database.ErrWalletNotFound) {
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
				return
			}
			http.Error(w, "Не удалось изменить статус кошелька", http.StatusInternalServerError)
			log.Printf("Ошибка изменения статуса кошелька %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"is_active": isActive})
	}
}

func SetDefaultWalletHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		if err := database.SetDefaultWallet(pool, id, CurrentUserID(r)); err != nil {
			if errors.Is(err, database.ErrWalletNotFound) {
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
				return
			}
			http.Error(w, "Не удалось назначить кошелёк основным", http.StatusInternalServerError)
			log.Printf("Ошибка назначения основного кошелька %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Кошелёк назначен основным"})
	}
}

func GetWalletHistoryHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		days := 30
		if raw := r.URL.Query().Get("days"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				days = parsed
			}
		}

		if _, err := database.GetWalletByID(pool, id, CurrentUserID(r)); err != nil {
			if errors.Is(err, database.ErrWalletNotFound) {
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
				return
			}
			http.Error(w, "Не удалось проверить кошелёк", http.StatusInternalServerError)
			return
		}

		history, err := database.GetWalletBalanceHistory(pool, id, days)
		if err != nil {
			http.Error(w, "Не удалось получить историю кошелька", http.StatusInternalServerError)
			log.Printf("Ошибка получения истории кошелька %d: %v", id, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(history)
	}
}

func GetWalletTypesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := database.GetWalletTypes(pool)
		if err != nil {
			http.Error(w, "Не удалось получить типы кошельков", http.StatusInternalServerError)
			log.Printf("Ошибка получения типов кошельков: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types)
	}
}
